package peek

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSlot_LatestWins(t *testing.T) {
	s := NewEventSlot()

	require.NoError(t, s.Emit(EventStateChanged, "peeking"))
	require.NoError(t, s.Emit(EventStateChanged, "hidden"))
	require.NoError(t, s.Emit(EventStateChanged, "expanded"))

	ev := <-s.C()
	assert.Equal(t, Event{Name: EventStateChanged, Payload: "expanded"}, ev)

	select {
	case ev := <-s.C():
		t.Fatalf("unexpected second event %+v", ev)
	default:
	}
}

func TestEventSlot_Close(t *testing.T) {
	s := NewEventSlot()
	require.NoError(t, s.Emit(EventStateChanged, "hidden"))

	s.Close()
	s.Close()

	assert.ErrorIs(t, s.Emit(EventStateChanged, "peeking"), ErrSlotClosed)

	// The pending event is still delivered before the channel ends
	ev, ok := <-s.C()
	assert.True(t, ok)
	assert.Equal(t, "hidden", ev.Payload)

	_, ok = <-s.C()
	assert.False(t, ok)
}
