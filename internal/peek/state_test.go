package peek

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		locked   bool
		held     bool
		inCorner bool
		want     State
	}{
		{"idle", false, false, false, Hidden},
		{"modifier only", false, true, false, Hidden},
		{"corner only", false, false, true, Hidden},
		{"modifier in corner", false, true, true, Peeking},
		{"locked idle", true, false, false, Expanded},
		{"locked with modifier", true, true, false, Expanded},
		{"locked in corner", true, false, true, Expanded},
		{"locked modifier in corner", true, true, true, Expanded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.locked, tt.held, tt.inCorner))
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "hidden", Hidden.String())
	assert.Equal(t, "peeking", Peeking.String())
	assert.Equal(t, "expanded", Expanded.String())
	assert.Equal(t, "state(7)", State(7).String())
}

func TestState_Visible(t *testing.T) {
	assert.False(t, Hidden.Visible())
	assert.True(t, Peeking.Visible())
	assert.True(t, Expanded.Visible())
}

func TestParseState(t *testing.T) {
	for _, s := range []State{Hidden, Peeking, Expanded} {
		got, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseState("Peeking")
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = ParseState("")
	assert.ErrorIs(t, err, ErrUnknownState)
}
