package hotkeys

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornerpeek/internal/platform"
)

type fakeListener struct {
	setupErr error
	setups   int
	stops    int
	callback func(id int)
}

func (l *fakeListener) SetupHotkeyListener(callback func(id int)) error {
	l.setups++
	if l.setupErr != nil {
		return l.setupErr
	}
	l.callback = callback
	return nil
}

func (l *fakeListener) StopHotkeyListener() {
	l.stops++
}

func TestManager_ToggleHotkey(t *testing.T) {
	l := &fakeListener{}
	m := NewManager(l, zerolog.Nop())

	toggles := 0
	m.SetToggleCallback(func() { toggles++ })

	require.NoError(t, m.Start())
	require.NoError(t, m.Start())
	assert.Equal(t, 1, l.setups)
	assert.True(t, m.IsRunning())

	l.callback(platform.HotkeyToggleLock)
	l.callback(platform.HotkeyToggleLock)
	l.callback(99)
	assert.Equal(t, 2, toggles)

	m.Stop()
	m.Stop()
	assert.Equal(t, 1, l.stops)
	assert.False(t, m.IsRunning())
}

func TestManager_StartFailure(t *testing.T) {
	l := &fakeListener{setupErr: platform.ErrUnsupported}
	m := NewManager(l, zerolog.Nop())

	err := m.Start()
	assert.True(t, errors.Is(err, platform.ErrUnsupported))
	assert.False(t, m.IsRunning())

	// Retrying after a failure reaches the platform again
	l.setupErr = nil
	require.NoError(t, m.Start())
	assert.Equal(t, 2, l.setups)
}

func TestManager_NoCallback(t *testing.T) {
	l := &fakeListener{}
	m := NewManager(l, zerolog.Nop())
	require.NoError(t, m.Start())

	assert.NotPanics(t, func() { l.callback(platform.HotkeyToggleLock) })
}
