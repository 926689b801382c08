//go:build windows

package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowsHotkeyListener_StopRightAfterSetup(t *testing.T) {
	w := NewWindowsFeatures()

	for i := 0; i < 20; i++ {
		require.NoError(t, w.SetupHotkeyListener(func(int) {}))
		w.mu.Lock()
		loop := w.hotkey
		w.mu.Unlock()
		require.NotNil(t, loop)

		w.StopHotkeyListener()

		select {
		case <-loop.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("hotkey loop %d kept running after stop", i)
		}
	}

	w.StopHotkeyListener() // stopping twice is harmless
	w.mu.Lock()
	assert.Nil(t, w.hotkey)
	w.mu.Unlock()
}
