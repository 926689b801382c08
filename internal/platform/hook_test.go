//go:build linux || darwin

package platform

import (
	"testing"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
)

func TestHookProbe_AltTracking(t *testing.T) {
	p := NewHookProbe()
	assert.False(t, p.IsModifierHeld())

	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeAltLeft})
	assert.True(t, p.IsModifierHeld())

	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeAltRight})
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeAltLeft})
	assert.True(t, p.IsModifierHeld(), "right Alt still down")

	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeAltRight})
	assert.False(t, p.IsModifierHeld())
}

func TestHookProbe_IgnoresOtherKeys(t *testing.T) {
	p := NewHookProbe()

	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: 0x001E}) // A
	assert.False(t, p.IsModifierHeld())

	p.handle(hook.Event{Kind: hook.KeyHold, Keycode: keycodeAltLeft})
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: 0x001E})
	assert.True(t, p.IsModifierHeld())
}

func TestHookProbe_CursorPosition(t *testing.T) {
	p := NewHookProbe()

	x, y := p.CursorPosition()
	assert.Zero(t, x)
	assert.Zero(t, y)

	p.handle(hook.Event{Kind: hook.MouseMove, X: 1919, Y: 1079})
	x, y = p.CursorPosition()
	assert.Equal(t, 1919.0, x)
	assert.Equal(t, 1079.0, y)

	p.handle(hook.Event{Kind: hook.MouseDrag, X: 10, Y: 20})
	x, y = p.CursorPosition()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)

	// Key events leave the position alone
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeAltLeft, X: 500, Y: 500})
	x, _ = p.CursorPosition()
	assert.Equal(t, 10.0, x)
}

func pressLockCombo(p *HookProbe) {
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeCtrlLeft})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeAltLeft})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeL})
}

func releaseLockCombo(p *HookProbe) {
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeL})
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeAltLeft})
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeCtrlLeft})
}

func TestLockHotkey_FiresOncePerPress(t *testing.T) {
	p := NewHookProbe()
	var fired []int
	p.SetHotkeyCallback(func(id int) { fired = append(fired, id) })

	pressLockCombo(p)
	assert.Equal(t, []int{HotkeyToggleLock}, fired)

	// Auto-repeat while held does not toggle again
	p.handle(hook.Event{Kind: hook.KeyHold, Keycode: keycodeL})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeL})
	assert.Len(t, fired, 1)

	releaseLockCombo(p)
	pressLockCombo(p)
	assert.Len(t, fired, 2)
}

func TestLockHotkey_NeedsCtrlAndAlt(t *testing.T) {
	p := NewHookProbe()
	fired := 0
	p.SetHotkeyCallback(func(int) { fired++ })

	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeAltRight})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeL})
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeL})
	assert.Zero(t, fired, "Alt+L alone")

	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeAltRight})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeCtrlRight})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeL})
	p.handle(hook.Event{Kind: hook.KeyUp, Keycode: keycodeL})
	assert.Zero(t, fired, "Ctrl+L alone")

	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeAltRight})
	p.handle(hook.Event{Kind: hook.KeyDown, Keycode: keycodeL})
	assert.Equal(t, 1, fired, "right-hand Ctrl+Alt+L")
}

func TestLockHotkey_WithoutCallback(t *testing.T) {
	p := NewHookProbe()
	assert.NotPanics(t, func() { pressLockCombo(p) })
}

func TestHookHotkeys_Listener(t *testing.T) {
	p := NewHookProbe()
	h := &hookHotkeys{source: func() *HookProbe { return p }}

	assert.NoError(t, h.RegisterHotkey(HotkeyToggleLock, ModCtrl|ModAlt, VK_L))
	assert.ErrorIs(t, h.RegisterHotkey(HotkeyToggleLock, ModShift, VK_L), ErrUnsupported)
	assert.ErrorIs(t, h.RegisterHotkey(7, ModCtrl|ModAlt, VK_L), ErrUnsupported)

	var got []int
	assert.NoError(t, h.SetupHotkeyListener(func(id int) { got = append(got, id) }))
	pressLockCombo(p)
	releaseLockCombo(p)
	assert.Equal(t, []int{HotkeyToggleLock}, got)

	h.StopHotkeyListener()
	pressLockCombo(p)
	releaseLockCombo(p)
	assert.Len(t, got, 1, "no delivery after stop")

	// Restart after stop routes again
	assert.NoError(t, h.SetupHotkeyListener(func(id int) { got = append(got, id) }))
	pressLockCombo(p)
	assert.Len(t, got, 2)
}
