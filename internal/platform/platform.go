package platform

import "errors"

// ErrUnsupported is returned by features the current OS cannot provide
var ErrUnsupported = errors.New("not supported on this platform")

// WindowHandle represents a platform-specific window handle
type WindowHandle uintptr

// PlatformFeatures defines the interface for platform-specific features.
// Each platform (Windows, Linux, macOS) must implement this interface.
type PlatformFeatures interface {
	// Window management
	SetAlwaysOnTop(handle WindowHandle, onTop bool) error
	SetTransparency(handle WindowHandle, opacity float64) error
	MoveWindowTo(handle WindowHandle, x, y int) error

	// Screen info (primary display only)
	GetScreenSize() (width, height int, err error)

	// Global hotkeys
	RegisterHotkey(id int, modifiers uint, keyCode uint) error
	UnregisterHotkey(id int) error
	SetupHotkeyListener(callback func(id int)) error
	StopHotkeyListener()
}

// InputProbe reports the state of the peek trigger inputs.
// Both queries must return promptly and never fail; on a failed OS
// query they report false and (0, 0).
type InputProbe interface {
	IsModifierHeld() bool
	CursorPosition() (x, y float64)
}

// InertProbe is the fallback probe for platforms without input queries
type InertProbe struct{}

// IsModifierHeld always reports false
func (InertProbe) IsModifierHeld() bool { return false }

// CursorPosition always reports the origin
func (InertProbe) CursorPosition() (x, y float64) { return 0, 0 }

// Hotkey modifiers
const (
	ModAlt   uint = 0x0001
	ModCtrl  uint = 0x0002
	ModShift uint = 0x0004
	ModWin   uint = 0x0008
)

// Virtual key codes
const (
	VK_MENU uint = 0x12 // Alt, the peek modifier
	VK_L    uint = 0x4C
)

// Hotkey IDs
const (
	HotkeyToggleLock = 1
)
