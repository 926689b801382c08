//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetWindowPos         = user32.NewProc("SetWindowPos")
	procGetWindowLong        = user32.NewProc("GetWindowLongW")
	procSetWindowLong        = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttr = user32.NewProc("SetLayeredWindowAttributes")
	procGetSystemMetrics     = user32.NewProc("GetSystemMetrics")
	procRegisterHotKey       = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey     = user32.NewProc("UnregisterHotKey")
	procGetMessage           = user32.NewProc("GetMessageW")
	procPeekMessage          = user32.NewProc("PeekMessageW")
	procPostThreadMessage    = user32.NewProc("PostThreadMessageW")
	procFindWindow           = user32.NewProc("FindWindowW")
	procGetAsyncKeyState     = user32.NewProc("GetAsyncKeyState")
	procGetCursorPos         = user32.NewProc("GetCursorPos")
	procGetCurrentThreadId   = kernel32.NewProc("GetCurrentThreadId")
)

// Windows constants
const (
	HWND_TOPMOST   = ^uintptr(0) // -1
	HWND_NOTOPMOST = ^uintptr(1) // -2
	SWP_NOMOVE     = 0x0002
	SWP_NOSIZE     = 0x0001
	SWP_NOZORDER   = 0x0004
	SWP_NOACTIVATE = 0x0010

	WS_EX_LAYERED = 0x00080000

	LWA_ALPHA = 0x00000002

	SM_CXSCREEN = 0
	SM_CYSCREEN = 1

	WM_HOTKEY = 0x0312
	WM_QUIT   = 0x0012
	WM_USER   = 0x0400

	PM_NOREMOVE = 0x0000

	keyDownBit = 0x8000
)

// gwlExStyle is GWL_EXSTYLE (-20) as uintptr, computed at runtime to avoid overflow
var gwlExStyle = negativeToUintptr(-20)

func negativeToUintptr(v int32) uintptr {
	return uintptr(uint32(v))
}

// POINT structure for cursor queries
type POINT struct {
	X int32
	Y int32
}

// MSG structure for Windows message loop
type MSG struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

// WindowsFeatures implements PlatformFeatures for Windows
type WindowsFeatures struct {
	mu     sync.Mutex
	hotkey *hotkeyLoop // nil when no listener runs
}

// hotkeyLoop is one run of the hotkey message loop. threadID is written
// before ready is closed and never changes afterwards.
type hotkeyLoop struct {
	ready    chan struct{}
	done     chan struct{}
	threadID uint32
}

// NewWindowsFeatures creates a new Windows platform features instance
func NewWindowsFeatures() *WindowsFeatures {
	return &WindowsFeatures{}
}

// SetAlwaysOnTop sets the window to always be on top
func (w *WindowsFeatures) SetAlwaysOnTop(handle WindowHandle, onTop bool) error {
	insertAfter := HWND_NOTOPMOST
	if onTop {
		insertAfter = HWND_TOPMOST
	}

	ret, _, err := procSetWindowPos.Call(
		uintptr(handle),
		insertAfter,
		0, 0, 0, 0,
		SWP_NOMOVE|SWP_NOSIZE|SWP_NOACTIVATE,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed: %w", err)
	}
	return nil
}

// SetTransparency sets the window transparency
func (w *WindowsFeatures) SetTransparency(handle WindowHandle, opacity float64) error {
	exStyle, _, _ := procGetWindowLong.Call(uintptr(handle), gwlExStyle)
	procSetWindowLong.Call(uintptr(handle), gwlExStyle, exStyle|WS_EX_LAYERED)

	alpha := byte(opacity * 255)
	ret, _, err := procSetLayeredWindowAttr.Call(
		uintptr(handle),
		0,
		uintptr(alpha),
		LWA_ALPHA,
	)
	if ret == 0 {
		return fmt.Errorf("SetLayeredWindowAttributes failed: %w", err)
	}
	return nil
}

// MoveWindowTo moves a window to an absolute position, keeping its size and z-order
func (w *WindowsFeatures) MoveWindowTo(handle WindowHandle, x, y int) error {
	ret, _, err := procSetWindowPos.Call(
		uintptr(handle),
		0,
		uintptr(int32(x)),
		uintptr(int32(y)),
		0, 0,
		SWP_NOSIZE|SWP_NOZORDER|SWP_NOACTIVATE,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed: %w", err)
	}
	return nil
}

// GetScreenSize returns the primary screen dimensions
func (w *WindowsFeatures) GetScreenSize() (width, height int, err error) {
	cx, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	cy, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	if cx == 0 || cy == 0 {
		return 0, 0, fmt.Errorf("GetSystemMetrics returned no primary display")
	}
	return int(cx), int(cy), nil
}

// RegisterHotkey registers a global hotkey
func (w *WindowsFeatures) RegisterHotkey(id int, modifiers uint, keyCode uint) error {
	ret, _, err := procRegisterHotKey.Call(0, uintptr(id), uintptr(modifiers), uintptr(keyCode))
	if ret == 0 {
		return fmt.Errorf("RegisterHotKey failed for id %d: %w", id, err)
	}
	return nil
}

// UnregisterHotkey removes a registered hotkey
func (w *WindowsFeatures) UnregisterHotkey(id int) error {
	ret, _, err := procUnregisterHotKey.Call(0, uintptr(id))
	if ret == 0 {
		return fmt.Errorf("UnregisterHotKey failed for id %d: %w", id, err)
	}
	return nil
}

// SetupHotkeyListener registers Ctrl+Alt+L and runs the hotkey message loop
func (w *WindowsFeatures) SetupHotkeyListener(callback func(id int)) error {
	w.mu.Lock()
	if w.hotkey != nil {
		w.mu.Unlock()
		return nil
	}
	loop := &hotkeyLoop{ready: make(chan struct{}), done: make(chan struct{})}
	w.hotkey = loop
	w.mu.Unlock()

	go func() {
		defer close(loop.done)

		// RegisterHotKey and GetMessage must run on the same OS thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		// Create the thread's message queue so a WM_QUIT posted right
		// after ready is not lost.
		var msg MSG
		procPeekMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, WM_USER, WM_USER, PM_NOREMOVE)

		threadID, _, _ := procGetCurrentThreadId.Call()
		loop.threadID = uint32(threadID)
		close(loop.ready)

		if err := w.RegisterHotkey(HotkeyToggleLock, ModCtrl|ModAlt, VK_L); err != nil {
			log.Warn().Err(err).Msg("Failed to register Ctrl+Alt+L")
		} else {
			log.Info().Msg("Registered hotkey: Ctrl+Alt+L (toggle lock)")
		}

		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)

			// ret == 0 means WM_QUIT, ret == -1 means error
			if ret == 0 || int32(ret) == -1 {
				break
			}
			if msg.Message == WM_HOTKEY {
				callback(int(msg.WParam))
			}
		}

		w.UnregisterHotkey(HotkeyToggleLock)
		log.Debug().Msg("Hotkey message loop exited")
	}()

	return nil
}

// StopHotkeyListener stops the hotkey message loop. It waits for the
// loop's thread to come up so the quit message always has a target.
func (w *WindowsFeatures) StopHotkeyListener() {
	w.mu.Lock()
	loop := w.hotkey
	w.hotkey = nil
	w.mu.Unlock()

	if loop == nil {
		return
	}

	<-loop.ready
	// Post WM_QUIT to the hotkey thread to unblock GetMessage
	ret, _, err := procPostThreadMessage.Call(uintptr(loop.threadID), WM_QUIT, 0, 0)
	if ret == 0 {
		log.Warn().Err(err).Uint32("thread", loop.threadID).Msg("Failed to stop hotkey loop")
	}
}

// Win32Probe reads the modifier and cursor straight from user32
type Win32Probe struct{}

// IsModifierHeld reports whether Alt is currently down
func (Win32Probe) IsModifierHeld() bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(VK_MENU))
	return uint16(state)&keyDownBit != 0
}

// CursorPosition returns the pointer location in screen coordinates
func (Win32Probe) CursorPosition() (x, y float64) {
	var pt POINT
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return 0, 0
	}
	return float64(pt.X), float64(pt.Y)
}

// NewInputProbe returns the native Win32 probe
func NewInputProbe() InputProbe {
	return Win32Probe{}
}

// GetWindowHandle extracts the native window handle by title
func GetWindowHandle(title string) (WindowHandle, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}

	hwnd, _, callErr := procFindWindow.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return 0, fmt.Errorf("FindWindow failed: %w", callErr)
	}
	return WindowHandle(hwnd), nil
}

// Global instance
var Features PlatformFeatures = NewWindowsFeatures()
