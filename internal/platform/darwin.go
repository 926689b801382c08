//go:build darwin

package platform

import (
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// DarwinFeatures implements PlatformFeatures for macOS
type DarwinFeatures struct {
	hookHotkeys
}

// NewDarwinFeatures creates a new macOS platform features instance
func NewDarwinFeatures() *DarwinFeatures {
	return &DarwinFeatures{hookHotkeys: newHookHotkeys()}
}

// SetAlwaysOnTop needs NSWindow levels, which require CGO
func (d *DarwinFeatures) SetAlwaysOnTop(handle WindowHandle, onTop bool) error {
	log.Debug().Msg("SetAlwaysOnTop: limited support on macOS (window may not stay on top)")
	return nil
}

// SetTransparency sets window opacity via NSWindow (stub)
func (d *DarwinFeatures) SetTransparency(handle WindowHandle, opacity float64) error {
	log.Debug().Float64("opacity", opacity).Msg("SetTransparency: native macOS transparency requires CGO")
	return nil
}

// MoveWindowTo moves the CornerPeek window using AppleScript.
// The handle carries no meaning on macOS; the window is addressed by its process.
func (d *DarwinFeatures) MoveWindowTo(handle WindowHandle, x, y int) error {
	script := fmt.Sprintf(`
		tell application "System Events"
			tell (first process whose name is "cornerpeek")
				set position of window 1 to {%d, %d}
			end tell
		end tell`, x, y)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("AppleScript move failed: %w", err)
	}
	return nil
}

// GetScreenSize returns the main display size
func (d *DarwinFeatures) GetScreenSize() (width, height int, err error) {
	if w, h, ok := primaryDisplayBounds(); ok {
		return w, h, nil
	}

	out, err := exec.Command("system_profiler", "SPDisplaysDataType").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("system_profiler failed: %w", err)
	}
	w, h, ok := parseSystemProfilerResolution(string(out))
	if !ok {
		return 0, 0, fmt.Errorf("no resolution in system_profiler output")
	}
	return w, h, nil
}

// GetWindowHandle returns a placeholder handle.
// Moves address the window by process name, so any non-zero value works.
func GetWindowHandle(title string) (WindowHandle, error) {
	return WindowHandle(1), nil
}

// Global instance
var Features PlatformFeatures = NewDarwinFeatures()
