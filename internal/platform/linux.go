//go:build linux

package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LinuxFeatures implements PlatformFeatures for Linux using xdotool/wmctrl
type LinuxFeatures struct {
	hookHotkeys
}

// NewLinuxFeatures creates a new Linux platform features instance
func NewLinuxFeatures() *LinuxFeatures {
	return &LinuxFeatures{hookHotkeys: newHookHotkeys()}
}

// SetAlwaysOnTop keeps the window above others using wmctrl
func (l *LinuxFeatures) SetAlwaysOnTop(handle WindowHandle, onTop bool) error {
	action := "add"
	if !onTop {
		action = "remove"
	}
	cmd := exec.Command("wmctrl", "-i", "-r", fmt.Sprintf("0x%x", handle), "-b", action+",above")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("always-on-top not available (install wmctrl): %w", err)
	}
	return nil
}

// SetTransparency sets window transparency through _NET_WM_WINDOW_OPACITY
func (l *LinuxFeatures) SetTransparency(handle WindowHandle, opacity float64) error {
	alpha := uint32(opacity * 0xFFFFFFFF)
	cmd := exec.Command("xprop", "-id",
		fmt.Sprintf("0x%x", handle),
		"-f", "_NET_WM_WINDOW_OPACITY", "32c",
		"-set", "_NET_WM_WINDOW_OPACITY", strconv.FormatUint(uint64(alpha), 10))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("transparency not available (install xprop/x11-utils): %w", err)
	}
	return nil
}

// MoveWindowTo moves a window to an absolute position
func (l *LinuxFeatures) MoveWindowTo(handle WindowHandle, x, y int) error {
	cmd := exec.Command("xdotool", "windowmove",
		strconv.FormatUint(uint64(handle), 10), strconv.Itoa(x), strconv.Itoa(y))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xdotool windowmove failed: %w", err)
	}
	return nil
}

// GetScreenSize returns the primary display size.
// X11 bounds come from the screenshot library; xdpyinfo is the fallback.
func (l *LinuxFeatures) GetScreenSize() (width, height int, err error) {
	if w, h, ok := primaryDisplayBounds(); ok {
		return w, h, nil
	}

	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("xdpyinfo failed: %w", err)
	}
	w, h, ok := parseXdpyinfoDimensions(string(out))
	if !ok {
		return 0, 0, fmt.Errorf("no dimensions in xdpyinfo output")
	}
	return w, h, nil
}

// GetWindowHandle finds a window by title using xdotool
func GetWindowHandle(title string) (WindowHandle, error) {
	out, err := exec.Command("xdotool", "search", "--name", title).Output()
	if err != nil {
		return 0, fmt.Errorf("xdotool search failed: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return 0, fmt.Errorf("window not found: %s", title)
	}
	id, err := strconv.ParseUint(lines[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window id: %s", lines[0])
	}
	return WindowHandle(id), nil
}

// Global instance
var Features PlatformFeatures = NewLinuxFeatures()
