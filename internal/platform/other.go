//go:build !windows && !linux && !darwin

package platform

// OtherFeatures is the inert implementation for unsupported platforms
type OtherFeatures struct{}

func (OtherFeatures) SetAlwaysOnTop(WindowHandle, bool) error { return ErrUnsupported }
func (OtherFeatures) SetTransparency(WindowHandle, float64) error { return ErrUnsupported }
func (OtherFeatures) MoveWindowTo(WindowHandle, int, int) error { return ErrUnsupported }
func (OtherFeatures) GetScreenSize() (int, int, error) { return 0, 0, ErrUnsupported }
func (OtherFeatures) RegisterHotkey(int, uint, uint) error { return ErrUnsupported }
func (OtherFeatures) UnregisterHotkey(int) error { return nil }
func (OtherFeatures) SetupHotkeyListener(func(id int)) error { return nil }
func (OtherFeatures) StopHotkeyListener() {}

// NewInputProbe returns the inert probe
func NewInputProbe() InputProbe {
	return InertProbe{}
}

// GetWindowHandle always fails on unsupported platforms
func GetWindowHandle(title string) (WindowHandle, error) {
	return 0, ErrUnsupported
}

// Global instance
var Features PlatformFeatures = OtherFeatures{}
