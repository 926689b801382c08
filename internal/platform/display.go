//go:build linux || darwin

package platform

import "github.com/kbinani/screenshot"

// primaryDisplayBounds reports the size of display 0, which the
// screenshot library orders first as the primary display.
func primaryDisplayBounds() (width, height int, ok bool) {
	if screenshot.NumActiveDisplays() < 1 {
		return 0, 0, false
	}
	b := screenshot.GetDisplayBounds(0)
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0, 0, false
	}
	return b.Dx(), b.Dy(), true
}
