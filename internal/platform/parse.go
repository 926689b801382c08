package platform

import (
	"strconv"
	"strings"
)

// parseXdpyinfoDimensions reads "dimensions:    1920x1080 pixels (...)"
func parseXdpyinfoDimensions(out string) (width, height int, ok bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "dimensions:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		dim := strings.Split(parts[1], "x")
		if len(dim) != 2 {
			continue
		}
		w, errW := strconv.Atoi(dim[0])
		h, errH := strconv.Atoi(dim[1])
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}
	return 0, 0, false
}

// parseSystemProfilerResolution reads "Resolution: 2560 x 1440 ..."
// from the first display listed, which macOS reports as the main one.
func parseSystemProfilerResolution(out string) (width, height int, ok bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Resolution:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		w, errW := strconv.Atoi(parts[1])
		h, errH := strconv.Atoi(parts[3])
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}
	return 0, 0, false
}
