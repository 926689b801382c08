package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

const iconSize = 64

var (
	bgColor     = color.RGBA{32, 33, 35, 255}
	screenColor = color.RGBA{58, 60, 66, 255}
	accentColor = color.RGBA{88, 140, 236, 255}
	lockColor   = color.RGBA{234, 179, 8, 255}
)

var (
	encodeOnce sync.Once
	trayPNG    []byte
	appPNG     []byte
)

// TrayIcon returns the system tray icon resource
func TrayIcon() fyne.Resource {
	encodeOnce.Do(encodeIcons)
	return fyne.NewStaticResource("tray.png", trayPNG)
}

// AppIcon returns the application icon resource
func AppIcon() fyne.Resource {
	encodeOnce.Do(encodeIcons)
	return fyne.NewStaticResource("app.png", appPNG)
}

// TrayImage draws a screen outline with the widget peeking from its corner
func TrayImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	fillRounded(img, 2, 2, iconSize-4, iconSize-4, 12, bgColor)
	fillRounded(img, 10, 12, 44, 32, 4, screenColor)
	fillRounded(img, 38, 32, 18, 18, 4, accentColor)
	return img
}

// AppImage is the tray image with a lock marker
func AppImage() *image.RGBA {
	img := TrayImage()
	fillRounded(img, 12, 46, 10, 10, 3, lockColor)
	return img
}

func encodeIcons() {
	trayPNG = encodePNG(TrayImage())
	appPNG = encodePNG(AppImage())
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func fillRounded(img *image.RGBA, x, y, w, h int, radius float64, c color.Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := float64(x+dx), float64(y+dy)
			if inRoundedRect(px, py, float64(x), float64(y), float64(w), float64(h), radius) {
				img.Set(x+dx, y+dy, c)
			}
		}
	}
}

func inRoundedRect(px, py, rx, ry, rw, rh, radius float64) bool {
	if px < rx || px >= rx+rw || py < ry || py >= ry+rh {
		return false
	}

	// Distance to the nearest corner centre, only inside the corner squares
	cx := math.Max(rx+radius, math.Min(px, rx+rw-radius))
	cy := math.Max(ry+radius, math.Min(py, ry+rh-radius))
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}
