package assets

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayIcon_DecodesAsPNG(t *testing.T) {
	res := TrayIcon()
	assert.Equal(t, "tray.png", res.Name())

	img, err := png.Decode(bytes.NewReader(res.Content()))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, iconSize, img.Bounds().Dy())
}

func TestImages(t *testing.T) {
	tray := TrayImage()
	assert.Equal(t, accentColor, tray.RGBAAt(47, 41))
	assert.Zero(t, tray.RGBAAt(0, 0).A, "corner outside the rounded background")

	app := AppImage()
	assert.Equal(t, lockColor, app.RGBAAt(17, 51))
	assert.NotEqual(t, lockColor, tray.RGBAAt(17, 51))

	assert.Equal(t, "app.png", AppIcon().Name())
}
