// Command icongen renders the application icons to assets/icons.
package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"cornerpeek/internal/assets"
	"cornerpeek/internal/logging"
)

func main() {
	logger := logging.New(logging.ConfigFromEnv())

	dir := filepath.Join("assets", "icons")
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create icon directory")
	}

	savePNG(logger, assets.TrayImage(), filepath.Join(dir, "tray.png"))
	savePNG(logger, assets.AppImage(), filepath.Join(dir, "app.png"))
}

func savePNG(logger zerolog.Logger, img image.Image, path string) {
	f, err := os.Create(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("Failed to create icon")
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("Failed to encode icon")
	}
	logger.Info().Str("path", path).Msg("Wrote icon")
}
