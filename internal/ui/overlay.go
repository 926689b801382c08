package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/rs/zerolog"

	"cornerpeek/internal/config"
	"cornerpeek/internal/peek"
	"cornerpeek/internal/platform"
)

const (
	overlayTitle = "CornerPeek"

	handleAttempts = 5
	handleDelay    = 200 * time.Millisecond
)

// Overlay manages the corner widget window
type Overlay struct {
	window   fyne.Window
	app      fyne.App
	config   *config.Config
	platform platform.PlatformFeatures
	logger   zerolog.Logger

	badge *Badge

	// State
	mu           sync.RWMutex
	visible      bool
	initialized  bool
	windowHandle platform.WindowHandle
}

// NewOverlay creates the overlay; onTap is the widget's click handler
func NewOverlay(app fyne.App, features platform.PlatformFeatures, cfg *config.Config, onTap func(), logger zerolog.Logger) *Overlay {
	return &Overlay{
		app:      app,
		config:   cfg,
		platform: features,
		logger:   logger.With().Str("component", "overlay").Logger(),
		badge:    NewBadge(onTap),
	}
}

// Setup initializes the overlay window
func (o *Overlay) Setup() error {
	o.window = o.app.NewWindow(overlayTitle)
	o.window.SetPadded(false)
	o.window.SetFixedSize(true)
	o.window.SetContent(container.NewStack(o.badge))
	o.Resize(o.config.WidgetSize)

	o.initialized = true
	return nil
}

// Resize sets the square window size
func (o *Overlay) Resize(size int) {
	o.window.Resize(fyne.NewSize(float32(size), float32(size)))
}

// Show displays the overlay window. Once the native window exists its
// handle is resolved and passed to onReady from a background goroutine.
func (o *Overlay) Show(onReady func(platform.WindowHandle)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}

	o.window.Show()
	o.visible = true

	go func() {
		handle, err := o.resolveHandle()
		if err != nil {
			o.logger.Error().Err(err).Msg("Failed to get window handle")
			fyne.Do(func() {
				o.SetStatus("window handle unavailable")
			})
			return
		}
		o.applyWindowFeatures(handle)
		if onReady != nil {
			onReady(handle)
		}
	}()
}

// resolveHandle looks the window up by title, giving the window
// manager a few moments to map it
func (o *Overlay) resolveHandle() (platform.WindowHandle, error) {
	var lastErr error
	for i := 0; i < handleAttempts; i++ {
		time.Sleep(handleDelay)
		handle, err := platform.GetWindowHandle(overlayTitle)
		if err == nil && handle != 0 {
			o.mu.Lock()
			o.windowHandle = handle
			o.mu.Unlock()
			return handle, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

// applyWindowFeatures applies always-on-top and opacity.
// Runs off the fyne thread, so it reads a snapshot of the config.
func (o *Overlay) applyWindowFeatures(handle platform.WindowHandle) {
	cfg := o.config.Clone()
	if cfg.AlwaysOnTop {
		if err := o.platform.SetAlwaysOnTop(handle, true); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to set always on top")
		}
	}

	if err := o.platform.SetTransparency(handle, cfg.OverlayOpacity); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to set transparency")
	}

	o.logger.Info().
		Uint64("handle", uint64(handle)).
		Float64("opacity", cfg.OverlayOpacity).
		Msg("Window features applied")
}

// Hide hides the overlay window
func (o *Overlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.window.Hide()
	o.visible = false
}

// IsVisible returns current visibility state
func (o *Overlay) IsVisible() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.visible
}

// Handle returns the native window handle, or 0 before Show resolved it
func (o *Overlay) Handle() platform.WindowHandle {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.windowHandle
}

// SetState shows the peek state. Must run on the fyne thread.
func (o *Overlay) SetState(s peek.State) {
	o.badge.SetState(s)
	if s != peek.Hidden {
		o.badge.SetStatus("")
	}
}

// SetLocked shows or clears the lock marker
func (o *Overlay) SetLocked(locked bool) {
	o.badge.SetLocked(locked)
}

// SetStatus updates the status line
func (o *Overlay) SetStatus(text string) {
	o.badge.SetStatus(text)
}

// SetOpacity updates the overlay transparency
func (o *Overlay) SetOpacity(opacity float64) {
	if handle := o.Handle(); handle != 0 {
		if err := o.platform.SetTransparency(handle, opacity); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to set transparency")
		}
	}
}

// GetWindow returns the underlying Fyne window
func (o *Overlay) GetWindow() fyne.Window {
	return o.window
}
