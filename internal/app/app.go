package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"

	"cornerpeek/internal/assets"
	"cornerpeek/internal/config"
	"cornerpeek/internal/hotkeys"
	"cornerpeek/internal/journal"
	"cornerpeek/internal/peek"
	"cornerpeek/internal/platform"
	"cornerpeek/internal/ui"
)

const (
	appID = "com.cornerpeek.app"

	restartTimeout = time.Second
	journalTimeout = 2 * time.Second
)

// Options configures a Run
type Options struct {
	ConfigPath  string // empty means the default location
	JournalPath string // empty means the default location
	NoJournal   bool
	Logger      zerolog.Logger
}

// App is the main application
type App struct {
	opts    Options
	log     zerolog.Logger
	fyneApp fyne.App
	config  *config.Config

	journal   *journal.Journal
	lock      *peek.Lock
	slot      *peek.EventSlot
	probe     platform.InputProbe
	monitor   *peek.Monitor
	hotkeyMgr *hotkeys.Manager
	watcher   *config.Watcher

	// UI components
	overlay  *ui.Overlay
	tray     *ui.Tray
	settings *ui.SettingsWindow

	// State
	mu           sync.Mutex
	running      bool
	handle       platform.WindowHandle
	consumerDone chan struct{}
}

// Run starts the application and blocks until it quits
func Run(opts Options) error {
	a := &App{
		opts:         opts,
		log:          opts.Logger.With().Str("component", "app").Logger(),
		consumerDone: make(chan struct{}),
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.config = cfg

	if err := a.openJournal(); err != nil {
		a.log.Warn().Err(err).Msg("Journal disabled")
	}

	a.lock = peek.NewLock(cfg.StartLocked)
	a.slot = peek.NewEventSlot()
	a.probe = platform.NewInputProbe()
	a.monitor = peek.NewMonitor(platform.Features, a.probe, a.lock, a.slot, cfg.MonitorOptions(), opts.Logger)

	// Initialize Fyne app
	a.fyneApp = app.NewWithID(appID)
	a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	a.fyneApp.SetIcon(assets.AppIcon())

	if err := a.initUI(); err != nil {
		a.closeResources()
		return err
	}

	a.hotkeyMgr = hotkeys.NewManager(platform.Features, opts.Logger)
	a.hotkeyMgr.SetToggleCallback(a.toggleLock)
	if cfg.LockHotkeyEnabled {
		if err := a.hotkeyMgr.Start(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to start hotkey listener")
		}
	}

	a.startWatcher()

	go a.consumeEvents()

	a.mu.Lock()
	a.running = true
	a.mu.Unlock()

	a.overlay.Show(a.onWindowReady)

	// Run the app (blocking)
	a.fyneApp.Run()

	a.shutdown()
	return nil
}

func (a *App) openJournal() error {
	if a.opts.NoJournal || !a.config.JournalEnabled {
		return nil
	}
	path := a.opts.JournalPath
	if path == "" {
		var err error
		if path, err = config.DataPath("journal.db"); err != nil {
			return err
		}
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	a.journal = j
	a.log.Debug().Str("path", path).Msg("Journal opened")
	return nil
}

// initUI initializes all UI components
func (a *App) initUI() error {
	a.overlay = ui.NewOverlay(a.fyneApp, platform.Features, a.config, a.toggleLock, a.opts.Logger)
	if err := a.overlay.Setup(); err != nil {
		return err
	}
	a.overlay.SetLocked(a.lock.IsLocked())

	a.tray = ui.NewTray(a.fyneApp)
	a.tray.SetCallbacks(
		a.toggleLock,
		a.tuckIntoCorner,
		a.showSettings,
		a.quit,
	)
	if err := a.tray.Setup(); err != nil {
		a.log.Warn().Err(err).Msg("System tray setup failed")
	}
	a.tray.SetLocked(a.lock.IsLocked())
	a.refreshSummary()

	return nil
}

// onWindowReady runs once the overlay's native handle is known
func (a *App) onWindowReady(handle platform.WindowHandle) {
	a.mu.Lock()
	a.handle = handle
	a.mu.Unlock()

	if err := a.monitor.Start(handle); err != nil {
		a.log.Error().Err(err).Msg("Peek monitor failed to start")
		fyne.Do(func() {
			a.overlay.SetStatus(startErrorText(err))
		})
	}
}

func startErrorText(err error) string {
	switch {
	case errors.Is(err, peek.ErrNoWindow):
		return "window not found"
	case errors.Is(err, peek.ErrNoDisplay):
		return "display unavailable"
	default:
		return "monitor failed to start"
	}
}

// consumeEvents forwards state changes to the UI and the journal
func (a *App) consumeEvents() {
	defer close(a.consumerDone)

	for ev := range a.slot.C() {
		if ev.Name != peek.EventStateChanged {
			continue
		}
		state, err := peek.ParseState(ev.Payload)
		if err != nil {
			a.log.Warn().Err(err).Msg("Dropping event")
			continue
		}

		fyne.Do(func() {
			a.overlay.SetState(state)
		})

		if a.journal != nil {
			ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
			if err := a.journal.Record(ctx, ev.Payload, time.Now()); err != nil {
				a.log.Warn().Err(err).Msg("Failed to record transition")
			}
			cancel()
			a.refreshSummary()
		}
	}
}

// refreshSummary updates the tray summary from the journal
func (a *App) refreshSummary() {
	if a.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	summary, err := a.journal.Summary(ctx, time.Time{})
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to read journal summary")
		return
	}
	fyne.Do(func() {
		a.tray.UpdateSummary(summary)
	})
}

// toggleLock flips the lock. Called from the tray, the badge and the
// hotkey goroutine; the monitor picks the change up on its next tick.
func (a *App) toggleLock() {
	locked := a.lock.Toggle()
	a.log.Info().Bool("locked", locked).Msg("Lock toggled")
	fyne.Do(func() {
		a.overlay.SetLocked(locked)
		a.tray.SetLocked(locked)
	})
}

// tuckIntoCorner moves the window to the hidden anchor
func (a *App) tuckIntoCorner() {
	handle := a.windowHandle()
	if handle == 0 {
		return
	}
	go func() {
		if err := a.monitor.MoveToHidden(handle); err != nil {
			a.log.Warn().Err(err).Msg("Failed to tuck window")
		}
	}()
}

func (a *App) windowHandle() platform.WindowHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handle
}

// startWatcher enables config hot reload
func (a *App) startWatcher() {
	path := a.config.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		a.log.Warn().Err(err).Msg("Config watcher unavailable")
		return
	}

	w, err := config.NewWatcher(path, a.opts.Logger, func(next *config.Config) {
		fyne.Do(func() {
			a.applyConfig(next)
		})
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("Config watcher unavailable")
		return
	}
	if err := w.Start(); err != nil {
		a.log.Warn().Err(err).Msg("Config watcher unavailable")
		_ = w.Stop()
		return
	}
	a.watcher = w
}

// applyConfig adopts next as the live config. Must run on the fyne thread.
func (a *App) applyConfig(next *config.Config) {
	a.config.Apply(next)
	a.overlay.Resize(a.config.WidgetSize)
	a.overlay.SetOpacity(a.config.OverlayOpacity)

	if a.config.LockHotkeyEnabled {
		if err := a.hotkeyMgr.Start(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to start hotkey listener")
		}
	} else {
		a.hotkeyMgr.Stop()
	}

	opts := a.config.MonitorOptions()
	if opts == a.monitor.Options() {
		return
	}
	go a.restartMonitor(opts)
}

// restartMonitor replaces the running session with one using opts
func (a *App) restartMonitor(opts peek.Options) {
	a.monitor.SetOptions(opts)

	handle := a.windowHandle()
	if handle == 0 {
		return // Not started yet; the first Start picks up opts
	}

	a.monitor.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), restartTimeout)
	defer cancel()
	if err := a.monitor.Wait(ctx); err != nil {
		a.log.Warn().Err(err).Msg("Previous monitor session did not exit in time")
	}

	if err := a.monitor.Start(handle); err != nil {
		a.log.Error().Err(err).Msg("Peek monitor failed to restart")
		fyne.Do(func() {
			a.overlay.SetStatus(startErrorText(err))
		})
		return
	}
	a.log.Info().
		Int("widget_size", opts.Params.WidgetSize).
		Int("hide_offset", opts.Params.HideOffset).
		Int("corner_zone", opts.Params.CornerZone).
		Dur("interval", opts.PollInterval).
		Msg("Peek monitor restarted")
}

// showSettings shows the settings window
func (a *App) showSettings() {
	if a.settings == nil {
		a.settings = ui.NewSettingsWindow(a.fyneApp, a.config)
		a.settings.SetOnSave(a.applyConfig)
	}
	a.settings.Show()
}

// quit shuts down the application
func (a *App) quit() {
	a.shutdown()
	a.fyneApp.Quit()
}

// shutdown stops everything in reverse start order
func (a *App) shutdown() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	a.mu.Unlock()

	a.log.Info().Msg("Shutting down...")

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to stop config watcher")
		}
	}

	a.hotkeyMgr.Stop()

	a.monitor.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), restartTimeout)
	if err := a.monitor.Wait(ctx); err != nil {
		a.log.Warn().Err(err).Msg("Peek monitor did not exit in time")
	}
	cancel()

	a.slot.Close()
	<-a.consumerDone

	a.closeResources()
	a.log.Info().Msg("Shutdown complete")
}

func (a *App) closeResources() {
	if c, ok := a.probe.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close input probe")
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close journal")
		}
	}
}
