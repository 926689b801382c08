package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/dustin/go-humanize"

	"cornerpeek/internal/assets"
	"cornerpeek/internal/journal"
)

// Tray handles the system tray icon and menu
type Tray struct {
	app         fyne.App
	menu        *fyne.Menu
	lockItem    *fyne.MenuItem
	summaryItem *fyne.MenuItem

	onToggleLock func()
	onMoveCorner func()
	onSettings   func()
	onQuit       func()
}

// NewTray creates a new tray manager
func NewTray(app fyne.App) *Tray {
	return &Tray{app: app}
}

// SetCallbacks sets the callback functions for tray actions
func (t *Tray) SetCallbacks(onToggleLock, onMoveCorner, onSettings, onQuit func()) {
	t.onToggleLock = onToggleLock
	t.onMoveCorner = onMoveCorner
	t.onSettings = onSettings
	t.onQuit = onQuit
}

// Setup initializes the system tray
func (t *Tray) Setup() error {
	desk, ok := t.app.(desktop.App)
	if !ok {
		return fmt.Errorf("system tray not supported on this platform")
	}

	t.lockItem = fyne.NewMenuItem("Lock Open", func() {
		if t.onToggleLock != nil {
			t.onToggleLock()
		}
	})

	t.summaryItem = fyne.NewMenuItem("Peeks: --", nil)
	t.summaryItem.Disabled = true

	moveItem := fyne.NewMenuItem("Tuck Into Corner", func() {
		if t.onMoveCorner != nil {
			t.onMoveCorner()
		}
	})

	settingsItem := fyne.NewMenuItem("Settings...", func() {
		if t.onSettings != nil {
			t.onSettings()
		}
	})

	quitItem := fyne.NewMenuItem("Quit", func() {
		if t.onQuit != nil {
			t.onQuit()
		}
	})

	t.menu = fyne.NewMenu("CornerPeek",
		t.lockItem,
		moveItem,
		fyne.NewMenuItemSeparator(),
		t.summaryItem,
		fyne.NewMenuItemSeparator(),
		settingsItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	desk.SetSystemTrayMenu(t.menu)
	desk.SetSystemTrayIcon(assets.TrayIcon())
	return nil
}

// SetLocked updates the lock menu label
func (t *Tray) SetLocked(locked bool) {
	if t.lockItem == nil {
		return
	}
	if locked {
		t.lockItem.Label = "Unlock"
	} else {
		t.lockItem.Label = "Lock Open"
	}
	t.menu.Refresh()
}

// UpdateSummary shows journal counts in the menu
func (t *Tray) UpdateSummary(s journal.Summary) {
	if t.summaryItem == nil {
		return
	}
	t.summaryItem.Label = SummaryLine(s, time.Now())
	t.menu.Refresh()
}

// SummaryLine formats a journal summary as "Peeks: N · last X ago"
func SummaryLine(s journal.Summary, now time.Time) string {
	line := "Peeks: " + humanize.Comma(int64(s.Counts["peeking"]))
	if !s.Last.IsZero() {
		line += " · last " + humanize.RelTime(s.Last, now, "ago", "from now")
	}
	return line
}
