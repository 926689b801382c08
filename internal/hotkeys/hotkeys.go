package hotkeys

import (
	"sync"

	"github.com/rs/zerolog"

	"cornerpeek/internal/platform"
)

// Listener is the subset of platform features the manager needs
type Listener interface {
	SetupHotkeyListener(callback func(id int)) error
	StopHotkeyListener()
}

// Manager turns global hotkey presses into lock toggles
type Manager struct {
	platform Listener
	logger   zerolog.Logger
	onToggle func()
	mu       sync.Mutex
	running  bool
}

// NewManager creates a new hotkey manager
func NewManager(listener Listener, logger zerolog.Logger) *Manager {
	return &Manager{
		platform: listener,
		logger:   logger.With().Str("component", "hotkeys").Logger(),
	}
}

// SetToggleCallback sets the callback for the lock toggle hotkey
func (m *Manager) SetToggleCallback(callback func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onToggle = callback
}

// Start begins listening for hotkeys
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	m.mu.Unlock()

	if err := m.platform.SetupHotkeyListener(m.handleHotkey); err != nil {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		return err
	}

	m.logger.Info().Msg("Hotkey listener started (Ctrl+Alt+L toggles lock)")
	return nil
}

// Stop stops listening for hotkeys
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.platform.StopHotkeyListener()
	m.running = false
	m.logger.Info().Msg("Hotkey listener stopped")
}

// IsRunning returns whether the hotkey listener is active
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// handleHotkey processes hotkey events from the platform listener goroutine
func (m *Manager) handleHotkey(id int) {
	m.mu.Lock()
	cb := m.onToggle
	m.mu.Unlock()

	if id != platform.HotkeyToggleLock {
		m.logger.Warn().Int("id", id).Msg("Unknown hotkey ID")
		return
	}
	m.logger.Debug().Msg("Hotkey: toggle lock")
	if cb != nil {
		cb()
	}
}
