//go:build linux || darwin

package platform

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog/log"
)

// uiohook virtual key codes
const (
	keycodeAltLeft   uint16 = 0x0038
	keycodeAltRight  uint16 = 0x0E38
	keycodeCtrlLeft  uint16 = 0x001D
	keycodeCtrlRight uint16 = 0x0E1D
	keycodeL         uint16 = 0x0026
)

// HookProbe tracks the peek inputs from a global input hook.
// A single consumer goroutine applies events; queries only load atomics.
// It also recognises Ctrl+Alt+L and reports it to the hotkey callback.
type HookProbe struct {
	held atomic.Uint32 // bit 0: left Alt, bit 1: right Alt
	ctrl atomic.Uint32 // bit 0: left Ctrl, bit 1: right Ctrl
	x    atomic.Uint64 // float64 bits
	y    atomic.Uint64

	lDown  atomic.Bool
	hotkey atomic.Pointer[func(id int)]

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

// NewHookProbe creates a probe without starting the hook
func NewHookProbe() *HookProbe {
	return &HookProbe{done: make(chan struct{})}
}

// gohook exposes one process-wide event stream, so cursor tracking and
// the hotkey listener share a single started hook.
var sharedHook = sync.OnceValue(func() *HookProbe {
	p := NewHookProbe()
	p.Start()
	return p
})

// NewInputProbe starts the global hook and returns a probe reading from it
func NewInputProbe() InputProbe {
	return sharedHook()
}

// SetHotkeyCallback installs the Ctrl+Alt+L handler; nil removes it
func (p *HookProbe) SetHotkeyCallback(callback func(id int)) {
	if callback == nil {
		p.hotkey.Store(nil)
		return
	}
	p.hotkey.Store(&callback)
}

// Start begins consuming the hook's event stream
func (p *HookProbe) Start() {
	p.startOnce.Do(func() {
		events := hook.Start()
		if events == nil {
			log.Warn().Msg("gohook returned no event channel, input probe stays inactive")
			close(p.done)
			return
		}
		go p.consume(events)
	})
}

// Close ends the hook. The probe keeps reporting the last seen state.
func (p *HookProbe) Close() error {
	p.closeOnce.Do(func() {
		hook.End()
	})
	return nil
}

func (p *HookProbe) consume(events chan hook.Event) {
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Input hook consumer panicked")
		}
	}()

	for ev := range events {
		p.handle(ev)
	}
	log.Debug().Msg("Input hook event channel closed")
}

// handle folds one hook event into the probe state
func (p *HookProbe) handle(ev hook.Event) {
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		if bit := altBit(ev.Keycode); bit != 0 {
			p.held.Or(bit)
		}
		if bit := ctrlBit(ev.Keycode); bit != 0 {
			p.ctrl.Or(bit)
		}
		if ev.Keycode == keycodeL && p.lDown.CompareAndSwap(false, true) {
			p.checkHotkey()
		}
	case hook.KeyUp:
		if bit := altBit(ev.Keycode); bit != 0 {
			p.held.And(^bit)
		}
		if bit := ctrlBit(ev.Keycode); bit != 0 {
			p.ctrl.And(^bit)
		}
		if ev.Keycode == keycodeL {
			p.lDown.Store(false)
		}
	case hook.MouseMove, hook.MouseDrag:
		p.x.Store(math.Float64bits(float64(ev.X)))
		p.y.Store(math.Float64bits(float64(ev.Y)))
	}
}

// checkHotkey fires the lock hotkey on a fresh L press with Ctrl and Alt down.
// Auto-repeat does not fire again until L is released.
func (p *HookProbe) checkHotkey() {
	if p.held.Load() == 0 || p.ctrl.Load() == 0 {
		return
	}
	if cb := p.hotkey.Load(); cb != nil {
		(*cb)(HotkeyToggleLock)
	}
}

// IsModifierHeld reports whether either Alt key is down
func (p *HookProbe) IsModifierHeld() bool {
	return p.held.Load() != 0
}

// CursorPosition returns the last pointer location the hook saw
func (p *HookProbe) CursorPosition() (x, y float64) {
	return math.Float64frombits(p.x.Load()), math.Float64frombits(p.y.Load())
}

func altBit(keycode uint16) uint32 {
	switch keycode {
	case keycodeAltLeft:
		return 1
	case keycodeAltRight:
		return 2
	}
	return 0
}

func ctrlBit(keycode uint16) uint32 {
	switch keycode {
	case keycodeCtrlLeft:
		return 1
	case keycodeCtrlRight:
		return 2
	}
	return 0
}

// hookHotkeys implements the hotkey part of PlatformFeatures on top of the
// shared input hook. Only the lock combination is available.
type hookHotkeys struct {
	mu      sync.Mutex
	running bool
	source  func() *HookProbe
}

func newHookHotkeys() hookHotkeys {
	return hookHotkeys{source: sharedHook}
}

// RegisterHotkey accepts only Ctrl+Alt+L under HotkeyToggleLock
func (h *hookHotkeys) RegisterHotkey(id int, modifiers uint, keyCode uint) error {
	if id == HotkeyToggleLock && modifiers == ModCtrl|ModAlt && keyCode == VK_L {
		return nil
	}
	return fmt.Errorf("hotkey %d: %w", id, ErrUnsupported)
}

// UnregisterHotkey is a no-op; the combination is fixed
func (h *hookHotkeys) UnregisterHotkey(id int) error {
	return nil
}

// SetupHotkeyListener routes Ctrl+Alt+L from the input hook to callback
func (h *hookHotkeys) SetupHotkeyListener(callback func(id int)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return nil
	}
	if err := h.RegisterHotkey(HotkeyToggleLock, ModCtrl|ModAlt, VK_L); err != nil {
		return err
	}
	h.source().SetHotkeyCallback(callback)
	h.running = true
	log.Debug().Msg("Hotkey listener attached to input hook")
	return nil
}

// StopHotkeyListener detaches the callback from the input hook
func (h *hookHotkeys) StopHotkeyListener() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}
	h.source().SetHotkeyCallback(nil)
	h.running = false
}
