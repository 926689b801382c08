package peek

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"cornerpeek/internal/platform"
)

// DefaultPollInterval is the sampling cadence of the monitor loop
const DefaultPollInterval = 50 * time.Millisecond

var (
	ErrNoDisplay = errors.New("primary display unavailable")
	ErrNoWindow  = errors.New("target window not found")
)

// Window is the windowing collaborator the monitor drives.
// platform.PlatformFeatures satisfies it.
type Window interface {
	GetScreenSize() (width, height int, err error)
	MoveWindowTo(handle platform.WindowHandle, x, y int) error
}

// Options configures a monitoring session
type Options struct {
	Params       Params
	PollInterval time.Duration
}

// DefaultOptions returns the built-in tunables and cadence
func DefaultOptions() Options {
	return Options{
		Params:       DefaultParams(),
		PollInterval: DefaultPollInterval,
	}
}

// run is one worker's lifetime
type run struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func (r *run) signal() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *run) stopped() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}

// session is the loop-local history; only the worker touches it
type session struct {
	handle platform.WindowHandle
	geom   Geometry

	state   State
	applied bool

	prevHeld   bool
	prevCorner bool
	ticks      uint64
}

// Monitor polls the input probe and lock and keeps the widget window
// at the position matching the current peek state.
// At most one worker runs per Monitor.
type Monitor struct {
	window  Window
	probe   platform.InputProbe
	lock    *Lock
	emitter Emitter
	log     zerolog.Logger

	active atomic.Bool
	gen    atomic.Uint64

	mu      sync.Mutex
	opts    Options
	current *run
}

// NewMonitor creates a stopped monitor
func NewMonitor(window Window, probe platform.InputProbe, lock *Lock, emitter Emitter, opts Options, logger zerolog.Logger) *Monitor {
	if probe == nil {
		probe = platform.InertProbe{}
	}
	if lock == nil {
		lock = NewLock(false)
	}
	if emitter == nil {
		emitter = discardEmitter{}
	}
	return &Monitor{
		window:  window,
		probe:   probe,
		lock:    lock,
		emitter: emitter,
		opts:    normalizeOptions(opts),
		log:     logger.With().Str("component", "peek").Logger(),
	}
}

func normalizeOptions(opts Options) Options {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Params.WidgetSize <= 0 {
		opts.Params = DefaultParams()
	}
	return opts
}

// Options returns the options the next session will use
func (m *Monitor) Options() Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts
}

// SetOptions replaces the options; a running session keeps its own copy
func (m *Monitor) SetOptions(opts Options) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = normalizeOptions(opts)
}

// Lock returns the lock the monitor reads
func (m *Monitor) Lock() *Lock {
	return m.lock
}

// Start launches the worker for the given window.
// Starting an already running monitor is a no-op. After a Stop, Start
// blocks until the previous worker has finished its last tick. Startup
// failures clear the active flag and are returned to the caller.
func (m *Monitor) Start(handle platform.WindowHandle) error {
	if !m.active.CompareAndSwap(false, true) {
		m.log.Debug().Msg("Monitor already running, start ignored")
		return nil
	}

	if handle == 0 {
		m.active.Store(false)
		return ErrNoWindow
	}

	// A stopped worker may still be inside a tick. Join it so two workers
	// never move the window at once.
	m.mu.Lock()
	prev := m.current
	m.mu.Unlock()
	if prev != nil {
		prev.signal()
		<-prev.done
	}

	width, height, err := m.window.GetScreenSize()
	if err != nil {
		m.active.Store(false)
		return fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	if width <= 0 || height <= 0 {
		m.active.Store(false)
		return fmt.Errorf("%w: invalid size %dx%d", ErrNoDisplay, width, height)
	}

	m.mu.Lock()
	opts := m.opts
	r := &run{stop: make(chan struct{}), done: make(chan struct{})}
	m.current = r
	m.mu.Unlock()

	geom := NewGeometry(width, height, opts.Params)
	gen := m.gen.Add(1)

	m.log.Info().
		Int("screen_w", width).
		Int("screen_h", height).
		Int("hidden_x", geom.HiddenX).
		Int("hidden_y", geom.HiddenY).
		Int("peek_x", geom.PeekX).
		Int("peek_y", geom.PeekY).
		Dur("interval", opts.PollInterval).
		Msg("Peek monitor started")

	go m.loop(&session{handle: handle, geom: geom}, opts.PollInterval, gen, r)
	return nil
}

// Stop asks the worker to exit and returns immediately.
// Use Wait to block until it has.
func (m *Monitor) Stop() {
	m.active.Store(false)

	m.mu.Lock()
	r := m.current
	m.mu.Unlock()

	if r != nil {
		r.signal()
	}
}

// Wait blocks until the most recent worker exits or ctx is done
func (m *Monitor) Wait(ctx context.Context) error {
	m.mu.Lock()
	r := m.current
	m.mu.Unlock()

	if r == nil {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether a worker is active
func (m *Monitor) IsRunning() bool {
	return m.active.Load()
}

// MoveToHidden tucks the window into the corner.
// Geometry is recomputed, so it is safe to call outside the loop.
func (m *Monitor) MoveToHidden(handle platform.WindowHandle) error {
	return m.moveTo(handle, Hidden)
}

// MoveToPeek brings the window to its visible anchor
func (m *Monitor) MoveToPeek(handle platform.WindowHandle) error {
	return m.moveTo(handle, Peeking)
}

func (m *Monitor) moveTo(handle platform.WindowHandle, s State) error {
	width, height, err := m.window.GetScreenSize()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	geom := NewGeometry(width, height, m.Options().Params)
	x, y := geom.Position(s)
	if err := m.window.MoveWindowTo(handle, x, y); err != nil {
		return fmt.Errorf("move to %s position: %w", s, err)
	}
	return nil
}

// loop runs ticks until stopped or superseded by a newer session
func (m *Monitor) loop(s *session, interval time.Duration, gen uint64, r *run) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if r.stopped() || !m.active.Load() || m.gen.Load() != gen {
			m.log.Info().Uint64("ticks", s.ticks).Msg("Peek monitor stopped")
			return
		}

		m.tick(s)

		select {
		case <-r.stop:
			m.log.Info().Uint64("ticks", s.ticks).Msg("Peek monitor stopped")
			return
		case <-ticker.C:
		}
	}
}

// tick samples the inputs once and applies the resulting state.
// The first tick of a session always applies; later ticks only act
// when the state changes.
func (m *Monitor) tick(s *session) {
	s.ticks++

	locked := m.lock.IsLocked()
	held := m.probe.IsModifierHeld()
	x, y := m.probe.CursorPosition()
	inCorner := s.geom.InCorner(x, y)

	if held != s.prevHeld {
		m.log.Debug().Uint64("tick", s.ticks).Bool("held", held).Msg("Modifier edge")
	}
	if inCorner != s.prevCorner {
		m.log.Debug().Uint64("tick", s.ticks).Bool("in_corner", inCorner).
			Float64("x", x).Float64("y", y).Msg("Corner edge")
	}
	s.prevHeld, s.prevCorner = held, inCorner

	target := Decide(locked, held, inCorner)
	if s.applied && target == s.state {
		return
	}

	px, py := s.geom.Position(target)
	if err := m.window.MoveWindowTo(s.handle, px, py); err != nil {
		// Not committed, so the next tick retries the move
		m.log.Warn().Err(err).Str("state", target.String()).Msg("Failed to move window")
		return
	}

	if err := m.emitter.Emit(EventStateChanged, target.String()); err != nil {
		m.log.Warn().Err(err).Str("state", target.String()).Msg("Failed to emit state change")
	}

	m.log.Debug().
		Uint64("tick", s.ticks).
		Str("from", s.state.String()).
		Str("to", target.String()).
		Bool("first", !s.applied).
		Msg("Peek state changed")

	s.state = target
	s.applied = true
}

type discardEmitter struct{}

func (discardEmitter) Emit(string, string) error { return nil }
