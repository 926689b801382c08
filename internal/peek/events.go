package peek

import (
	"errors"
	"sync"
)

// EventStateChanged is the only event the monitor emits.
// Its payload is the new state's lowercase tag.
const EventStateChanged = "peek-state-changed"

// ErrSlotClosed is returned when emitting into a closed slot
var ErrSlotClosed = errors.New("event slot closed")

// Emitter receives named events from the monitor
type Emitter interface {
	Emit(name, payload string) error
}

// Event is a single emitted notification
type Event struct {
	Name    string
	Payload string
}

// EventSlot is a single-slot channel where the latest event wins.
// Emit never blocks: a pending event the consumer has not read yet
// is replaced by the newer one.
type EventSlot struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

// NewEventSlot creates an empty slot
func NewEventSlot() *EventSlot {
	return &EventSlot{ch: make(chan Event, 1)}
}

// Emit stores an event, replacing any unread one
func (s *EventSlot) Emit(name, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSlotClosed
	}

	select {
	case <-s.ch:
	default:
	}
	s.ch <- Event{Name: name, Payload: payload}
	return nil
}

// C returns the receive side of the slot
func (s *EventSlot) C() <-chan Event {
	return s.ch
}

// Close closes the slot; consumers ranging over C terminate
func (s *EventSlot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
