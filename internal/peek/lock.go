package peek

import "sync/atomic"

// Lock is the user-driven override that forces the expanded state.
// The click handler writes it and the monitor reads it once per tick.
type Lock struct {
	locked atomic.Bool
}

// NewLock creates a lock in the given initial position
func NewLock(locked bool) *Lock {
	l := &Lock{}
	l.locked.Store(locked)
	return l
}

// Lock forces the widget open from the next tick on
func (l *Lock) Lock() {
	l.locked.Store(true)
}

// Unlock hands control back to the polled inputs
func (l *Lock) Unlock() {
	l.locked.Store(false)
}

// IsLocked returns the current lock position
func (l *Lock) IsLocked() bool {
	return l.locked.Load()
}

// Toggle flips the lock and returns the new position
func (l *Lock) Toggle() bool {
	for {
		old := l.locked.Load()
		if l.locked.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
