package peek

import (
	"errors"
	"fmt"
)

// ErrUnknownState is returned when a state tag cannot be parsed
var ErrUnknownState = errors.New("unknown peek state")

// State is the discrete visibility state of the widget
type State int

const (
	Hidden State = iota
	Peeking
	Expanded
)

// String returns the lowercase tag carried in state-change events
func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Peeking:
		return "peeking"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Visible reports whether the widget sits at its on-screen anchor
func (s State) Visible() bool {
	return s == Peeking || s == Expanded
}

// ParseState converts a tag back into a State
func ParseState(tag string) (State, error) {
	switch tag {
	case "hidden":
		return Hidden, nil
	case "peeking":
		return Peeking, nil
	case "expanded":
		return Expanded, nil
	}
	return Hidden, fmt.Errorf("%w: %q", ErrUnknownState, tag)
}

// Decide maps one tick's sampled inputs to a state.
// The lock overrides everything; a peek needs both the modifier and the corner.
func Decide(locked, modifierHeld, inCorner bool) State {
	switch {
	case locked:
		return Expanded
	case modifierHeld && inCorner:
		return Peeking
	default:
		return Hidden
	}
}
