package awt

import (
	"errors"
	"fmt"
)

// Sentinel errors for the awt package.
var (
	// ErrNotDrawing is returned by drawing and state calls made while the
	// session is Idle.
	ErrNotDrawing = errors.New("awt: session not drawing")

	// ErrSessionActive is returned by Begin when a session is already
	// running.
	ErrSessionActive = errors.New("awt: session already begun")

	// ErrSessionFailed is returned by every call except End after the
	// session failed.
	ErrSessionFailed = errors.New("awt: session failed")

	// ErrUnbalancedState is returned by Restore without a matching Save.
	ErrUnbalancedState = errors.New("awt: restore without save")

	// ErrInvalidPaint is returned for a nil paint or a gradient whose
	// stops or geometry cannot be evaluated.
	ErrInvalidPaint = errors.New("awt: invalid paint")

	// ErrInvalidComposite is returned for an unknown rule or an extra
	// alpha outside [0, 1].
	ErrInvalidComposite = errors.New("awt: invalid composite")

	// ErrNoFont is returned by text drawing when no font is set.
	ErrNoFont = errors.New("awt: no font")
)

// StateError reports a call made in the wrong session state.
type StateError struct {
	Op    string
	State SessionState
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("awt: %s: session %s: %v", e.Op, e.State, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// UnbalancedStateError reports a Restore with no Save left to pop. Depth
// is the number of states on the stack at the time, including the
// initial one.
type UnbalancedStateError struct {
	Depth int
}

func (e *UnbalancedStateError) Error() string {
	return fmt.Sprintf("awt: restore without save (depth %d)", e.Depth)
}

// Is reports whether target is ErrUnbalancedState.
func (e *UnbalancedStateError) Is(target error) bool {
	return target == ErrUnbalancedState
}
