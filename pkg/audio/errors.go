// ABOUTME: Error taxonomy for the stimulus signal model
// ABOUTME: Sentinel errors matched with errors.Is by callers
package audio

import "errors"

var (
	// ErrValidation reports an invalid constructor or setter argument. The
	// stimulus keeps its last valid state when a setter returns it.
	ErrValidation = errors.New("invalid argument")

	// ErrState reports an operation invalid in the current state, e.g.
	// cropping with tmin > tmax.
	ErrState = errors.New("invalid state")

	// ErrNoPlayer reports a Play or Stop call on a stimulus constructed
	// without a Player.
	ErrNoPlayer = errors.New("no player attached")
)
