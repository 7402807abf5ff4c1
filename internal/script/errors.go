package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInterrupted is returned when a script is stopped by its context.
	ErrInterrupted = errors.New("script interrupted")
)
