package app

import (
	"errors"
	"fmt"
)

// ErrQuit ends a session loop normally.
var ErrQuit = errors.New("quit requested")

// ErrUsage reports a malformed session command.
var ErrUsage = errors.New("usage")

// usage returns an ErrUsage error showing the expected form.
func usage(form string) error {
	return fmt.Errorf("%w: %s", ErrUsage, form)
}
