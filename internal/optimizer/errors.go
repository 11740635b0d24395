package optimizer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the stop slice itself is nil.
	// An empty, non-nil slice is a valid trivial input.
	ErrEmptyInput = errors.New("optimizer: stops must not be nil")

	// ErrDuplicateID is returned when two stops share an id.
	ErrDuplicateID = errors.New("optimizer: duplicate stop id")

	// ErrInvalidOptions is returned for out-of-range configuration values.
	ErrInvalidOptions = errors.New("optimizer: invalid options")
)

// StopError ties a validation failure to the stop that caused it.
// Err is ErrDuplicateID or wraps geo.ErrInvalidCoordinate.
type StopError struct {
	Index  int
	StopID string
	Err    error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("optimizer: stop %q at index %d: %v", e.StopID, e.Index, e.Err)
}

func (e *StopError) Unwrap() error { return e.Err }
