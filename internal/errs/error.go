package errs

import (
	"errors"
)

// Error kinds surfaced by the lifecycle core. All are terminal for the
// triggering call; handlers map them onto HTTP statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrInvalidRange    = errors.New("date window out of range")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfStock      = errors.New("no available copies")
	ErrConflict        = errors.New("conflict")
)
