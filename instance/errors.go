package instance

import "github.com/pkg/errors"

var (
	ErrEmptyProblem     = errors.New("instance: problem has no variables or no constraints")
	ErrUnsupportedRow   = errors.New("instance: only <= constraints are supported")
	ErrUnsupportedBound = errors.New("instance: only zero lower bounds are supported")
	ErrUnknownVariable  = errors.New("instance: unknown variable")
	ErrUnknownFormat    = errors.New("instance: unknown problem format")
)
