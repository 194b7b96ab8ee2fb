package model

import "github.com/pkg/errors"

var (
	ErrBadShape          = errors.New("model: invalid tableau shape")
	ErrOutOfRange        = errors.New("model: index out of range")
	ErrDimensionMismatch = errors.New("model: dimension mismatch")
	ErrNaNInf            = errors.New("model: NaN or Inf encountered")

	// ErrZeroPivot is returned when a pivot is requested on a zero entry.
	ErrZeroPivot = errors.New("model: pivot element is zero")

	// ErrNegativeRHS means the problem is not in the standard form the
	// primal engine starts from.
	ErrNegativeRHS = errors.New("model: right-hand side must be non-negative")
)
