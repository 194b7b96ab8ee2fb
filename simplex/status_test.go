package simplex

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{err: nil, want: Optimal},
		{err: errors.Wrap(ErrNoPivot, "ctx"), want: Optimal},
		{err: errors.Wrap(ErrUnbounded, "ctx"), want: Unbounded},
		{err: errors.Wrapf(errors.Wrap(ErrPrimalInfeasible, "inner"), "outer %d", 1), want: PrimalInfeasible},
		{err: errors.WithStack(ErrNoFractionalRow), want: NoCutAvailable},
		{err: ErrIterationLimit, want: IterationLimit},
		{err: errors.New("something else"), want: Failed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), "%v", tt.err)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "optimal", Optimal.String())
	assert.Equal(t, "cut applied", CutApplied.String())
	assert.Equal(t, "no cut available", NoCutAvailable.String())
	assert.Equal(t, "unknown", Status(42).String())
}
