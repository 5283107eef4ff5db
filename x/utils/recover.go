package utils

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
)

// Recovery is a decorator that turns a panic further down the stack into
// ErrPanic. The panic value is logged together with the message path.
type Recovery struct{}

var _ timevault.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check returns ErrPanic instead of panicking.
func (Recovery) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx, next timevault.Checker) (_ *timevault.CheckResult, err error) {
	defer recoverAs(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

// Deliver returns ErrPanic instead of panicking.
func (Recovery) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx, next timevault.Deliverer) (_ *timevault.DeliverResult, err error) {
	defer recoverAs(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recoverAs must be deferred directly for recover to see the panic.
func recoverAs(ctx timevault.Context, tx timevault.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	timevault.GetLogger(ctx).Error("Recovered from panic", "path", txPath(tx), "panic", r)
}
