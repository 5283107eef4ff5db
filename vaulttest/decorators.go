package vaulttest

import "github.com/iov-one/timevault"

// Decorator is a mock timevault.Decorator. Every call is counted and its
// context is kept in LastCtx, so a test can inspect what an outer decorator
// passed down. A set CheckErr or DeliverErr is returned without calling the
// next handler.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	// LastCtx is the context of the most recent call.
	LastCtx timevault.Context

	checks   int
	delivers int
}

var _ timevault.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx, next timevault.Checker) (*timevault.CheckResult, error) {
	d.checks++
	d.LastCtx = ctx
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx, next timevault.Deliverer) (*timevault.DeliverResult, error) {
	d.delivers++
	d.LastCtx = ctx
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checks
}

func (d *Decorator) DeliverCallCount() int {
	return d.delivers
}

func (d *Decorator) CallCount() int {
	return d.checks + d.delivers
}

// Decorate wraps h in the given decorators. The first decorator runs first.
// Packages that cannot import app use it to build small stacks.
func Decorate(h timevault.Handler, ds ...timevault.Decorator) timevault.Handler {
	for i := len(ds) - 1; i >= 0; i-- {
		h = wrapped{dec: ds[i], next: h}
	}
	return h
}

type wrapped struct {
	dec  timevault.Decorator
	next timevault.Handler
}

func (w wrapped) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	return w.dec.Check(ctx, db, tx, w.next)
}

func (w wrapped) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	return w.dec.Deliver(ctx, db, tx, w.next)
}
