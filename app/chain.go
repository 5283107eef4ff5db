package app

import (
	"reflect"

	"github.com/iov-one/timevault"
)

// Decorators is an ordered stack of decorators waiting for the Handler they
// will wrap. The first decorator of the stack sees a transaction first.
type Decorators struct {
	chain []timevault.Decorator
}

/*
ChainDecorators starts a stack of decorators. Resolve it with WithHandler:

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(router)
*/
func ChainDecorators(chain ...timevault.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of the stack extended with the given decorators.
// Nil decorators, typed nil pointers included, are skipped so optional
// decorators can be passed unconditionally.
func (d Decorators) Chain(chain ...timevault.Decorator) Decorators {
	out := make([]timevault.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(out, d.chain)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return Decorators{chain: out}
}

func isNilDecorator(d timevault.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack around h.
func (d Decorators) WithHandler(h timevault.Handler) timevault.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{dec: d.chain[i], next: h}
	}
	return h
}

// layer runs one decorator in front of the rest of the stack.
type layer struct {
	dec  timevault.Decorator
	next timevault.Handler
}

var _ timevault.Handler = layer{}

func (l layer) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
