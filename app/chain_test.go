package app

import (
	"context"
	"testing"

	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/iov-one/timevault/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	var (
		d1, d2, d3 vaulttest.Decorator
		h          vaulttest.Handler
		missing    *vaulttest.Decorator
	)

	stack := ChainDecorators(
		&d1,
		utils.NewLogging(),
		utils.NewRecovery(),
		missing,
		&d2,
	).Chain(nil, &d3).WithHandler(&h)

	ctx := context.Background()
	db := store.MemStore()

	_, err := stack.Check(ctx, db, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, db, nil)
	assert.NoError(t, err)

	for _, d := range []*vaulttest.Decorator{&d1, &d2, &d3} {
		assert.Equal(t, 1, d.CheckCallCount())
		assert.Equal(t, 1, d.DeliverCallCount())
	}
	assert.Equal(t, 2, h.CallCount())

	// an error stops the chain
	d2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 2, d1.DeliverCallCount())
	assert.Equal(t, 1, d3.DeliverCallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	var outer, inner vaulttest.Decorator
	stack := ChainDecorators(
		&outer,
		utils.NewRecovery(),
		&inner,
	).WithHandler(vaulttest.PanicHandler{Value: "boom"})

	_, err := stack.Deliver(context.Background(), store.MemStore(), nil)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
	assert.Equal(t, 1, outer.DeliverCallCount())
	assert.Equal(t, 1, inner.DeliverCallCount())

}
