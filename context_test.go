package timevault

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 42)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), h)

	assert.Panics(t, func() { WithHeight(ctx, 43) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))

	ctx = WithChainID(ctx, "test-chain")
	assert.Equal(t, "test-chain", GetChainID(ctx))

	// Setting the same value again is fine.
	ctx = WithChainID(ctx, "test-chain")
	assert.Panics(t, func() { WithChainID(ctx, "other-chain") })
	assert.Panics(t, func() { WithChainID(context.Background(), "no") })
}

func TestContextBlockTime(t *testing.T) {
	now := time.Unix(1000, 0)
	ctx := WithBlockTime(context.Background(), now)

	got, ok := BlockTime(ctx)
	assert.True(t, ok)
	assert.Equal(t, now, got)

	cases := map[string]struct {
		t           UnixTime
		wantExpired bool
		wantFuture  bool
	}{
		"past":   {t: 999, wantExpired: true, wantFuture: false},
		"now":    {t: 1000, wantExpired: true, wantFuture: false},
		"future": {t: 1001, wantExpired: false, wantFuture: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantExpired, IsExpired(ctx, tc.t))
			assert.Equal(t, tc.wantFuture, InTheFuture(ctx, tc.t))
		})
	}
}

func TestContextBlockTimeMissing(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { IsExpired(ctx, 1) })
	assert.Panics(t, func() { InTheFuture(ctx, 1) })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.TestingLogger()
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "module", "vault")
	assert.NotNil(t, GetLogger(ctx))
}
