package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store/iavl"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func newTestBaseApp(t *testing.T, h timevault.Handler, decoder timevault.TxDecoder) (BaseApp, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := NewStoreApp("base", iavl.NewMemCommitStore(), timevault.NewQueryRouter(), context.Background()).
		WithLogger(log.NewTMLogger(&buf))
	return NewBaseApp(s, decoder, h, false), &buf
}

func TestBaseAppBeginBlockSetsClock(t *testing.T) {
	h := &vaulttest.Handler{}
	decoder := func([]byte) (timevault.Tx, error) {
		return &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test/msg"}}, nil
	}
	b, logs := newTestBaseApp(t, h, decoder)

	now := time.Date(2019, 6, 1, 10, 30, 0, 0, time.UTC)
	b.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 5, Time: now}})

	got, ok := timevault.BlockTime(b.BlockContext())
	require.True(t, ok)
	assert.Equal(t, now, got)
	height, _ := timevault.GetHeight(b.BlockContext())
	assert.Equal(t, int64(5), height)

	out := logs.String()
	assert.Contains(t, out, "Begin block")
	assert.Contains(t, out, "height=5")
	assert.Contains(t, out, "2019-06-01T10:30:00Z")

	res := b.DeliverTx([]byte("any"))
	assert.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestBaseAppDecoderFailures(t *testing.T) {
	cases := map[string]struct {
		decoder  timevault.TxDecoder
		wantCode uint32
	}{
		"decoder error": {
			decoder: func([]byte) (timevault.Tx, error) {
				return nil, errors.Wrap(errors.ErrInput, "garbage")
			},
			wantCode: errors.ErrInput.ABCICode(),
		},
		"decoder panic": {
			decoder: func([]byte) (timevault.Tx, error) {
				panic("boom")
			},
			// panics are reported as internal errors
			wantCode: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := &vaulttest.Handler{}
			b, _ := newTestBaseApp(t, h, tc.decoder)
			b.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

			check := b.CheckTx([]byte("x"))
			assert.Equal(t, tc.wantCode, check.Code)
			assert.True(t, strings.HasPrefix(check.Log, "cannot check tx: "), check.Log)

			deliver := b.DeliverTx([]byte("x"))
			assert.Equal(t, tc.wantCode, deliver.Code)
			assert.Equal(t, 0, h.CallCount())
		})
	}
}
