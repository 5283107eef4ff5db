package cash

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/coin"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice := vaulttest.NewCondition()
	bob := vaulttest.NewCondition()

	send := func(amount int64) *SendMsg {
		return &SendMsg{
			Source:      alice.Address(),
			Destination: bob.Address(),
			Amount:      coin.NewCoinp(amount, "IOV"),
		}
	}

	cases := map[string]struct {
		signer timevault.Condition
		msg    timevault.Msg
		// wantCheckErr is nil when only the state dependent delivery fails
		wantCheckErr *errors.Error
		wantErr      *errors.Error
		wantBobIOV   int64
	}{
		"valid send": {
			signer:     alice,
			msg:        send(40),
			wantBobIOV: 40,
		},
		"not signed by the source": {
			signer:       bob,
			msg:          send(40),
			wantCheckErr: errors.ErrUnauthenticated,
			wantErr:      errors.ErrUnauthenticated,
		},
		"not signed at all": {
			msg:          send(40),
			wantCheckErr: errors.ErrUnauthenticated,
			wantErr:      errors.ErrUnauthenticated,
		},
		"invalid amount": {
			signer:       alice,
			msg:          send(0),
			wantCheckErr: errors.ErrAmount,
			wantErr:      errors.ErrAmount,
		},
		"too much": {
			signer:  alice,
			msg:     send(1000),
			wantErr: errors.ErrInsufficientAmount,
		},
		"wrong message type": {
			signer:       alice,
			msg:          &vaulttest.Msg{RoutePath: "cash/send"},
			wantCheckErr: errors.ErrType,
			wantErr:      errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			require.NoError(t, ctrl.CoinMint(db, alice.Address(), coin.NewCoin(100, "IOV")))

			auth := &vaulttest.Auth{Signer: tc.signer}
			r := &router{}
			RegisterRoutes(r, auth, ctrl)
			h := r.handlers["cash/send"]
			require.NotNil(t, h)

			tx := &vaulttest.Tx{Msg: tc.msg}
			ctx := context.Background()
			_, err := h.Check(ctx, db, tx)
			if tc.wantCheckErr != nil {
				assert.True(t, tc.wantCheckErr.Is(err), "check: %+v", err)
			} else {
				assert.NoError(t, err)
			}

			_, err = h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "deliver: %+v", err)
				return
			}
			require.NoError(t, err)
			assertBalance(t, ctrl, db, bob.Address(), "IOV", tc.wantBobIOV)
		})
	}
}

func TestQueryWallet(t *testing.T) {
	db := store.MemStore()
	addr := vaulttest.NewCondition().Address()
	require.NoError(t, NewController().CoinMint(db, addr, coin.NewCoin(9, "IOV")))

	qr := timevault.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/wallets").Query(db, "", addr)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, NewWalletBucket().DBKey(addr), res[0].Key)

	var w Wallet
	require.NoError(t, proto.Unmarshal(res[0].Value, &w))
	assert.Equal(t, coin.NewCoin(9, "IOV"), w.Coins.Balance("IOV"))

	res, err = qr.Handler("/wallets").Query(db, "", vaulttest.NewCondition().Address())
	require.NoError(t, err)
	assert.Empty(t, res)
}

type router struct {
	handlers map[string]timevault.Handler
}

func (r *router) Handle(m timevault.Msg, h timevault.Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]timevault.Handler)
	}
	r.handlers[m.Path()] = h
}
