package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/crypto"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChainID = "test-chain"

// StdTx is a signed transaction mock.
type StdTx struct {
	vaulttest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Msg.(*vaulttest.Msg).Serialized, nil
}

func newTx(payload string) *StdTx {
	return &StdTx{Tx: vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test", Serialized: []byte(payload)}}}
}

// signerHandler records the conditions seen by the handler.
type signerHandler struct {
	vaulttest.Handler
	seen []timevault.Condition
}

func (h *signerHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	h.seen = Authenticate{}.GetConditions(ctx)
	return h.Handler.Check(ctx, db, tx)
}

func (h *signerHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	h.seen = Authenticate{}.GetConditions(ctx)
	return h.Handler.Deliver(ctx, db, tx)
}

func TestDecorator(t *testing.T) {
	priv := vaulttest.NewKey()
	other := vaulttest.NewKey()
	ctx := timevault.WithChainID(context.Background(), testChainID)

	cases := map[string]struct {
		build       func(t *testing.T) *StdTx
		decorator   Decorator
		wantErr     *errors.Error
		wantSigners int
	}{
		"valid signature": {
			build: func(t *testing.T) *StdTx {
				tx := newTx("hello")
				sig, err := SignTx(priv, tx, testChainID, 0)
				require.NoError(t, err)
				tx.Signatures = []*StdSignature{sig}
				return tx
			},
			decorator:   NewDecorator(),
			wantSigners: 1,
		},
		"two signers": {
			build: func(t *testing.T) *StdTx {
				tx := newTx("hello")
				for _, k := range []*crypto.PrivateKey{priv, other} {
					sig, err := SignTx(k, tx, testChainID, 0)
					require.NoError(t, err)
					tx.Signatures = append(tx.Signatures, sig)
				}
				return tx
			},
			decorator:   NewDecorator(),
			wantSigners: 2,
		},
		"missing signature": {
			build:     func(t *testing.T) *StdTx { return newTx("hello") },
			decorator: NewDecorator(),
			wantErr:   errors.ErrUnauthenticated,
		},
		"missing signature allowed": {
			build:       func(t *testing.T) *StdTx { return newTx("hello") },
			decorator:   NewDecorator().AllowMissingSigs(),
			wantSigners: 0,
		},
		"signature over different content": {
			build: func(t *testing.T) *StdTx {
				tx := newTx("hello")
				sig, err := SignTx(priv, newTx("other"), testChainID, 0)
				require.NoError(t, err)
				tx.Signatures = []*StdSignature{sig}
				return tx
			},
			decorator: NewDecorator(),
			wantErr:   errors.ErrUnauthorized,
		},
		"wrong sequence": {
			build: func(t *testing.T) *StdTx {
				tx := newTx("hello")
				sig, err := SignTx(priv, tx, testChainID, 3)
				require.NoError(t, err)
				tx.Signatures = []*StdSignature{sig}
				return tx
			},
			decorator: NewDecorator(),
			wantErr:   ErrInvalidSequence,
		},
		"signed for another chain": {
			build: func(t *testing.T) *StdTx {
				tx := newTx("hello")
				sig, err := SignTx(priv, tx, "other-chain", 0)
				require.NoError(t, err)
				tx.Signatures = []*StdSignature{sig}
				return tx
			},
			decorator: NewDecorator(),
			wantErr:   errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			h := &signerHandler{}
			tx := tc.build(t)

			_, err := tc.decorator.Check(ctx, db, tx, h)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, h.seen, tc.wantSigners)
		})
	}
}

func TestReplayProtection(t *testing.T) {
	priv := vaulttest.NewKey()
	ctx := timevault.WithChainID(context.Background(), testChainID)
	db := store.MemStore()
	d := NewDecorator()

	tx := newTx("pay me")
	sig, err := SignTx(priv, tx, testChainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	h := &signerHandler{}
	_, err = d.Deliver(ctx, db, tx, h)
	require.NoError(t, err)
	require.Len(t, h.seen, 1)
	assert.Equal(t, priv.PublicKey().Condition(), h.seen[0])

	seq, err := NextSequence(db, priv.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	// the same transaction cannot be delivered twice
	_, err = d.Deliver(ctx, db, tx, h)
	assert.True(t, ErrInvalidSequence.Is(err))

	// but signing with the next sequence works
	sig, err = SignTx(priv, tx, testChainID, 1)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}
	_, err = d.Deliver(ctx, db, tx, h)
	require.NoError(t, err)

	user, err := LoadUser(db, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.Sequence)
}

func TestQueryUser(t *testing.T) {
	priv := vaulttest.NewKey()
	db := store.MemStore()
	qr := timevault.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/auth")
	require.NotNil(t, h)

	res, err := h.Query(db, "", priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = VerifySignature(db, mustSign(t, priv, []byte("x"), 0), []byte("x"), testChainID)
	require.NoError(t, err)

	res, err = h.Query(db, "", priv.PublicKey().Address())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, NewUserBucket().DBKey(priv.PublicKey().Address()), res[0].Key)
}

func TestSaveUserRequiresPubkey(t *testing.T) {
	db := store.MemStore()
	err := NewUserBucket().SaveUser(db, &UserData{})
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("data"), testChainID, 1)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("data"), testChainID, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)

	_, err = BuildSignBytes([]byte("data"), testChainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes([]byte("data"), "x", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func mustSign(t *testing.T, key *crypto.PrivateKey, payload []byte, seq int64) *StdSignature {
	t.Helper()
	bz, err := BuildSignBytes(payload, testChainID, seq)
	require.NoError(t, err)
	sig, err := key.Sign(bz)
	require.NoError(t, err)
	return &StdSignature{Pubkey: key.PublicKey(), Signature: sig, Sequence: seq}
}
