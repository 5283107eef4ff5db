package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store/iavl"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newTestStoreApp(t *testing.T, db timevault.CommitKVStore, init timevault.Initializer) *StoreApp {
	t.Helper()
	qr := timevault.NewQueryRouter()
	qr.Register("/dummy", timevault.QueryHandlerFunc(func(db timevault.ReadOnlyKVStore, mod string, data []byte) ([]timevault.Model, error) {
		raw, err := db.Get(data)
		if err != nil || raw == nil {
			return nil, err
		}
		return []timevault.Model{timevault.Pair(data, raw)}, nil
	}))
	return NewStoreApp("dummy", db, qr, context.Background()).WithInit(init)
}

func TestStoreAppInitChain(t *testing.T) {
	genesisTime := time.Date(2019, 4, 1, 12, 0, 0, 0, time.UTC)
	counter := &countInit{}
	s := newTestStoreApp(t, iavl.NewMemCommitStore(), ChainInitializers(dummyInit{}, counter))
	assert.Equal(t, "", s.GetChainID())

	s.InitChain(abci.RequestInitChain{
		Time:          genesisTime,
		ChainId:       "test-chain-67",
		AppStateBytes: []byte(`{"dummy": "secret"}`),
	})
	assert.Equal(t, "test-chain-67", s.GetChainID())
	assert.Equal(t, 1, counter.called)

	// initializers run at the genesis time
	now, ok := timevault.BlockTime(counter.ctx)
	require.True(t, ok)
	assert.True(t, genesisTime.Equal(now))
	assert.Equal(t, "test-chain-67", timevault.GetChainID(counter.ctx))

	val, err := s.DeliverStore().Get([]byte(dummyKey))
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), val)

	// genesis can be loaded only once
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain-67", AppStateBytes: []byte(`{}`)})
	})
}

func TestStoreAppInitChainRequiresAppState(t *testing.T) {
	s := newTestStoreApp(t, iavl.NewMemCommitStore(), dummyInit{})
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain-67"})
	})
}

func TestStoreAppCommitAndQuery(t *testing.T) {
	db, cleanup := vaulttest.CommitKVStore(t)
	defer cleanup()
	s := newTestStoreApp(t, db, dummyInit{})
	s.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-67",
		AppStateBytes: []byte(`{"dummy": "secret"}`),
	})

	blockTime := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: blockTime}})
	h, ok := timevault.GetHeight(s.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(1), h)
	now, ok := timevault.BlockTime(s.BlockContext())
	require.True(t, ok)
	assert.True(t, blockTime.Equal(now))

	// nothing is visible before the commit
	models, err := QueryModels(NewBaseApp(s, nil, nil, false), "/dummy", []byte(dummyKey))
	require.NoError(t, err)
	assert.Empty(t, models)

	res := s.Commit()
	assert.NotEmpty(t, res.Data)

	models, err = QueryModels(NewBaseApp(s, nil, nil, false), "/dummy", []byte(dummyKey))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("secret"), models[0].Value)

	_, err = QueryModels(NewBaseApp(s, nil, nil, false), "/unknown", nil)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, res.Data, info.LastBlockAppHash)

	// a restarted application finds its chain id and height
	restarted := newTestStoreApp(t, db, dummyInit{})
	assert.Equal(t, "test-chain-67", restarted.GetChainID())
	h, _ = timevault.GetHeight(restarted.BlockContext())
	assert.Equal(t, int64(1), h)
}

func TestResultSets(t *testing.T) {
	models := []timevault.Model{
		timevault.Pair([]byte("a"), []byte("1")),
		timevault.Pair([]byte("b"), []byte("2")),
	}
	joined, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(ResultsFromKeys(models), ResultsFromValues(models[:1]))
	assert.True(t, errors.ErrState.Is(err))
}
