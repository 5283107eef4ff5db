package app

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
)

// CommitStore owns the committed state and two scratch pads built on top of
// it. Delivered transactions write to the deliver pad, which is flushed on
// Commit. The check pad only serves the mempool and is dropped on Commit.
type CommitStore struct {
	committed timevault.CommitKVStore
	deliver   timevault.KVCacheWrap
	check     timevault.KVCacheWrap
}

// NewCommitStore loads the latest version of the store or panics.
func NewCommitStore(store timevault.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(err, "load latest version"))
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (timevault.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the last commit and starts a
// new block with fresh pads.
func (cs *CommitStore) Commit() (timevault.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return timevault.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

// CheckStore is the pad for CheckTx.
func (cs *CommitStore) CheckStore() timevault.CacheableKVStore {
	return cs.check
}

// DeliverStore is the pad for DeliverTx and genesis.
func (cs *CommitStore) DeliverStore() timevault.CacheableKVStore {
	return cs.deliver
}

// The chain id is written once at genesis, under a key no bucket can
// produce.
var chainIDKey = []byte("_tv:chainID")

// loadChainID returns the stored chain id, or an empty string before
// genesis.
func loadChainID(kv timevault.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores the chain id. It fails for an invalid id and when an
// id is already stored.
func saveChainID(kv timevault.KVStore, chainID string) error {
	if !timevault.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case exists:
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis")
	}
	if err := kv.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
