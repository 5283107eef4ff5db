package vaulttest

import (
	"context"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (timevault.CommitKVStore, func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "vaulttest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	db := iavl.NewCommitStore(dbpath, "db")
	return db, func() {
		db.Close()
		os.RemoveAll(dbpath)
	}
}

// Ctx returns a context with the given block time and height set.
func Ctx(now time.Time, height int64) timevault.Context {
	ctx := timevault.WithBlockTime(context.Background(), now)
	return timevault.WithHeight(ctx, height)
}
