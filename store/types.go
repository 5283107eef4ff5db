//nolint
package store

import "github.com/iov-one/timevault"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = timevault.ReadOnlyKVStore
type SetDeleter = timevault.SetDeleter
type KVStore = timevault.KVStore
type Batch = timevault.Batch
type CacheableKVStore = timevault.CacheableKVStore
type KVCacheWrap = timevault.KVCacheWrap
type CommitKVStore = timevault.CommitKVStore
type CommitID = timevault.CommitID
