package app

import (
	"github.com/iov-one/timevault"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...timevault.Initializer) timevault.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []timevault.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(ctx timevault.Context, opts timevault.Options, kv timevault.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(ctx, opts, kv); err != nil {
			return err
		}
	}
	return nil
}
