package vault

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
)

const optKey = "vault"

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ timevault.Initializer = Initializer{}

// FromGenesis creates the vaults listed in the genesis file, in order.
// They start without funds and the genesis time is used as the current
// time.
func (Initializer) FromGenesis(ctx timevault.Context, opts timevault.Options, db timevault.KVStore) error {
	var vaults []Config
	if err := opts.ReadOptions(optKey, &vaults); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	// neither authentication nor transfers happen during creation
	ctrl := NewController(nil, nil)
	for i := range vaults {
		if _, err := ctrl.Create(ctx, db, &vaults[i]); err != nil {
			return errors.Wrapf(err, "vault %d", i)
		}
	}
	return nil
}
