package vault

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
)

// RegisterQuery exposes every vault field under its own path. The query
// data is the vault id.
func RegisterQuery(qr timevault.QueryRouter) {
	qr.Register("/vaults/owner", fieldQuery(fieldOwner))
	qr.Register("/vaults/beneficiary", fieldQuery(fieldBeneficiary))
	qr.Register("/vaults/unlock_time", fieldQuery(fieldUnlockTime))
	qr.Register("/vaults/token", fieldQuery(fieldToken))
	qr.Register("/vaults/deposited", fieldQuery(fieldDeposited))
}

func fieldQuery(field string) timevault.QueryHandler {
	return timevault.QueryHandlerFunc(func(db timevault.ReadOnlyKVStore, mod string, data []byte) ([]timevault.Model, error) {
		if mod != timevault.KeyQueryMod {
			return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
		}
		if err := validateID(data); err != nil {
			return nil, err
		}
		raw, err := NewReader(db, data).get(field)
		if err != nil {
			return nil, err
		}
		return []timevault.Model{timevault.Pair(stateKey(data, field), raw)}, nil
	})
}
