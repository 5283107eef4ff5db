package vault

import (
	"encoding/binary"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/orm"
)

// BucketName prefixes every key written by this extension.
const BucketName = "vault"

const (
	fieldOwner       = "owner"
	fieldBeneficiary = "beneficiary"
	fieldUnlockTime  = "unlock"
	fieldToken       = "token"
	fieldDeposited   = "deposited"
)

var idSeq = orm.NewSequence(BucketName, orm.SeqID)

// ID returns the vault identifier of the n-th allocated vault.
func ID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// NextID allocates the identifier of a new vault.
func NextID(db timevault.KVStore) ([]byte, error) {
	id, err := idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "vault sequence")
	}
	return id, nil
}

func stateKey(id []byte, field string) []byte {
	key := make([]byte, 0, len(BucketName)+len(id)+len(field)+2)
	key = append(key, BucketName...)
	key = append(key, ':')
	key = append(key, id...)
	key = append(key, ':')
	return append(key, field...)
}

// Reader gives access to the state of a single vault. Every field is
// stored under its own key and can be read independently.
type Reader struct {
	db timevault.ReadOnlyKVStore
	id []byte
}

// NewReader returns a reader of the vault with the given id.
func NewReader(db timevault.ReadOnlyKVStore, id []byte) Reader {
	return Reader{db: db, id: id}
}

// ID returns the identifier of the vault.
func (r Reader) ID() []byte {
	return r.id
}

func (r Reader) get(field string) ([]byte, error) {
	raw, err := r.db.Get(stateKey(r.id, field))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, errors.Wrapf(ErrUninitialized, "vault %X", r.id)
	}
	return raw, nil
}

// Initialized returns true once the configuration was written.
func (r Reader) Initialized() (bool, error) {
	ok, err := r.db.Has(stateKey(r.id, fieldOwner))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

func (r Reader) Owner() (timevault.Address, error) {
	raw, err := r.get(fieldOwner)
	if err != nil {
		return nil, err
	}
	return timevault.Address(raw), nil
}

func (r Reader) Beneficiary() (timevault.Address, error) {
	raw, err := r.get(fieldBeneficiary)
	if err != nil {
		return nil, err
	}
	return timevault.Address(raw), nil
}

func (r Reader) UnlockTime() (timevault.UnixTime, error) {
	raw, err := r.get(fieldUnlockTime)
	if err != nil {
		return 0, err
	}
	t, err := timevault.UnixTimeFromBytes(raw)
	if err != nil {
		return 0, errors.Wrap(errors.ErrState, "unlock time")
	}
	return t, nil
}

func (r Reader) Token() (string, error) {
	raw, err := r.get(fieldToken)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DepositedAmount returns the amount of tokens the vault holds in custody.
func (r Reader) DepositedAmount() (int64, error) {
	raw, err := r.get(fieldDeposited)
	if err != nil {
		return 0, err
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "deposited amount of %d bytes", len(raw))
	}
	amount := int64(binary.BigEndian.Uint64(raw))
	if amount < 0 {
		return 0, errors.Wrap(errors.ErrState, "negative deposited amount")
	}
	return amount, nil
}

// Config loads all configuration fields.
func (r Reader) Config() (*Config, error) {
	owner, err := r.Owner()
	if err != nil {
		return nil, err
	}
	beneficiary, err := r.Beneficiary()
	if err != nil {
		return nil, err
	}
	unlock, err := r.UnlockTime()
	if err != nil {
		return nil, err
	}
	token, err := r.Token()
	if err != nil {
		return nil, err
	}
	return &Config{
		Owner:       owner,
		Beneficiary: beneficiary,
		UnlockTime:  unlock,
		Token:       token,
	}, nil
}

// Store extends the Reader with write access.
type Store struct {
	Reader
	db timevault.KVStore
}

// NewStore returns a store of the vault with the given id.
func NewStore(db timevault.KVStore, id []byte) Store {
	return Store{
		Reader: NewReader(db, id),
		db:     db,
	}
}

// SetConfig writes the configuration. It can be done only once for
// every vault.
func (s Store) SetConfig(c *Config) error {
	ok, err := s.Initialized()
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(ErrAlreadyInitialized, "vault %X", s.id)
	}
	fields := []struct {
		name  string
		value []byte
	}{
		{fieldOwner, c.Owner},
		{fieldBeneficiary, c.Beneficiary},
		{fieldUnlockTime, c.UnlockTime.Bytes()},
		{fieldToken, []byte(c.Token)},
	}
	for _, f := range fields {
		if err := s.db.Set(stateKey(s.id, f.name), f.value); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// SetDepositedAmount overwrites the custody balance.
func (s Store) SetDepositedAmount(amount int64) error {
	if amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative deposited amount %d", amount)
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(amount))
	if err := s.db.Set(stateKey(s.id, fieldDeposited), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
