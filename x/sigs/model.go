package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/crypto"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData is the state kept for every public key that ever signed a
// transaction.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

// Validate returns an error if the state is inconsistent.
func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// UserBucket stores the signer state keyed by address.
type UserBucket struct {
	orm.Bucket
}

// NewUserBucket returns the bucket of all signers.
func NewUserBucket() UserBucket {
	return UserBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &UserData{})),
	}
}

// GetUser returns the state of given address, or nil if it never signed.
func (b UserBucket) GetUser(db timevault.ReadOnlyKVStore, addr timevault.Address) (*UserData, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if obj == nil {
		return nil, nil
	}
	u, ok := obj.Value().(*UserData)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return u, nil
}

// GetOrCreate returns the user owning the public key, creating a fresh
// record if none is stored.
func (b UserBucket) GetOrCreate(db timevault.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := b.GetUser(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &UserData{Pubkey: pubkey}
	}
	return u, nil
}

// SaveUser writes the user under the address of its public key.
func (b UserBucket) SaveUser(db timevault.KVStore, u *UserData) error {
	if u.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	return b.Save(db, orm.NewSimpleObj(u.Pubkey.Address(), u))
}

// LoadUser returns the state of given address, or nil if it never signed.
func LoadUser(db timevault.ReadOnlyKVStore, addr timevault.Address) (*UserData, error) {
	return NewUserBucket().GetUser(db, addr)
}
