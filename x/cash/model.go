package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/coin"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/orm"
)

// BucketName is the key prefix of all wallets
const BucketName = "cash"

// Wallet holds all coins owned by a single address.
type Wallet struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate requires a normalized, non negative set of coins.
func (w *Wallet) Validate() error {
	if err := w.Coins.Validate(); err != nil {
		return err
	}
	if !w.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// WalletBucket stores one wallet per address.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket returns the bucket of all wallets.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{})),
	}
}

// GetWallet returns the wallet of given address, or nil if not found.
func (b WalletBucket) GetWallet(db timevault.ReadOnlyKVStore, addr timevault.Address) (*Wallet, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "load wallet")
	}
	if obj == nil {
		return nil, nil
	}
	w, ok := obj.Value().(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return w, nil
}

// SaveWallet stores the wallet, or deletes the record when it is empty.
func (b WalletBucket) SaveWallet(db timevault.KVStore, addr timevault.Address, w *Wallet) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.Coins.IsEmpty() {
		return b.Delete(db, addr)
	}
	return b.Save(db, orm.NewSimpleObj(addr, w))
}
