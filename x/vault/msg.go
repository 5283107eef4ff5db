package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
)

const (
	pathInitializeMsg        = "vault/initialize"
	pathDepositMsg           = "vault/deposit"
	pathWithdrawMsg          = "vault/withdraw"
	pathEmergencyWithdrawMsg = "vault/emergency_withdraw"
)

var _ timevault.Msg = (*InitializeMsg)(nil)
var _ timevault.Msg = (*DepositMsg)(nil)
var _ timevault.Msg = (*WithdrawMsg)(nil)
var _ timevault.Msg = (*EmergencyWithdrawMsg)(nil)

// InitializeMsg creates a new vault.
type InitializeMsg struct {
	Owner       timevault.Address  `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Beneficiary timevault.Address  `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	UnlockTime  timevault.UnixTime `protobuf:"varint,3,opt,name=unlock_time,json=unlockTime,proto3" json:"unlock_time,omitempty"`
	Token       string             `protobuf:"bytes,4,opt,name=token,proto3" json:"token,omitempty"`
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

// DepositMsg moves tokens from the owner into the vault custody.
// Caller defaults to the main signer.
type DepositMsg struct {
	VaultID []byte            `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Caller  timevault.Address `protobuf:"bytes,2,opt,name=caller,proto3" json:"caller,omitempty"`
	Amount  int64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

// WithdrawMsg pays the vault balance out to the beneficiary.
type WithdrawMsg struct {
	VaultID []byte            `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Caller  timevault.Address `protobuf:"bytes,2,opt,name=caller,proto3" json:"caller,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

// EmergencyWithdrawMsg pays the vault balance back to the owner.
type EmergencyWithdrawMsg struct {
	VaultID []byte            `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Caller  timevault.Address `protobuf:"bytes,2,opt,name=caller,proto3" json:"caller,omitempty"`
}

func (m *EmergencyWithdrawMsg) Reset()         { *m = EmergencyWithdrawMsg{} }
func (m *EmergencyWithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*EmergencyWithdrawMsg) ProtoMessage()    {}

//--------- Path routing --------

// Path fulfills timevault.Msg interface to allow routing
func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

// Path fulfills timevault.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Path fulfills timevault.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Path fulfills timevault.Msg interface to allow routing
func (EmergencyWithdrawMsg) Path() string {
	return pathEmergencyWithdrawMsg
}

//--------- Validation --------

// Config returns the vault configuration carried by the message.
func (m *InitializeMsg) Config() *Config {
	return &Config{
		Owner:       m.Owner,
		Beneficiary: m.Beneficiary,
		UnlockTime:  m.UnlockTime,
		Token:       m.Token,
	}
}

// Validate makes sure that this is sensible. The unlock time can only be
// checked against the block time.
func (m *InitializeMsg) Validate() error {
	return m.Config().Validate()
}

// Validate makes sure that this is sensible
func (m *DepositMsg) Validate() error {
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive deposit %d", m.Amount)
	}
	return validateParties(m.VaultID, m.Caller)
}

// Validate makes sure that this is sensible
func (m *WithdrawMsg) Validate() error {
	return validateParties(m.VaultID, m.Caller)
}

// Validate makes sure that this is sensible
func (m *EmergencyWithdrawMsg) Validate() error {
	return validateParties(m.VaultID, m.Caller)
}

func validateParties(id []byte, caller timevault.Address) error {
	if err := validateID(id); err != nil {
		return err
	}
	if caller != nil {
		if err := caller.Validate(); err != nil {
			return errors.Wrap(err, "caller")
		}
	}
	return nil
}

func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "vault id must be 8 bytes, got %d", len(id))
	}
	return nil
}
