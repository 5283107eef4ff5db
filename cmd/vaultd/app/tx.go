package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/x/cash"
	"github.com/iov-one/timevault/x/sigs"
	"github.com/iov-one/timevault/x/vault"
)

// Tx is the transaction envelope of the vault chain. It carries the
// signatures and exactly one message.
type Tx struct {
	Signatures                []*sigs.StdSignature        `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CashSendMsg               *cash.SendMsg               `protobuf:"bytes,2,opt,name=cash_send_msg,json=cashSendMsg,proto3" json:"cash_send_msg,omitempty"`
	VaultInitializeMsg        *vault.InitializeMsg        `protobuf:"bytes,3,opt,name=vault_initialize_msg,json=vaultInitializeMsg,proto3" json:"vault_initialize_msg,omitempty"`
	VaultDepositMsg           *vault.DepositMsg           `protobuf:"bytes,4,opt,name=vault_deposit_msg,json=vaultDepositMsg,proto3" json:"vault_deposit_msg,omitempty"`
	VaultWithdrawMsg          *vault.WithdrawMsg          `protobuf:"bytes,5,opt,name=vault_withdraw_msg,json=vaultWithdrawMsg,proto3" json:"vault_withdraw_msg,omitempty"`
	VaultEmergencyWithdrawMsg *vault.EmergencyWithdrawMsg `protobuf:"bytes,6,opt,name=vault_emergency_withdraw_msg,json=vaultEmergencyWithdrawMsg,proto3" json:"vault_emergency_withdraw_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

var _ timevault.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (timevault.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return tx, nil
}

// EncodeTx serializes the transaction. Tx must not get a Marshal method of
// its own, as proto.Marshal would dispatch back to it.
func EncodeTx(tx *Tx) ([]byte, error) {
	bz, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

// GetMsg returns the single message carried by the transaction, or nil if
// no slot is set.
func (tx *Tx) GetMsg() (timevault.Msg, error) {
	var msgs []timevault.Msg
	if tx.CashSendMsg != nil {
		msgs = append(msgs, tx.CashSendMsg)
	}
	if tx.VaultInitializeMsg != nil {
		msgs = append(msgs, tx.VaultInitializeMsg)
	}
	if tx.VaultDepositMsg != nil {
		msgs = append(msgs, tx.VaultDepositMsg)
	}
	if tx.VaultWithdrawMsg != nil {
		msgs = append(msgs, tx.VaultWithdrawMsg)
	}
	if tx.VaultEmergencyWithdrawMsg != nil {
		msgs = append(msgs, tx.VaultEmergencyWithdrawMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, nil
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "%d messages in a single transaction", len(msgs))
	}
}

// SetMsg puts msg into its slot, clearing all the others.
func (tx *Tx) SetMsg(msg timevault.Msg) error {
	signatures := tx.Signatures
	tx.Reset()
	tx.Signatures = signatures

	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSendMsg = m
	case *vault.InitializeMsg:
		tx.VaultInitializeMsg = m
	case *vault.DepositMsg:
		tx.VaultDepositMsg = m
	case *vault.WithdrawMsg:
		tx.VaultWithdrawMsg = m
	case *vault.EmergencyWithdrawMsg:
		tx.VaultEmergencyWithdrawMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignBytes returns the bytes to sign: the transaction with all
// signatures removed.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	bz, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}
