package vault

import (
	"encoding/binary"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/x"
	"github.com/iov-one/timevault/x/cash"
)

const (
	initializeCost        int64 = 200
	depositCost           int64 = 100
	withdrawCost          int64 = 50
	emergencyWithdrawCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r timevault.Registry, auth x.Authenticator, bank cash.CoinMover) {
	ctrl := NewController(auth, bank)
	r.Handle(&InitializeMsg{}, InitializeHandler{ctrl})
	r.Handle(&DepositMsg{}, DepositHandler{ctrl})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{ctrl})
	r.Handle(&EmergencyWithdrawMsg{}, EmergencyWithdrawHandler{ctrl})
}

// InitializeHandler creates new vaults.
type InitializeHandler struct {
	ctrl Controller
}

var _ timevault.Handler = InitializeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializeHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	var msg InitializeMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !timevault.InTheFuture(ctx, msg.UnlockTime) {
		return nil, errors.Wrap(ErrInvalidConfiguration, "unlock time not in the future")
	}
	return &timevault.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver creates the vault and returns its id.
func (h InitializeHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	var msg InitializeMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	id, err := h.ctrl.Create(ctx, db, msg.Config())
	if err != nil {
		return nil, err
	}
	return &timevault.DeliverResult{Data: id}, nil
}

// DepositHandler moves tokens from the owner into a vault.
type DepositHandler struct {
	ctrl Controller
}

var _ timevault.Handler = DepositHandler{}

// Check verifies the message and the signature of the caller.
func (h DepositHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	var msg DepositMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authenticate(ctx, msg.Caller); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver moves the tokens if all preconditions are met.
func (h DepositHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	var msg DepositMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Deposit(ctx, db, msg.VaultID, msg.Caller, msg.Amount); err != nil {
		return nil, err
	}
	return &timevault.DeliverResult{}, nil
}

// WithdrawHandler pays a vault balance out to the beneficiary.
type WithdrawHandler struct {
	ctrl Controller
}

var _ timevault.Handler = WithdrawHandler{}

// Check verifies the message and the signature of the caller.
func (h WithdrawHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	var msg WithdrawMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authenticate(ctx, msg.Caller); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver returns the paid amount as big endian encoded result data.
func (h WithdrawHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	var msg WithdrawMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	paid, err := h.ctrl.Withdraw(ctx, db, msg.VaultID, msg.Caller)
	if err != nil {
		return nil, err
	}
	return &timevault.DeliverResult{Data: encodeAmount(paid)}, nil
}

// EmergencyWithdrawHandler pays a vault balance back to the owner.
type EmergencyWithdrawHandler struct {
	ctrl Controller
}

var _ timevault.Handler = EmergencyWithdrawHandler{}

// Check verifies the message and the signature of the caller.
func (h EmergencyWithdrawHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	var msg EmergencyWithdrawMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authenticate(ctx, msg.Caller); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: emergencyWithdrawCost}, nil
}

// Deliver returns the paid amount as big endian encoded result data.
func (h EmergencyWithdrawHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	var msg EmergencyWithdrawMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	paid, err := h.ctrl.EmergencyWithdraw(ctx, db, msg.VaultID, msg.Caller)
	if err != nil {
		return nil, err
	}
	return &timevault.DeliverResult{Data: encodeAmount(paid)}, nil
}

func encodeAmount(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}
