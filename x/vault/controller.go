package vault

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/coin"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/x"
	"github.com/iov-one/timevault/x/cash"
	"github.com/iov-one/timevault/x/utils"
)

// Controller implements the vault state transitions. Each operation runs
// inside its own savepoint: it either writes all of its changes,
// including the token transfer, or none of them.
type Controller struct {
	auth x.Authenticator
	bank cash.CoinMover
}

// NewController returns a controller that authenticates callers with auth
// and moves tokens with bank.
func NewController(auth x.Authenticator, bank cash.CoinMover) Controller {
	return Controller{auth: auth, bank: bank}
}

// Create allocates a new vault id and initializes it.
func (c Controller) Create(ctx timevault.Context, db timevault.KVStore, cfg *Config) ([]byte, error) {
	var id []byte
	err := utils.Atomic(db, func(db timevault.KVStore) error {
		var err error
		if id, err = NextID(db); err != nil {
			return err
		}
		return c.initialize(ctx, db, id, cfg)
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

// Initialize writes the configuration of the vault with the given id and
// an empty balance. The unlock time must be after the block time. A vault
// can be initialized only once.
func (c Controller) Initialize(ctx timevault.Context, db timevault.KVStore, id []byte, cfg *Config) error {
	return utils.Atomic(db, func(db timevault.KVStore) error {
		return c.initialize(ctx, db, id, cfg)
	})
}

func (c Controller) initialize(ctx timevault.Context, db timevault.KVStore, id []byte, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !timevault.InTheFuture(ctx, cfg.UnlockTime) {
		return errors.Wrapf(ErrInvalidConfiguration, "unlock time %s not in the future", cfg.UnlockTime)
	}
	s := NewStore(db, id)
	if err := s.SetConfig(cfg); err != nil {
		return err
	}
	if err := s.SetDepositedAmount(0); err != nil {
		return err
	}
	timevault.GetLogger(ctx).Info("vault initialized", "vault", id, "owner", cfg.Owner,
		"beneficiary", cfg.Beneficiary, "unlock", int64(cfg.UnlockTime), "token", cfg.Token)
	return nil
}

// Deposit moves amount tokens from the owner to the vault custody. The
// caller defaults to the main signer when nil.
func (c Controller) Deposit(ctx timevault.Context, db timevault.KVStore, id []byte, caller timevault.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive deposit %d", amount)
	}
	caller, err := c.authenticate(ctx, caller)
	if err != nil {
		return err
	}

	var total int64
	err = utils.Atomic(db, func(db timevault.KVStore) error {
		s := NewStore(db, id)
		cfg, err := s.Config()
		if err != nil {
			return err
		}
		if !cfg.Owner.Equals(caller) {
			return errors.Wrapf(errors.ErrUnauthorized, "%s is not the vault owner", caller)
		}
		deposited, err := s.DepositedAmount()
		if err != nil {
			return err
		}
		total = deposited + amount
		if total < deposited {
			return errors.Wrap(errors.ErrOverflow, "deposited amount")
		}
		if err := c.bank.MoveCoins(db, caller, Custody(id), coin.NewCoin(amount, cfg.Token)); err != nil {
			return errors.Wrap(err, "deposit transfer")
		}
		return s.SetDepositedAmount(total)
	})
	if err != nil {
		return err
	}
	timevault.GetLogger(ctx).Info("vault deposit", "vault", id, "caller", caller, "amount", amount, "deposited", total)
	return nil
}

// Withdraw pays the whole balance out to the beneficiary. It is allowed
// only once the block time reached the unlock time. The paid amount is
// returned.
func (c Controller) Withdraw(ctx timevault.Context, db timevault.KVStore, id []byte, caller timevault.Address) (int64, error) {
	return c.payout(ctx, db, id, caller, false)
}

// EmergencyWithdraw pays the whole balance back to the owner, regardless
// of the unlock time. The paid amount is returned.
func (c Controller) EmergencyWithdraw(ctx timevault.Context, db timevault.KVStore, id []byte, caller timevault.Address) (int64, error) {
	return c.payout(ctx, db, id, caller, true)
}

func (c Controller) payout(ctx timevault.Context, db timevault.KVStore, id []byte, caller timevault.Address, emergency bool) (int64, error) {
	caller, err := c.authenticate(ctx, caller)
	if err != nil {
		return 0, err
	}

	var paid int64
	err = utils.Atomic(db, func(db timevault.KVStore) error {
		s := NewStore(db, id)
		cfg, err := s.Config()
		if err != nil {
			return err
		}

		dest, role := cfg.Beneficiary, "beneficiary"
		if emergency {
			dest, role = cfg.Owner, "owner"
		}
		if !dest.Equals(caller) {
			return errors.Wrapf(errors.ErrUnauthorized, "%s is not the vault %s", caller, role)
		}
		if !emergency && !timevault.IsExpired(ctx, cfg.UnlockTime) {
			return errors.Wrapf(ErrStillLocked, "until %s", cfg.UnlockTime)
		}

		deposited, err := s.DepositedAmount()
		if err != nil {
			return err
		}
		if deposited == 0 {
			return errors.Wrapf(ErrNothingToWithdraw, "vault %X", id)
		}
		if err := c.bank.MoveCoins(db, Custody(id), dest, coin.NewCoin(deposited, cfg.Token)); err != nil {
			return errors.Wrap(err, "withdraw transfer")
		}
		if err := s.SetDepositedAmount(0); err != nil {
			return err
		}
		paid = deposited
		return nil
	})
	if err != nil {
		return 0, err
	}
	timevault.GetLogger(ctx).Info("vault withdraw", "vault", id, "caller", caller, "amount", paid, "emergency", emergency)
	return paid, nil
}

// Unlocked returns true if the block time reached the unlock time of the
// vault.
func (c Controller) Unlocked(ctx timevault.Context, db timevault.ReadOnlyKVStore, id []byte) (bool, error) {
	unlock, err := NewReader(db, id).UnlockTime()
	if err != nil {
		return false, err
	}
	return timevault.IsExpired(ctx, unlock), nil
}

// authenticate resolves the acting identity and ensures it signed the
// transaction.
func (c Controller) authenticate(ctx timevault.Context, caller timevault.Address) (timevault.Address, error) {
	if caller == nil {
		caller = x.MainSigner(ctx, c.auth).Address()
	}
	if err := x.IsAuthenticated(ctx, c.auth, caller); err != nil {
		return nil, err
	}
	return caller, nil
}
