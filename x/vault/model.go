package vault

import (
	"fmt"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/coin"
	"github.com/iov-one/timevault/errors"
)

// Config is the write-once configuration of a vault.
type Config struct {
	Owner       timevault.Address  `json:"owner"`
	Beneficiary timevault.Address  `json:"beneficiary"`
	UnlockTime  timevault.UnixTime `json:"unlock_time"`
	Token       string             `json:"token"`
}

// Validate checks everything that does not depend on the current time.
// Owner and beneficiary equality is reported before any other problem.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidConfiguration, "missing")
	}
	if c.Owner.Equals(c.Beneficiary) {
		return errors.Wrap(ErrInvalidConfiguration, "owner and beneficiary must differ")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfiguration, "owner: %s", err)
	}
	if err := c.Beneficiary.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfiguration, "beneficiary: %s", err)
	}
	if !coin.IsCC(c.Token) {
		return errors.Wrapf(ErrInvalidConfiguration, "token %q", c.Token)
	}
	if c.UnlockTime.IsZero() || c.UnlockTime.Validate() != nil {
		return errors.Wrap(ErrInvalidConfiguration, "unlock time")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("owner=%s beneficiary=%s unlock=%d token=%s",
		c.Owner, c.Beneficiary, c.UnlockTime, c.Token)
}

// Condition returns the condition that owns the funds held by the vault
// with the given id.
func Condition(id []byte) timevault.Condition {
	return timevault.NewCondition("vault", "seq", id)
}

// Custody returns the address holding the funds of the vault with the
// given id.
func Custody(id []byte) timevault.Address {
	return Condition(id).Address()
}
