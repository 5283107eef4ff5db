package vault

import "github.com/iov-one/timevault/errors"

// vault takes 1000-1010
var (
	ErrInvalidConfiguration = errors.Register(1000, "invalid vault configuration")
	ErrStillLocked          = errors.Register(1001, "vault still locked")
	ErrNothingToWithdraw    = errors.Register(1002, "nothing to withdraw")
	ErrUninitialized        = errors.Register(1003, "vault not initialized")
	ErrAlreadyInitialized   = errors.Register(1004, "vault already initialized")
)
