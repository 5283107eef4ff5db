package x

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/auth for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(timevault.Context) []timevault.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(timevault.Context, timevault.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx timevault.Context) []timevault.Condition {
	var res []timevault.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx timevault.Context, addr timevault.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx timevault.Context, auth Authenticator) timevault.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// IsAuthenticated returns nil if the given address signed the current
// transaction, ErrUnauthenticated otherwise. Whether a signer may act is
// left to the caller.
func IsAuthenticated(ctx timevault.Context, auth Authenticator, addr timevault.Address) error {
	if len(auth.GetConditions(ctx)) == 0 {
		return errors.Wrap(errors.ErrUnauthenticated, "no signature")
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthenticated, "%s did not sign", addr)
	}
	return nil
}
