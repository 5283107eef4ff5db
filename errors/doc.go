/*
Package errors implements the error types used across timevault.

Every failure returned by a handler or a controller wraps one of the root
errors declared here (or registered by an extension with Register). This
allows callers to discriminate failure causes with the Is method and lets the
application translate them into ABCI codes without leaking internals.

  if errors.ErrUnauthorized.Is(err) {
	  // deny
  }

Extensions declare their own root errors during program startup, for example
x/vault registers ErrStillLocked and friends.
*/
package errors
