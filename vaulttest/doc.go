/*
Package vaulttest provides mocks and helpers used by the tests of the
timevault packages: authenticators, handlers, decorators, transactions and
contexts carrying a block time.
*/
package vaulttest
