/*
Package vault implements a time-locked custodial vault.

A vault is configured once with an owner, a beneficiary, an unlock time
and the ticker of the token it holds. The owner deposits funds into the
vault custody address. Once the block time reaches the unlock time the
beneficiary can withdraw the whole balance. The owner can drain the vault
at any moment using the emergency withdrawal, which ignores the lock.

Every operation is all or nothing. Failed preconditions and rejected
transfers leave no trace in the store.
*/
package vault
