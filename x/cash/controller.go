package cash

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/coin"
	"github.com/iov-one/timevault/errors"
)

// CoinMover is an interface for moving coins between accounts.
// It is the asset transfer service consumed by other extensions.
type CoinMover interface {
	// MoveCoins is an atomic operation: either all coins are moved or
	// nothing is written.
	MoveCoins(db timevault.KVStore, src, dest timevault.Address, amount coin.Coin) error
	// Balance returns the amount of a single ticker held by addr.
	Balance(db timevault.ReadOnlyKVStore, addr timevault.Address, ticker string) (coin.Coin, error)
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	CoinMint(db timevault.KVStore, dest timevault.Address, amount coin.Coin) error
}

// Controller is the functionality needed by cash.Handler and cash.Initializer.
type Controller interface {
	CoinMover
	CoinMinter
}

// BaseController is a simple implementation of the controller.
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a controller over the wallets.
func NewController() BaseController {
	return BaseController{bucket: NewWalletBucket()}
}

// Balance returns the amount of a single ticker held by addr. An address
// without a wallet holds nothing.
func (c BaseController) Balance(db timevault.ReadOnlyKVStore, addr timevault.Address, ticker string) (coin.Coin, error) {
	w, err := c.bucket.GetWallet(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	if w == nil {
		return coin.NewCoin(0, ticker), nil
	}
	return w.Coins.Balance(ticker), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db timevault.KVStore, src, dest timevault.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	sender, err := c.bucket.GetWallet(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "wallet %s", src)
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %s", src, sender.Coins.Balance(amount.Ticker))
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetWallet(db, dest)
	if err != nil {
		return err
	}
	if recipient == nil {
		recipient = &Wallet{}
	}

	// compute both sides before writing anything
	senderCoins, err := sender.Coins.Subtract(amount)
	if err != nil {
		return err
	}
	recipientCoins, err := recipient.Coins.Add(amount)
	if err != nil {
		return err
	}

	if err := c.bucket.SaveWallet(db, src, &Wallet{Coins: senderCoins}); err != nil {
		return err
	}
	return c.bucket.SaveWallet(db, dest, &Wallet{Coins: recipientCoins})
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db timevault.KVStore, dest timevault.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive mint: %s", amount)
	}
	w, err := c.bucket.GetWallet(db, dest)
	if err != nil {
		return err
	}
	if w == nil {
		w = &Wallet{}
	}
	coins, err := w.Coins.Add(amount)
	if err != nil {
		return err
	}
	return c.bucket.SaveWallet(db, dest, &Wallet{Coins: coins})
}
