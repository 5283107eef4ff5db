package app

import (
	"encoding/json"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/coin"
	"github.com/iov-one/timevault/commands/server"
	"github.com/iov-one/timevault/crypto"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/x/vault"
	abci "github.com/tendermint/tendermint/abci/types"
)

const (
	appName = "vaultd"

	defaultTicker = "IOV"
	defaultAmount = 123456789
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// Flags -ticker and -amount set the funds. The first positional argument
// is the address to fund, a new key is generated and printed if missing.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var (
		ticker string
		amount int64
	)
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.StringVar(&ticker, "ticker", defaultTicker, "currency of the funded account")
	fs.Int64Var(&amount, "amount", defaultAmount, "amount held by the funded account")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	funds := coin.NewCoin(amount, ticker)
	if err := funds.Validate(); err != nil {
		return nil, errors.Wrap(err, "funds")
	}
	if !funds.IsPositive() {
		return nil, errors.Wrapf(errors.ErrAmount, "non-positive funds: %s", funds)
	}

	var addr timevault.Address
	if fs.NArg() > 0 {
		a, err := timevault.ParseAddress(fs.Arg(0))
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		// if no address provided, auto-generate one
		// and print out the private key
		key := crypto.GenPrivKeyEd25519()
		addr = key.PublicKey().Address()
		fmt.Printf("generated key %X for address %s\n", key.Ed25519, addr)
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"cash": []dict{
			{
				"address": addr,
				"coins":   []coin.Coin{funds},
			},
		},
		"vault": []vault.Config{},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "data", "abci.db")
	}

	application, err := Application(appName, Stack(), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	if options.Logger != nil {
		application.WithLogger(options.Logger)
	}
	return application, nil
}
