/*
Package app wires the vault chain together: the transaction format, the
decorator chain, the message and query routers and the genesis
initializers.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/app"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store/iavl"
	"github.com/iov-one/timevault/x"
	"github.com/iov-one/timevault/x/cash"
	"github.com/iov-one/timevault/x/sigs"
	"github.com/iov-one/timevault/x/utils"
	"github.com/iov-one/timevault/x/vault"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController()
}

// Chain returns a chain of decorators, to handle authentication,
// logging, recovery and action tags
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		// successful deliveries are searchable by message path
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching cash and vault messages
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, CashControl())
	vault.RegisterRoutes(r, authFn, CashControl())
	return r
}

// QueryRouter returns a query router,
// allowing access to "/wallets", "/auth", and "/vaults/..."
func QueryRouter() timevault.QueryRouter {
	r := timevault.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		vault.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers in the order they run.
// Wallets are funded before any vault is created.
func Initializers() timevault.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		vault.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() timevault.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h timevault.Handler,
	tx timevault.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (timevault.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
