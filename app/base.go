package app

import (
	"time"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs decoded transactions through a handler stack, on top of the
// storage, genesis and query support of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder timevault.TxDecoder
	handler timevault.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application. With debug set, failed
// transactions report the full error instead of a generic log.
func NewBaseApp(store *StoreApp, decoder timevault.TxDecoder, handler timevault.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// BeginBlock sets up the block context. The header time is the clock every
// handler of this block sees, so it is logged along with the height.
func (b BaseApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	res := b.StoreApp.BeginBlock(req)
	b.Logger().Info("Begin block",
		"height", req.Header.Height,
		"time", req.Header.Time.UTC().Format(time.RFC3339))
	return res
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", txBytes)
	if err != nil {
		return deliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return deliverResponse(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", txBytes)
	if err != nil {
		return checkResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return checkResponse(res, err, b.debug)
}

// prepare decodes the transaction and returns the block context tagged with
// the call and message path. A panicking decoder is reported as ErrPanic.
func (b BaseApp) prepare(call string, txBytes []byte) (ctx timevault.Context, tx timevault.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(txBytes); err != nil {
		return nil, nil, err
	}
	ctx = timevault.WithLogInfo(b.BlockContext(),
		"call", call,
		"path", timevault.GetPath(tx))
	return ctx, tx, nil
}
