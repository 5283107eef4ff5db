package app

import (
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// deliverResponse converts the outcome of a delivered transaction into its
// ABCI form. A failure keeps its registered code. The log of an internal
// error is hidden unless debug is set.
func deliverResponse(res *timevault.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{
			Code: code,
			Log:  failureLog("cannot deliver tx", code, log),
		}
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		GasUsed: res.GasUsed,
		Tags:    res.Tags,
	}
}

// checkResponse is deliverResponse for the mempool check. The gas
// allocated by the handlers becomes the gas wanted.
func checkResponse(res *timevault.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{
			Code: code,
			Log:  failureLog("cannot check tx", code, log),
		}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

func failureLog(prefix string, code uint32, log string) string {
	if code == errors.SuccessABCICode {
		return log
	}
	return prefix + ": " + log
}
