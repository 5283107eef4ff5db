package utils

import (
	"time"

	"github.com/iov-one/timevault"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ timevault.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx timevault.Context, store timevault.KVStore, tx timevault.Tx, next timevault.Checker) (*timevault.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, txPath(tx), resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx timevault.Context, store timevault.KVStore, tx timevault.Tx, next timevault.Deliverer) (*timevault.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, txPath(tx), resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx timevault.Context, start time.Time, path, msg string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := timevault.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if path != "" {
		logger = logger.With("path", path)
	}

	// Message can be empty, but the entry still carries the duration.
	if err != nil {
		logger.Error(msg, "err", err)
	} else if lowPrio {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}

func txPath(tx timevault.Tx) string {
	if tx == nil {
		return ""
	}
	return timevault.GetPath(tx)
}
