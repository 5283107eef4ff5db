package utils

import (
	"github.com/iov-one/timevault"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which ActionTagger stores the message path.
const ActionKey = "action"

// ActionTagger tags every successfully delivered transaction with
// `action = msg.Path()`, so clients can search the history for, say, all
// vault withdrawals. Failed transactions are not tagged.
type ActionTagger struct{}

var _ timevault.Decorator = ActionTagger{}

// NewActionTagger creates an ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check does not tag, as check results are never indexed.
func (ActionTagger) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx, next timevault.Checker) (*timevault.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends the action tag to a successful result. A transaction
// without a readable message fails before reaching the handler.
func (ActionTagger) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx, next timevault.Deliverer) (*timevault.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
