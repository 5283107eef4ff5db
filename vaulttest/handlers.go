package vaulttest

import "github.com/iov-one/timevault"

// Handler is a mock implementation of the timevault.Handler interface.
// Every call is counted. If WriteKey is set, the handler writes
// WriteKey/WriteValue to the store before returning, also on failure.
type Handler struct {
	checkCall   int
	CheckResult timevault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult timevault.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ timevault.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db timevault.KVStore) error {
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics with the given value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ timevault.Handler = PanicHandler{}

func (p PanicHandler) Check(timevault.Context, timevault.KVStore, timevault.Tx) (*timevault.CheckResult, error) {
	panic(p.Value)
}

func (p PanicHandler) Deliver(timevault.Context, timevault.KVStore, timevault.Tx) (*timevault.DeliverResult, error) {
	panic(p.Value)
}
