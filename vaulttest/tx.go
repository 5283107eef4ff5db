package vaulttest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
)

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg timevault.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ timevault.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (timevault.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message routed by path. Only the Serialized payload is
// part of the wire format.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte `protobuf:"bytes,1,opt,name=serialized,proto3" json:"serialized,omitempty"`
	// Err if set is returned by the Validate method.
	Err error
}

var _ timevault.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return proto.CompactTextString(m) }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
