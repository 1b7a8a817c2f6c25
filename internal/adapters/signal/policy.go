package signal

import "github.com/dkeye/roomkit/internal/adapters/relay/wire"

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	Disconnect
)

// Policy decides what happens when a client's send buffer is full.
type Policy interface {
	OnBackpressure(userID, frameType string) BackpressureAction
}

// SimplePolicy drops presence and chat pushes. A client that cannot take an
// ack or a directive is disconnected.
type SimplePolicy struct{}

func (SimplePolicy) OnBackpressure(_ string, frameType string) BackpressureAction {
	switch frameType {
	case wire.TypeAck, wire.TypeControl, wire.TypeGroupDismissed, wire.TypeOwnerChanged:
		return Disconnect
	}
	return DropFrame
}
