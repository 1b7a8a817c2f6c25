package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
)

func TestSimplePolicy(t *testing.T) {
	p := SimplePolicy{}
	assert.Equal(t, Disconnect, p.OnBackpressure("bob", wire.TypeControl))
	assert.Equal(t, Disconnect, p.OnBackpressure("bob", wire.TypeAck))
	assert.Equal(t, DropFrame, p.OnBackpressure("bob", wire.TypeChat))
	assert.Equal(t, DropFrame, p.OnBackpressure("bob", wire.TypeMediaAvailable))
}
