// Package signal is the relay server: it speaks the wire protocol to relay
// clients and implements groups, messaging fan-out and media presence.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/roomkit/internal/adapters/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrBackpressure = errors.New("backpressure")

// Verifier checks the credential a client presents at login.
type Verifier interface {
	Verify(appID uint32, userID, credential string) error
}

type Options struct {
	Store      store.Store
	Verifier   Verifier
	Policy     Policy
	ReadLimit  int64
	PingPeriod time.Duration
	// ChatLimit messages per ChatInterval per user; zero disables limiting.
	ChatLimit    int
	ChatInterval time.Duration
}

type RelayWSController struct {
	store      store.Store
	verifier   Verifier
	policy     Policy
	chat       *RoomRateLimiter
	readLimit  int64
	pingPeriod time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
	rooms    map[uint32]map[string]*session
}

func NewRelayWSController(o Options) *RelayWSController {
	ctl := &RelayWSController{
		store:      o.Store,
		verifier:   o.Verifier,
		policy:     o.Policy,
		readLimit:  o.ReadLimit,
		pingPeriod: o.PingPeriod,
		sessions:   make(map[string]*session),
		rooms:      make(map[uint32]map[string]*session),
	}
	if ctl.policy == nil {
		ctl.policy = SimplePolicy{}
	}
	if o.ChatLimit > 0 {
		ctl.chat = NewRoomRateLimiter(o.ChatLimit, o.ChatInterval)
	}
	return ctl
}

type WsRelayConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *WsRelayConn) TrySend(b []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- b:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsRelayConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *RelayWSController) HandleRelay(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.readLimit > 0 {
		ws.SetReadLimit(ctl.readLimit)
	}

	conn := &WsRelayConn{
		conn: ws,
		send: make(chan []byte, 64),
	}
	s := &session{conn: conn, remote: c.Request.RemoteAddr}
	log.Info().Str("module", "signal").Str("remote", s.remote).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, s)
	}()
}

// Close drops every connected session.
func (ctl *RelayWSController) Close() {
	ctl.mu.RLock()
	all := make([]*session, 0, len(ctl.sessions))
	for _, s := range ctl.sessions {
		all = append(all, s)
	}
	ctl.mu.RUnlock()
	for _, s := range all {
		s.conn.Close()
	}
}
