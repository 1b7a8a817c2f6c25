// Package relay implements the messaging and media transports over a
// websocket connection to the dev relay server.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrClosed = errors.New("relay: connection closed")

const (
	writeWait    = 5 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 32
)

// Error is a failed ack. It unwraps to the matching core sentinel so callers
// can use errors.Is.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "relay: " + e.Code
	}
	return fmt.Sprintf("relay: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case wire.CodeGroupExists:
		return core.ErrGroupExists
	case wire.CodeGroupNotFound:
		return core.ErrGroupNotFound
	case wire.CodeMemberNotFound:
		return core.ErrMemberNotFound
	}
	return nil
}

type PushHandler func(wire.Frame)

type Conn struct {
	ws   *websocket.Conn
	send chan []byte

	mu       sync.Mutex
	pending  map[string]chan wire.Frame
	handlers map[string][]PushHandler

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Dial connects to the relay at url, e.g. ws://localhost:8080/api/ws/relay.
func Dial(ctx context.Context, url string, header http.Header) (*Conn, error) {
	d := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := d.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("relay: dial %s: %w", url, err)
	}
	return newConn(ws), nil
}

func newConn(ws *websocket.Conn) *Conn {
	runCtx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		ws:       ws,
		send:     make(chan []byte, sendBuffer),
		pending:  make(map[string]chan wire.Frame),
		handlers: make(map[string][]PushHandler),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	c.Handle(wire.TypePong, func(wire.Frame) {})

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return c.readPump() })
	g.Go(func() error { return c.writePump(gctx) })
	go func() {
		err := g.Wait()
		_ = c.ws.Close()
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
		log.Info().Str("module", "relay").Err(err).Msg("connection closed")
	}()
	return c
}

// Handle registers h for pushes of type typ. Handlers run on the read
// goroutine and must not block on requests.
func (c *Conn) Handle(typ string, h PushHandler) {
	c.mu.Lock()
	c.handlers[typ] = append(c.handlers[typ], h)
	c.mu.Unlock()
}

func (c *Conn) Done() <-chan struct{} { return c.done }

// Err reports why the connection ended, nil while it is open.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Conn) Close() error {
	c.cancel()
	_ = c.ws.Close()
	<-c.done
	return nil
}

// Request sends typ with in and waits for the ack. The ack data is bound to
// out even when the ack failed.
func (c *Conn) Request(ctx context.Context, typ string, in, out any) error {
	reqID := uuid.NewString()
	f, err := wire.New(typ, reqID, in)
	if err != nil {
		return err
	}

	ch := make(chan wire.Frame, 1)
	c.mu.Lock()
	c.pending[reqID] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, reqID)
		c.mu.Unlock()
	}()

	if err := c.write(ctx, f); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	case ack := <-ch:
		if out != nil {
			if err := ack.Bind(out); err != nil && !ack.Failed() {
				return fmt.Errorf("relay: decode %s ack: %w", typ, err)
			}
		}
		if ack.Failed() {
			return &Error{Code: ack.Code, Message: ack.Error}
		}
		return nil
	}
}

// Notify sends typ without waiting for an answer.
func (c *Conn) Notify(ctx context.Context, typ string, in any) error {
	f, err := wire.New(typ, "", in)
	if err != nil {
		return err
	}
	return c.write(ctx, f)
}

func (c *Conn) write(ctx context.Context, f wire.Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	select {
	case c.send <- b:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}

func (c *Conn) writePump(ctx context.Context) error {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	pingFrame, _ := json.Marshal(wire.Frame{Type: wire.TypePing})

	for {
		var data []byte
		select {
		case <-ctx.Done():
			return nil
		case data = <-c.send:
		case <-ping.C:
			data = pingFrame
		}
		if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("module", "relay").Msg("writePump write error")
			return err
		}
	}
}

func (c *Conn) readPump() error {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		var f wire.Frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Error().Err(err).Str("module", "relay").Msg("bad json")
			continue
		}
		c.dispatch(f)
	}
}

func (c *Conn) dispatch(f wire.Frame) {
	if f.Type == wire.TypeAck {
		c.mu.Lock()
		ch, ok := c.pending[f.ReqID]
		c.mu.Unlock()
		if !ok {
			log.Debug().Str("module", "relay").Str("reqId", f.ReqID).Msg("ack without request")
			return
		}
		select {
		case ch <- f:
		default:
		}
		return
	}

	c.mu.Lock()
	hs := append([]PushHandler(nil), c.handlers[f.Type]...)
	c.mu.Unlock()
	if len(hs) == 0 {
		log.Warn().Str("module", "relay").Str("type", f.Type).Msg("unknown push")
		return
	}
	for _, h := range hs {
		h(f)
	}
}
