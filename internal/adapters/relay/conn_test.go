package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/dkeye/roomkit/internal/core"
)

// scriptServer answers every request with answer(f) and pushes any extra
// frames it returns.
func scriptServer(t *testing.T, answer func(f wire.Frame) []wire.Frame) string {
	t.Helper()
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var f wire.Frame
			if json.Unmarshal(data, &f) != nil {
				return
			}
			for _, out := range answer(f) {
				if ws.WriteJSON(out) != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialTest(t *testing.T, url string) *Conn {
	t.Helper()
	c, err := Dial(context.Background(), url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRequestAck(t *testing.T) {
	url := scriptServer(t, func(f wire.Frame) []wire.Frame {
		ack, _ := wire.New(wire.TypeAck, f.ReqID, wire.Exists{Exists: true})
		return []wire.Frame{ack}
	})
	c := dialTest(t, url)

	var out wire.Exists
	require.NoError(t, c.Request(context.Background(), wire.TypeGroupExists, wire.Group{GroupID: "1"}, &out))
	assert.True(t, out.Exists)
}

func TestRequestErrorKeepsData(t *testing.T) {
	url := scriptServer(t, func(f wire.Frame) []wire.Frame {
		ack, _ := wire.New(wire.TypeAck, f.ReqID, wire.Group{GroupID: "1001", OwnerID: "teacher"})
		ack.Code = wire.CodeGroupExists
		return []wire.Frame{ack}
	})
	m := NewMessaging(dialTest(t, url))

	info, err := m.CreateGroup(context.Background(), "1001", "")
	require.ErrorIs(t, err, core.ErrGroupExists)
	assert.Equal(t, "teacher", info.OwnerID)
}

func TestPushHandlers(t *testing.T) {
	url := scriptServer(t, func(f wire.Frame) []wire.Frame {
		ack, _ := wire.New(wire.TypeAck, f.ReqID, nil)
		push, _ := wire.New(wire.TypeControl, "", wire.Control{From: "teacher", Payload: []byte(`{"cmd":"roll_start"}`)})
		return []wire.Frame{ack, push}
	})
	c := dialTest(t, url)
	m := NewMessaging(c)
	got := make(chan core.MessagingEvent, 1)
	m.OnEvent(func(ev core.MessagingEvent) { got <- ev })

	require.NoError(t, m.Login(context.Background(), core.LoginParams{UserID: "bob"}))
	select {
	case ev := <-got:
		assert.Equal(t, "teacher", ev.(core.ControlMessageReceived).From)
	case <-time.After(2 * time.Second):
		t.Fatal("no control push")
	}

	m.OnEvent(nil)
	require.NoError(t, m.Login(context.Background(), core.LoginParams{UserID: "bob"}))
	select {
	case ev := <-got:
		t.Fatalf("unbound handler got %#v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRequestAfterClose(t *testing.T) {
	url := scriptServer(t, func(wire.Frame) []wire.Frame { return nil })
	c := dialTest(t, url)
	require.NoError(t, c.Close())
	<-c.Done()

	err := c.Request(context.Background(), wire.TypePing, nil, nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRequestContext(t *testing.T) {
	url := scriptServer(t, func(wire.Frame) []wire.Frame { return nil })
	c := dialTest(t, url)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Request(ctx, wire.TypeLogin, nil, nil), context.DeadlineExceeded)
}

func TestErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, &Error{Code: wire.CodeGroupNotFound}, core.ErrGroupNotFound)
	assert.ErrorIs(t, &Error{Code: wire.CodeMemberNotFound}, core.ErrMemberNotFound)
	assert.NotErrorIs(t, &Error{Code: wire.CodeForbidden}, core.ErrGroupExists)
	assert.Equal(t, "relay: forbidden: owner only", (&Error{Code: wire.CodeForbidden, Message: "owner only"}).Error())
}

func TestMediaLocalState(t *testing.T) {
	url := scriptServer(t, func(f wire.Frame) []wire.Frame {
		if f.ReqID == "" {
			return nil
		}
		ack, _ := wire.New(wire.TypeAck, f.ReqID, nil)
		return []wire.Frame{ack}
	})
	m := NewMedia(dialTest(t, url))

	assert.ErrorIs(t, m.StartRemoteView("bob", nil, "camera"), ErrNotInRoom)
	require.NoError(t, m.EnterRoom(context.Background(), core.MediaRoomParams{RoomID: 1}))
	require.NoError(t, m.StartRemoteView("bob", nil, "camera"))

	ds, err := m.Devices(context.Background(), core.DeviceMicrophone)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	cur, err := m.CurrentDevice(core.DeviceMicrophone)
	require.NoError(t, err)
	assert.Equal(t, ds[0], *cur)

	changed := make(chan core.MediaEvent, 1)
	m.OnEvent(func(ev core.MediaEvent) { changed <- ev })
	assert.ErrorIs(t, m.SetCurrentDevice(context.Background(), core.DeviceCamera, "nope"), ErrUnknownDevice)
	require.NoError(t, m.SetCurrentDevice(context.Background(), core.DeviceCamera, "relay-camera"))
	assert.Equal(t, core.DeviceChanged{DeviceID: "relay-camera", Type: core.DeviceCamera, State: core.DeviceActive}, <-changed)
	assert.Equal(t, SDKVersion, m.SDKVersion())
}
