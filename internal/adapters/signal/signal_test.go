package signal

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomkit/internal/adapters/credential"
	"github.com/dkeye/roomkit/internal/adapters/relay"
	"github.com/dkeye/roomkit/internal/adapters/store"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
)

const testAppID = 1400

type harness struct {
	url    string
	signer *credential.Signer
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	signer, err := credential.NewSigner("test-secret", time.Hour)
	require.NoError(t, err)
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	opts.Verifier = signer
	ctl := NewRelayWSController(opts)

	ctx, cancel := context.WithCancel(context.Background())
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ctl.HandleRelay(ctx, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		ctl.Close()
		cancel()
		srv.Close()
	})
	return &harness{url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws", signer: signer}
}

type client struct {
	conn  *relay.Conn
	im    *relay.Messaging
	media *relay.Media
	imEv  chan core.MessagingEvent
	avEv  chan core.MediaEvent
}

func (h *harness) dial(t *testing.T) *client {
	t.Helper()
	conn, err := relay.Dial(context.Background(), h.url, nil)
	require.NoError(t, err)
	c := &client{
		conn:  conn,
		im:    relay.NewMessaging(conn),
		media: relay.NewMedia(conn),
		imEv:  make(chan core.MessagingEvent, 64),
		avEv:  make(chan core.MediaEvent, 64),
	}
	c.im.OnEvent(func(ev core.MessagingEvent) { c.imEv <- ev })
	c.media.OnEvent(func(ev core.MediaEvent) { c.avEv <- ev })
	t.Cleanup(func() { _ = conn.Close() })
	return c
}

func (h *harness) login(t *testing.T, user string) *client {
	t.Helper()
	c := h.dial(t)
	cred, err := h.signer.Issue(testAppID, user)
	require.NoError(t, err)
	require.NoError(t, c.im.Login(ctx(t), core.LoginParams{AppID: testAppID, UserID: user, Credential: cred}))
	return c
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		var zero T
		t.Fatalf("no event of %T within 2s", zero)
		return zero
	}
}

func quiet[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected event %#v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoginRequired(t *testing.T) {
	h := newHarness(t, Options{})
	c := h.dial(t)

	_, err := c.im.JoinGroup(ctx(t), "1001")
	var rerr *relay.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "unauthorized", rerr.Code)

	err = c.im.Login(ctx(t), core.LoginParams{AppID: testAppID, UserID: "alice", Credential: "forged"})
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "unauthorized", rerr.Code)
}

func TestGroupCreateAndJoin(t *testing.T) {
	h := newHarness(t, Options{})
	alice := h.login(t, "alice")
	bob := h.login(t, "bob")

	info, err := alice.im.CreateGroup(ctx(t), "1001", `{"speechMode":"ApplySpeech"}`)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.OwnerID)

	info, err = bob.im.CreateGroup(ctx(t), "1001", "")
	require.ErrorIs(t, err, core.ErrGroupExists)
	assert.Equal(t, "alice", info.OwnerID)

	info, err = bob.im.JoinGroup(ctx(t), "1001")
	require.NoError(t, err)
	assert.Equal(t, `{"speechMode":"ApplySpeech"}`, info.Announcement)

	ok, err := bob.im.GroupExists(ctx(t), "1001")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = bob.im.GroupExists(ctx(t), "2002")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = bob.im.JoinGroup(ctx(t), "2002")
	assert.ErrorIs(t, err, core.ErrGroupNotFound)
}

func TestChatAndControlFanOut(t *testing.T) {
	h := newHarness(t, Options{})
	alice := h.login(t, "alice")
	bob := h.login(t, "bob")
	carol := h.login(t, "carol")
	_, err := alice.im.CreateGroup(ctx(t), "1001", "")
	require.NoError(t, err)
	for _, c := range []*client{bob, carol} {
		_, err := c.im.JoinGroup(ctx(t), "1001")
		require.NoError(t, err)
	}
	require.NoError(t, alice.im.UpdateProfile(ctx(t), domain.Profile{UserID: "alice", Nick: "Ms. A"}))

	require.NoError(t, alice.im.SendChatMessage(ctx(t), "hello class"))
	for _, c := range []*client{bob, carol} {
		ev := next(t, c.imEv).(core.ChatMessageReceived)
		require.Len(t, ev.Messages, 1)
		m := ev.Messages[0]
		assert.Equal(t, "alice", m.From)
		assert.Equal(t, "Ms. A", m.Nick)
		assert.Equal(t, "hello class", m.Text)
		assert.NotEmpty(t, m.ID)
	}
	quiet(t, alice.imEv)

	require.NoError(t, alice.im.SendControlMessage(ctx(t), "bob", []byte(`{"cmd":"kick_off"}`)))
	ev := next(t, bob.imEv).(core.ControlMessageReceived)
	assert.Equal(t, "alice", ev.From)
	assert.JSONEq(t, `{"cmd":"kick_off"}`, string(ev.Payload))
	quiet(t, carol.imEv)

	require.NoError(t, bob.im.SendCustomMessage(ctx(t), "quiz", "42"))
	assert.Equal(t, core.CustomMessageReceived{From: "bob", Type: "quiz", Data: "42"}, next(t, alice.imEv))
	assert.Equal(t, core.CustomMessageReceived{From: "bob", Type: "quiz", Data: "42"}, next(t, carol.imEv))

	err = alice.im.SendControlMessage(ctx(t), "mallory", []byte(`{}`))
	assert.ErrorIs(t, err, core.ErrMemberNotFound)

	ps, err := bob.im.GroupMemberProfiles(ctx(t), []string{"alice", "nobody"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Profile{{UserID: "alice", Nick: "Ms. A"}, {UserID: "nobody"}}, ps)
}

func TestChatRateLimit(t *testing.T) {
	h := newHarness(t, Options{ChatLimit: 2, ChatInterval: time.Minute})
	alice := h.login(t, "alice")
	_, err := alice.im.CreateGroup(ctx(t), "1001", "")
	require.NoError(t, err)

	require.NoError(t, alice.im.SendChatMessage(ctx(t), "1"))
	require.NoError(t, alice.im.SendChatMessage(ctx(t), "2"))
	var rerr *relay.Error
	require.ErrorAs(t, alice.im.SendChatMessage(ctx(t), "3"), &rerr)
	assert.Equal(t, "forbidden", rerr.Code)
}

func TestOwnerOperations(t *testing.T) {
	h := newHarness(t, Options{})
	alice := h.login(t, "alice")
	bob := h.login(t, "bob")
	_, err := alice.im.CreateGroup(ctx(t), "1001", "")
	require.NoError(t, err)
	_, err = bob.im.JoinGroup(ctx(t), "1001")
	require.NoError(t, err)

	var rerr *relay.Error
	require.ErrorAs(t, bob.im.DismissGroup(ctx(t)), &rerr)
	assert.Equal(t, "forbidden", rerr.Code)
	assert.ErrorIs(t, alice.im.ChangeGroupOwner(ctx(t), "mallory"), core.ErrMemberNotFound)

	require.NoError(t, alice.im.ChangeGroupOwner(ctx(t), "bob"))
	assert.Equal(t, core.GroupOwnerChanged{GroupID: "1001", OwnerID: "bob"}, next(t, bob.imEv))

	require.NoError(t, bob.im.SetGroupAnnouncement(ctx(t), `{"isChatRoomMuted":true}`))
	info, err := h.login(t, "carol").im.JoinGroup(ctx(t), "1001")
	require.NoError(t, err)
	assert.Equal(t, "bob", info.OwnerID)
	assert.Equal(t, `{"isChatRoomMuted":true}`, info.Announcement)

	require.NoError(t, bob.im.DismissGroup(ctx(t)))
	assert.Equal(t, core.GroupDismissed{GroupID: "1001"}, next(t, alice.imEv))
}

func TestKickKeepsNoticePath(t *testing.T) {
	h := newHarness(t, Options{})
	alice := h.login(t, "alice")
	bob := h.login(t, "bob")
	_, err := alice.im.CreateGroup(ctx(t), "1001", "")
	require.NoError(t, err)
	_, err = bob.im.JoinGroup(ctx(t), "1001")
	require.NoError(t, err)

	require.NoError(t, alice.im.KickGroupMember(ctx(t), "bob"))
	require.NoError(t, alice.im.SendControlMessage(ctx(t), "bob", []byte(`{"cmd":"kick_off"}`)))
	next(t, bob.imEv)

	assert.ErrorIs(t, alice.im.KickGroupMember(ctx(t), "bob"), core.ErrMemberNotFound)
	assert.ErrorIs(t, bob.im.QuitGroup(ctx(t)), core.ErrMemberNotFound)
}

func TestMediaPresence(t *testing.T) {
	h := newHarness(t, Options{})
	alice := h.login(t, "alice")
	bob := h.login(t, "bob")

	require.NoError(t, alice.media.EnterRoom(ctx(t), core.MediaRoomParams{RoomID: 1001}))
	require.NoError(t, alice.media.StartLocalVideo(ctx(t), nil))

	require.NoError(t, bob.media.EnterRoom(ctx(t), core.MediaRoomParams{RoomID: 1001}))
	assert.Equal(t, core.RemoteUserEntered{UserID: "alice"}, next(t, bob.avEv))
	assert.Equal(t, core.VideoAvailable{UserID: "alice", Stream: domain.StreamCamera, Available: true}, next(t, bob.avEv))
	assert.Equal(t, core.RemoteUserEntered{UserID: "bob"}, next(t, alice.avEv))

	require.NoError(t, bob.media.StartLocalAudio(ctx(t), core.AudioQualitySpeech))
	assert.Equal(t, core.AudioAvailable{UserID: "bob", Available: true}, next(t, alice.avEv))
	require.NoError(t, bob.media.MuteLocalAudio(true))
	assert.Equal(t, core.AudioAvailable{UserID: "bob", Available: false}, next(t, alice.avEv))

	require.NoError(t, alice.media.StartScreenCapture(ctx(t), nil))
	assert.Equal(t, core.VideoAvailable{UserID: "alice", Stream: domain.StreamScreen, Available: true}, next(t, bob.avEv))
	require.NoError(t, alice.media.PauseScreenCapture())
	assert.Equal(t, core.VideoAvailable{UserID: "alice", Stream: domain.StreamScreen, Available: false}, next(t, bob.avEv))

	require.NoError(t, bob.conn.Close())
	assert.Equal(t, core.RemoteUserLeft{UserID: "bob", Reason: leaveDisconnected}, next(t, alice.avEv))

	require.NoError(t, alice.media.ExitRoom(ctx(t)))
	quiet(t, alice.avEv)
}
