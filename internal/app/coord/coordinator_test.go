package coord

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/roomkit/internal/app/auth"
	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/core/mocks"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomID  domain.RoomID = 1001
	teacher               = "teacher"
	student               = "bob"
	short                 = 20 * time.Millisecond
)

type recorder struct {
	mu  sync.Mutex
	evs []events.Event
}

func (r *recorder) Emit(ev events.Event) {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
}

func (r *recorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.evs...)
}

func (r *recorder) count(k events.Kind) int {
	n := 0
	for _, ev := range r.all() {
		if ev.Kind() == k {
			n++
		}
	}
	return n
}

func (r *recorder) last(k events.Kind) events.Event {
	evs := r.all()
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Kind() == k {
			return evs[i]
		}
	}
	return nil
}

type fakeMedia struct {
	mu  sync.Mutex
	mic []bool
	cam []bool
}

func (m *fakeMedia) SetMicrophoneMuted(mute bool) error {
	m.mu.Lock()
	m.mic = append(m.mic, mute)
	m.mu.Unlock()
	return nil
}

func (m *fakeMedia) SetCameraMuted(mute bool) error {
	m.mu.Lock()
	m.cam = append(m.cam, mute)
	m.mu.Unlock()
	return nil
}

func (m *fakeMedia) micCalls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.mic...)
}

type sentMsg struct {
	to  string
	env Envelope
}

type fixture struct {
	im     *mocks.MockMessagingTransport
	state  core.RoomState
	rec    *recorder
	media  *fakeMedia
	c      *Coordinator
	kicked []string

	mu      sync.Mutex
	sent    []sentMsg
	sendErr error
}

// newFixture attaches a coordinator to room 1001 owned by teacher. The local
// user is teacher when host is true, bob otherwise.
func newFixture(t *testing.T, host bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		im:    mocks.NewMockMessagingTransport(ctrl),
		state: core.NewRoomState(),
		rec:   &recorder{},
		media: &fakeMedia{},
	}
	gw := auth.NewGateway(f.im, f.state)
	f.im.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil)
	self, role := student, domain.RoleAnchor
	if host {
		self, role = teacher, domain.RoleMaster
	}
	require.NoError(t, gw.Login(context.Background(), 1, self, "sig"))

	f.im.EXPECT().SendControlMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, to string, payload []byte) error {
			env, err := decodeEnvelope(payload)
			require.NoError(t, err)
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.sendErr != nil {
				return f.sendErr
			}
			f.sent = append(f.sent, sentMsg{to: to, env: env})
			return nil
		}).AnyTimes()
	f.im.EXPECT().SetGroupAnnouncement(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.state.SetRoom(func(r *domain.RoomInfo) {
		r.RoomID = roomID
		r.OwnerID = teacher
	})
	f.state.SetLocal(func(u *domain.RoomUser) { u.Role = role })
	if host {
		f.state.UpsertUser(student, func(u *domain.RoomUser) { u.Role = domain.RoleAnchor })
	} else {
		f.state.UpsertUser(teacher, func(u *domain.RoomUser) { u.Role = domain.RoleMaster })
	}

	f.c = New(Deps{
		Auth:               gw,
		State:              f.state,
		Messaging:          f.im,
		Events:             f.rec,
		Media:              f.media,
		OnKicked:           func(by string) { f.kicked = append(f.kicked, by) },
		InvitationTimeout:  short,
		ApplicationTimeout: short,
	})
	f.c.Attach(f.state.Room())
	return f
}

// setSendErr makes every following control send fail with err; nil restores delivery.
func (f *fixture) setSendErr(err error) {
	f.mu.Lock()
	f.sendErr = err
	f.mu.Unlock()
}

func (f *fixture) sentCmds(cmd Cmd) []sentMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMsg
	for _, s := range f.sent {
		if s.env.Cmd == cmd {
			out = append(out, s)
		}
	}
	return out
}

func (f *fixture) receive(t *testing.T, from string, cmd Cmd, id string, data any) {
	t.Helper()
	payload, err := encodeEnvelope(Envelope{Cmd: cmd, RoomID: roomID, ID: id, From: from}, data)
	require.NoError(t, err)
	f.c.HandleControl(from, payload)
}

func TestInvitationTimeoutFiresExactlyOnce(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.c.SendSpeechInvitation(context.Background(), student))

	invites := f.sentCmds(CmdInvite)
	require.Len(t, invites, 1)
	assert.Equal(t, student, invites[0].to)
	id := invites[0].env.ID
	assert.NotEmpty(t, id)

	require.Eventually(t, func() bool { return f.rec.count(events.SpeechInvitationTimeout) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * short)

	assert.Equal(t, 1, f.rec.count(events.SpeechInvitationTimeout))
	assert.Empty(t, f.c.PendingInvitations())
	ev := f.rec.last(events.SpeechInvitationTimeout).(events.SpeechInvitationTimeoutEvent)
	assert.Equal(t, id, ev.InvitationID)
	assert.Equal(t, student, ev.UserID)

	notices := f.sentCmds(CmdInviteTimeout)
	require.Len(t, notices, 1)
	assert.Equal(t, id, notices[0].env.ID)
}

func TestCancelSuppressesInvitationTimeout(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.c.SendSpeechInvitation(context.Background(), student))
	require.NoError(t, f.c.CancelSpeechInvitation(context.Background(), student))

	time.Sleep(3 * short)
	assert.Zero(t, f.rec.count(events.SpeechInvitationTimeout))
	assert.Empty(t, f.sentCmds(CmdInviteTimeout))
	require.Len(t, f.sentCmds(CmdInviteCancel), 1)

	// cancelling again has nothing to do
	require.NoError(t, f.c.CancelSpeechInvitation(context.Background(), student))
	assert.Len(t, f.sentCmds(CmdInviteCancel), 1)
}

func TestDetachSuppressesInvitationTimeout(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.c.SendSpeechInvitation(context.Background(), student))
	f.c.Detach()

	time.Sleep(3 * short)
	assert.Zero(t, f.rec.count(events.SpeechInvitationTimeout))
}

func TestInvitationReplyStopsTimer(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.c.SendSpeechInvitation(context.Background(), student))
	id := f.sentCmds(CmdInvite)[0].env.ID

	f.receive(t, student, CmdInviteReply, id, replyData{Agree: true})

	time.Sleep(3 * short)
	assert.Zero(t, f.rec.count(events.SpeechInvitationTimeout))
	ev := f.rec.last(events.SpeechInvitationReplied).(events.SpeechInvitationRepliedEvent)
	assert.True(t, ev.Agree)
	assert.Equal(t, student, ev.UserID)

	// a reply for an unknown invitation is ignored
	f.receive(t, student, CmdInviteReply, id, replyData{Agree: true})
	assert.Equal(t, 1, f.rec.count(events.SpeechInvitationReplied))
}

func TestDuplicateInvitationReplacesTimer(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.c.SendSpeechInvitation(context.Background(), student))
	require.NoError(t, f.c.SendSpeechInvitation(context.Background(), student))
	second := f.sentCmds(CmdInvite)[1].env.ID

	require.Eventually(t, func() bool { return f.rec.count(events.SpeechInvitationTimeout) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * short)
	assert.Equal(t, 1, f.rec.count(events.SpeechInvitationTimeout))
	assert.Equal(t, second, f.rec.last(events.SpeechInvitationTimeout).(events.SpeechInvitationTimeoutEvent).InvitationID)
}

func TestSpeechInvitationPreconditions(t *testing.T) {
	f := newFixture(t, true)
	f.state.SetRoom(func(r *domain.RoomInfo) { r.RoomConfig.SpeechMode = domain.FreeSpeech })
	assert.ErrorIs(t, f.c.SendSpeechInvitation(context.Background(), student), domain.ErrNotApplySpeechMode)

	s := newFixture(t, false)
	assert.ErrorIs(t, s.c.SendSpeechInvitation(context.Background(), teacher), domain.ErrNoPrivilege)
}

func TestInviteeAcceptsInvitation(t *testing.T) {
	f := newFixture(t, false)
	assert.ErrorIs(t, f.c.ReplySpeechInvitation(context.Background(), true), domain.ErrInvitationExpired)

	f.receive(t, teacher, CmdInvite, "inv-1", inviteData{TimeoutMs: 60000})
	require.True(t, f.c.HasReceivedInvitation())
	ev := f.rec.last(events.SpeechInvitationReceived).(events.SpeechInvitationReceivedEvent)
	assert.Equal(t, "inv-1", ev.InvitationID)
	assert.Equal(t, teacher, ev.Inviter)

	require.NoError(t, f.c.ReplySpeechInvitation(context.Background(), true))
	assert.Equal(t, []bool{false}, f.media.micCalls())
	replies := f.sentCmds(CmdInviteReply)
	require.Len(t, replies, 1)
	assert.Equal(t, teacher, replies[0].to)
	assert.Equal(t, "inv-1", replies[0].env.ID)

	assert.ErrorIs(t, f.c.ReplySpeechInvitation(context.Background(), true), domain.ErrInvitationExpired)
}

func TestInviteeSeesExpiryAndCancel(t *testing.T) {
	f := newFixture(t, false)

	f.receive(t, teacher, CmdInvite, "inv-1", inviteData{TimeoutMs: 1})
	time.Sleep(5 * time.Millisecond)
	assert.ErrorIs(t, f.c.ReplySpeechInvitation(context.Background(), true), domain.ErrInvitationExpired)

	f.receive(t, teacher, CmdInvite, "inv-2", nil)
	f.receive(t, teacher, CmdInviteTimeout, "inv-2", nil)
	assert.False(t, f.c.HasReceivedInvitation())
	assert.Equal(t, student, f.rec.last(events.SpeechInvitationTimeout).(events.SpeechInvitationTimeoutEvent).UserID)

	f.receive(t, teacher, CmdInvite, "inv-3", nil)
	f.receive(t, teacher, CmdInviteCancel, "inv-3", nil)
	assert.Equal(t, 1, f.rec.count(events.SpeechInvitationCancelled))
	assert.Empty(t, f.sentCmds(CmdInviteReply))
}

func TestInvitationFromNonHostIsDropped(t *testing.T) {
	f := newFixture(t, false)
	f.state.UpsertUser("carol", func(u *domain.RoomUser) { u.Role = domain.RoleAnchor })
	f.receive(t, "carol", CmdInvite, "inv-x", nil)
	assert.False(t, f.c.HasReceivedInvitation())
	assert.Empty(t, f.rec.all())
}

func TestSpeechApplicationTimeout(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.c.SendSpeechApplication(context.Background()))
	applies := f.sentCmds(CmdApply)
	require.Len(t, applies, 1)
	assert.Equal(t, teacher, applies[0].to)

	require.Eventually(t, func() bool { return f.rec.count(events.SpeechApplicationTimeout) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * short)
	assert.Equal(t, 1, f.rec.count(events.SpeechApplicationTimeout))
	assert.False(t, f.c.HasPendingApplication())
	notices := f.sentCmds(CmdApplyTimeout)
	require.Len(t, notices, 1)
	assert.Equal(t, teacher, notices[0].to)
}

func TestSpeechApplicationReplied(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.c.SendSpeechApplication(context.Background()))
	id := f.sentCmds(CmdApply)[0].env.ID

	f.receive(t, teacher, CmdApplyReply, id, replyData{Agree: true})

	time.Sleep(3 * short)
	assert.Zero(t, f.rec.count(events.SpeechApplicationTimeout))
	ev := f.rec.last(events.SpeechApplicationReplied).(events.SpeechApplicationRepliedEvent)
	assert.True(t, ev.Agree)
	assert.Equal(t, teacher, ev.By)
	assert.Equal(t, []bool{false}, f.media.micCalls())
}

func TestSpeechApplicationCancel(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.c.CancelSpeechApplication(context.Background()))
	assert.Empty(t, f.sentCmds(CmdApplyCancel))

	require.NoError(t, f.c.SendSpeechApplication(context.Background()))
	require.NoError(t, f.c.CancelSpeechApplication(context.Background()))
	time.Sleep(3 * short)
	assert.Zero(t, f.rec.count(events.SpeechApplicationTimeout))
	assert.Len(t, f.sentCmds(CmdApplyCancel), 1)
}

func TestSpeechApplicationPreconditions(t *testing.T) {
	f := newFixture(t, false)
	f.state.SetRoom(func(r *domain.RoomInfo) { r.RoomConfig.IsSpeechApplicationForbidden = true })
	assert.ErrorIs(t, f.c.SendSpeechApplication(context.Background()), domain.ErrApplicationForbidden)

	f.state.SetRoom(func(r *domain.RoomInfo) {
		r.RoomConfig.IsSpeechApplicationForbidden = false
		r.RoomConfig.SpeechMode = domain.FreeSpeech
	})
	assert.ErrorIs(t, f.c.SendSpeechApplication(context.Background()), domain.ErrNotApplySpeechMode)
}

func TestHostHandlesApplications(t *testing.T) {
	f := newFixture(t, true)
	assert.ErrorIs(t, f.c.ReplySpeechApplication(context.Background(), student, true), domain.ErrNoApplication)

	f.receive(t, student, CmdApply, "app-1", nil)
	assert.Equal(t, []string{student}, f.c.PendingApplications())
	assert.Equal(t, "app-1", f.rec.last(events.SpeechApplicationReceived).(events.SpeechApplicationReceivedEvent).ApplicationID)

	require.NoError(t, f.c.ReplySpeechApplication(context.Background(), student, false))
	replies := f.sentCmds(CmdApplyReply)
	require.Len(t, replies, 1)
	assert.Equal(t, "app-1", replies[0].env.ID)
	assert.Empty(t, f.c.PendingApplications())

	f.receive(t, student, CmdApply, "app-2", nil)
	f.receive(t, student, CmdApplyCancel, "app-2", nil)
	assert.Equal(t, 1, f.rec.count(events.SpeechApplicationCancelled))

	f.receive(t, student, CmdApply, "app-3", nil)
	f.receive(t, student, CmdApplyTimeout, "app-3", nil)
	assert.Equal(t, 1, f.rec.count(events.SpeechApplicationTimeout))
	assert.Empty(t, f.c.PendingApplications())
}

func TestCallingRoll(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	require.NoError(t, f.c.StartCallingRoll(ctx))
	assert.True(t, f.state.Room().RoomConfig.IsCallingRoll)
	assert.ErrorIs(t, f.c.StartCallingRoll(ctx), domain.ErrRollAlreadyStarted)
	id := f.sentCmds(CmdRollStart)[0].env.ID

	f.receive(t, student, CmdRollReply, id, nil)
	f.receive(t, student, CmdRollReply, id, nil)
	assert.Equal(t, 1, f.rec.count(events.UserRepliedCallingRoll))
	assert.Equal(t, []string{student}, f.c.Responders())

	require.NoError(t, f.c.StopCallingRoll(ctx))
	assert.False(t, f.state.Room().RoomConfig.IsCallingRoll)
	assert.ErrorIs(t, f.c.StopCallingRoll(ctx), domain.ErrRollNotStarted)
	assert.Equal(t, 1, f.rec.count(events.CallingRollStarted))
	assert.Equal(t, 1, f.rec.count(events.CallingRollStopped))
}

func TestStudentRepliesToRollOnce(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	assert.ErrorIs(t, f.c.ReplyCallingRoll(ctx), domain.ErrRollNotStarted)
	assert.ErrorIs(t, f.c.StartCallingRoll(ctx), domain.ErrNoPrivilege)

	f.receive(t, teacher, CmdRollStart, "roll-1", nil)
	assert.Equal(t, teacher, f.rec.last(events.CallingRollStarted).(events.CallingRollStartedEvent).By)

	require.NoError(t, f.c.ReplyCallingRoll(ctx))
	require.NoError(t, f.c.ReplyCallingRoll(ctx))
	replies := f.sentCmds(CmdRollReply)
	require.Len(t, replies, 1)
	assert.Equal(t, "roll-1", replies[0].env.ID)

	f.receive(t, teacher, CmdRollStop, "roll-1", nil)
	assert.Equal(t, 1, f.rec.count(events.CallingRollStopped))
	assert.ErrorIs(t, f.c.ReplyCallingRoll(ctx), domain.ErrRollNotStarted)
}

func TestMuteDirectives(t *testing.T) {
	s := newFixture(t, false)
	assert.ErrorIs(t, s.c.MuteUserMicrophone(context.Background(), teacher, true), domain.ErrNoPrivilege)

	s.receive(t, teacher, CmdMuteMic, "", flagData{On: true})
	assert.Equal(t, []bool{true}, s.media.micCalls())
	ev := s.rec.last(events.MicrophoneMuted).(events.MicrophoneMutedEvent)
	assert.True(t, ev.Muted)
	assert.Equal(t, teacher, ev.By)

	s.receive(t, teacher, CmdMuteAllCamera, "", flagData{On: true})
	assert.True(t, s.state.Room().RoomConfig.IsAllCameraMuted)
	assert.Equal(t, 1, s.rec.count(events.CameraMuted))

	s.receive(t, teacher, CmdMuteChat, "", flagData{On: true})
	assert.True(t, s.state.Room().RoomConfig.IsChatRoomMuted)
	assert.Equal(t, 1, s.rec.count(events.ChatRoomMuted))

	h := newFixture(t, true)
	require.NoError(t, h.c.MuteUserCamera(context.Background(), student, true))
	require.Len(t, h.sentCmds(CmdMuteCamera), 1)
	assert.Equal(t, student, h.sentCmds(CmdMuteCamera)[0].to)

	require.NoError(t, h.c.MuteAllUsersMicrophone(context.Background(), true))
	assert.True(t, h.state.Room().RoomConfig.IsAllMicMuted)
	all := h.sentCmds(CmdMuteAllMic)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].to)
	assert.Equal(t, 1, h.rec.count(events.RoomConfigChanged))
}

func TestControlForOtherRoomIsDropped(t *testing.T) {
	f := newFixture(t, false)
	payload, err := encodeEnvelope(Envelope{Cmd: CmdMuteMic, RoomID: 7, From: teacher}, flagData{On: true})
	require.NoError(t, err)
	f.c.HandleControl(teacher, payload)
	f.c.HandleControl(teacher, []byte("{broken"))
	assert.Empty(t, f.rec.all())
	assert.Empty(t, f.media.micCalls())
}

func TestKickOff(t *testing.T) {
	h := newFixture(t, true)
	h.im.EXPECT().KickGroupMember(gomock.Any(), student).Return(nil)
	require.NoError(t, h.c.KickOffUser(context.Background(), student))
	require.Len(t, h.sentCmds(CmdKickOff), 1)

	h.im.EXPECT().KickGroupMember(gomock.Any(), "ghost").Return(core.ErrMemberNotFound)
	require.NoError(t, h.c.KickOffUser(context.Background(), "ghost"))
	assert.Len(t, h.sentCmds(CmdKickOff), 1)

	h.im.EXPECT().KickGroupMember(gomock.Any(), "dave").Return(errors.New("timeout"))
	assert.Equal(t, domain.KindTransport, domain.KindOf(h.c.KickOffUser(context.Background(), "dave")))

	s := newFixture(t, false)
	s.receive(t, teacher, CmdKickOff, "", nil)
	assert.Equal(t, []string{teacher}, s.kicked)
}

func TestExitSpeechState(t *testing.T) {
	f := newFixture(t, false)
	assert.ErrorIs(t, f.c.ExitSpeechState(context.Background()), domain.ErrNotSpeaking)

	f.state.SetLocal(func(u *domain.RoomUser) { u.IsAudioStreamAvailable = true })
	require.NoError(t, f.c.ExitSpeechState(context.Background()))
	assert.Equal(t, []bool{true}, f.media.micCalls())
	assert.Len(t, f.sentCmds(CmdExitSpeech), 1)

	h := newFixture(t, true)
	h.receive(t, student, CmdExitSpeech, "", nil)
	assert.Equal(t, student, h.rec.last(events.UserStateChanged).(events.UserStateChangedEvent).User.UserID)
}

func TestSendOffSpeakers(t *testing.T) {
	s := newFixture(t, false)
	s.receive(t, teacher, CmdSendOffAllSpeakers, "", nil)
	s.receive(t, teacher, CmdSendOffSpeaker, "", nil)
	assert.Equal(t, []bool{true, true}, s.media.micCalls())
	assert.Equal(t, 2, s.rec.count(events.SpeechExitOrdered))

	h := newFixture(t, true)
	require.NoError(t, h.c.SendOffSpeaker(context.Background(), student))
	require.NoError(t, h.c.SendOffAllSpeakers(context.Background()))
	assert.Len(t, h.sentCmds(CmdSendOffSpeaker), 1)
	assert.Len(t, h.sentCmds(CmdSendOffAllSpeakers), 1)
}

func TestForbidSpeechApplication(t *testing.T) {
	h := newFixture(t, true)
	require.NoError(t, h.c.ForbidSpeechApplication(context.Background(), true))
	assert.True(t, h.state.Room().RoomConfig.IsSpeechApplicationForbidden)

	s := newFixture(t, false)
	s.receive(t, teacher, CmdApplyForbid, "", flagData{On: true})
	assert.True(t, s.state.Room().RoomConfig.IsSpeechApplicationForbidden)
	assert.True(t, s.rec.last(events.SpeechApplicationForbidden).(events.SpeechApplicationForbiddenEvent).Forbidden)
}

func TestSetControlConfig(t *testing.T) {
	h := newFixture(t, true)
	mode := domain.FreeSpeech
	require.NoError(t, h.c.SetControlConfig(context.Background(), domain.RoomConfigPatch{SpeechMode: &mode}))
	assert.Equal(t, domain.FreeSpeech, h.state.Room().RoomConfig.SpeechMode)
	require.Len(t, h.sentCmds(CmdRoomConfig), 1)

	s := newFixture(t, false)
	muted := true
	s.receive(t, teacher, CmdRoomConfig, "", domain.RoomConfigPatch{IsAllMicMuted: &muted})
	assert.True(t, s.state.Room().RoomConfig.IsAllMicMuted)
	assert.Equal(t, domain.ApplySpeech, s.state.Room().RoomConfig.SpeechMode)
}

func TestOperationsRequireRoom(t *testing.T) {
	f := newFixture(t, true)
	f.state.Reset()
	assert.ErrorIs(t, f.c.StartCallingRoll(context.Background()), domain.ErrRoomNotEntered)
	assert.ErrorIs(t, f.c.SendSpeechApplication(context.Background()), domain.ErrRoomNotEntered)
}

func TestSetControlConfigRequiresHost(t *testing.T) {
	s := newFixture(t, false)
	muted := true
	err := s.c.SetControlConfig(context.Background(), domain.RoomConfigPatch{IsChatRoomMuted: &muted})
	assert.ErrorIs(t, err, domain.ErrNoPrivilege)
	assert.False(t, s.state.Room().RoomConfig.IsChatRoomMuted)
	assert.Empty(t, s.sentCmds(CmdRoomConfig))
	assert.Empty(t, s.rec.all())
}

func TestFailedBroadcastLeavesConfigUntouched(t *testing.T) {
	h := newFixture(t, true)
	ctx := context.Background()
	before := h.state.Room().RoomConfig
	h.setSendErr(errors.New("down"))

	muted := true
	ops := map[string]func() error{
		"mute chat":        func() error { return h.c.MuteChatRoom(ctx, true) },
		"mute all mic":     func() error { return h.c.MuteAllUsersMicrophone(ctx, true) },
		"mute all camera":  func() error { return h.c.MuteAllUsersCamera(ctx, true) },
		"forbid apply":     func() error { return h.c.ForbidSpeechApplication(ctx, true) },
		"set config patch": func() error { return h.c.SetControlConfig(ctx, domain.RoomConfigPatch{IsAllMicMuted: &muted}) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, domain.KindTransport, domain.KindOf(op()))
			assert.Equal(t, before, h.state.Room().RoomConfig)
		})
	}
	assert.Zero(t, h.rec.count(events.RoomConfigChanged))

	h.setSendErr(nil)
	require.NoError(t, h.c.MuteChatRoom(ctx, true))
	assert.True(t, h.state.Room().RoomConfig.IsChatRoomMuted)
	assert.Equal(t, 1, h.rec.count(events.RoomConfigChanged))
}

func TestFailedRollStopKeepsRollRunning(t *testing.T) {
	h := newFixture(t, true)
	ctx := context.Background()
	require.NoError(t, h.c.StartCallingRoll(ctx))
	id := h.sentCmds(CmdRollStart)[0].env.ID

	h.setSendErr(errors.New("down"))
	assert.Equal(t, domain.KindTransport, domain.KindOf(h.c.StopCallingRoll(ctx)))
	assert.True(t, h.state.Room().RoomConfig.IsCallingRoll)
	assert.Zero(t, h.rec.count(events.CallingRollStopped))

	// replies for the running roll still count
	h.receive(t, student, CmdRollReply, id, nil)
	assert.Equal(t, []string{student}, h.c.Responders())

	h.setSendErr(nil)
	require.NoError(t, h.c.StopCallingRoll(ctx))
	stops := h.sentCmds(CmdRollStop)
	require.Len(t, stops, 1)
	assert.Equal(t, id, stops[0].env.ID)
	assert.False(t, h.state.Room().RoomConfig.IsCallingRoll)
}

func TestFailedApplicationReplyKeepsApplication(t *testing.T) {
	h := newFixture(t, true)
	ctx := context.Background()
	h.receive(t, student, CmdApply, "app-1", nil)

	h.setSendErr(errors.New("down"))
	assert.Equal(t, domain.KindTransport, domain.KindOf(h.c.ReplySpeechApplication(ctx, student, true)))
	assert.Equal(t, []string{student}, h.c.PendingApplications())

	h.setSendErr(nil)
	require.NoError(t, h.c.ReplySpeechApplication(ctx, student, true))
	replies := h.sentCmds(CmdApplyReply)
	require.Len(t, replies, 1)
	assert.Equal(t, "app-1", replies[0].env.ID)
	assert.Empty(t, h.c.PendingApplications())
}

func TestFailedInvitationReplyKeepsMicrophoneMuted(t *testing.T) {
	s := newFixture(t, false)
	ctx := context.Background()
	s.receive(t, teacher, CmdInvite, "inv-1", inviteData{TimeoutMs: 60000})

	s.setSendErr(errors.New("down"))
	assert.Equal(t, domain.KindTransport, domain.KindOf(s.c.ReplySpeechInvitation(ctx, true)))
	assert.Empty(t, s.media.micCalls())
	assert.True(t, s.c.HasReceivedInvitation())

	s.setSendErr(nil)
	require.NoError(t, s.c.ReplySpeechInvitation(ctx, true))
	assert.Equal(t, []bool{false}, s.media.micCalls())
	assert.False(t, s.c.HasReceivedInvitation())
}

func TestFailedCancelKeepsPendingRecords(t *testing.T) {
	h := newFixture(t, true)
	ctx := context.Background()
	h.c.inviteTimeout = time.Minute
	require.NoError(t, h.c.SendSpeechInvitation(ctx, student))
	h.setSendErr(errors.New("down"))
	assert.Equal(t, domain.KindTransport, domain.KindOf(h.c.CancelSpeechInvitation(ctx, student)))
	assert.Equal(t, []string{student}, h.c.PendingInvitations())

	s := newFixture(t, false)
	s.c.applyTimeout = time.Minute
	require.NoError(t, s.c.SendSpeechApplication(ctx))
	s.setSendErr(errors.New("down"))
	assert.Equal(t, domain.KindTransport, domain.KindOf(s.c.CancelSpeechApplication(ctx)))
	assert.True(t, s.c.HasPendingApplication())

	h.c.Detach()
	s.c.Detach()
}

func TestInviteeExpiresWithoutNotice(t *testing.T) {
	s := newFixture(t, false)
	s.receive(t, teacher, CmdInvite, "inv-1", inviteData{TimeoutMs: short.Milliseconds()})
	require.True(t, s.c.HasReceivedInvitation())

	require.Eventually(t, func() bool { return s.rec.count(events.SpeechInvitationTimeout) == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.c.HasReceivedInvitation())
	ev := s.rec.last(events.SpeechInvitationTimeout).(events.SpeechInvitationTimeoutEvent)
	assert.Equal(t, "inv-1", ev.InvitationID)
	assert.Equal(t, student, ev.UserID)

	// the inviter's late notice does not fire a second event
	s.receive(t, teacher, CmdInviteTimeout, "inv-1", nil)
	assert.Equal(t, 1, s.rec.count(events.SpeechInvitationTimeout))
	assert.ErrorIs(t, s.c.ReplySpeechInvitation(context.Background(), true), domain.ErrInvitationExpired)
}
