// Package coord implements the classroom interaction protocol: mute
// enforcement, roll call, speech invitations and applications.
package coord

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/roomkit/internal/app/auth"
	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultInvitationTimeout  = 30 * time.Second
	DefaultApplicationTimeout = 30 * time.Second
)

// LocalMedia applies mute directives to the local user's devices.
type LocalMedia interface {
	SetMicrophoneMuted(mute bool) error
	SetCameraMuted(mute bool) error
}

type Deps struct {
	Auth      *auth.Gateway
	State     core.RoomState
	Messaging core.MessagingTransport
	Events    events.Publisher
	Media     LocalMedia
	// OnKicked runs when a host removes the local user.
	OnKicked func(by string)

	InvitationTimeout  time.Duration
	ApplicationTimeout time.Duration
}

type pending struct {
	id       string
	user     string
	timer    *time.Timer
	deadline time.Time
}

func (p *pending) stop() {
	if p != nil && p.timer != nil {
		p.timer.Stop()
	}
}

// Coordinator must never emit while holding mu.
type Coordinator struct {
	auth     *auth.Gateway
	state    core.RoomState
	im       core.MessagingTransport
	pub      events.Publisher
	media    LocalMedia
	onKicked func(by string)

	inviteTimeout time.Duration
	applyTimeout  time.Duration

	mu   sync.Mutex
	room domain.RoomID
	// host side, keyed by target user
	invitations  map[string]*pending
	applications map[string]*pending
	responders   map[string]struct{}
	// participant side
	invitation  *pending
	application *pending
	rollID      string
	rollReplied bool
}

func New(d Deps) *Coordinator {
	c := &Coordinator{
		auth:          d.Auth,
		state:         d.State,
		im:            d.Messaging,
		pub:           d.Events,
		media:         d.Media,
		onKicked:      d.OnKicked,
		inviteTimeout: d.InvitationTimeout,
		applyTimeout:  d.ApplicationTimeout,
	}
	if c.inviteTimeout <= 0 {
		c.inviteTimeout = DefaultInvitationTimeout
	}
	if c.applyTimeout <= 0 {
		c.applyTimeout = DefaultApplicationTimeout
	}
	c.clearLocked()
	return c
}

// SetLocalMedia installs the device port after construction.
func (c *Coordinator) SetLocalMedia(m LocalMedia) {
	c.mu.Lock()
	c.media = m
	c.mu.Unlock()
}

func (c *Coordinator) Attach(room domain.RoomInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAllLocked()
	c.clearLocked()
	c.room = room.RoomID
	log.Debug().Str("module", "app.coord").Uint32("room", uint32(room.RoomID)).Msg("attached")
}

// Detach cancels every pending timer; none of them fires afterwards.
func (c *Coordinator) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAllLocked()
	c.clearLocked()
	c.room = 0
	log.Debug().Str("module", "app.coord").Msg("detached")
}

func (c *Coordinator) stopAllLocked() {
	for _, p := range c.invitations {
		p.stop()
	}
	for _, p := range c.applications {
		p.stop()
	}
	c.invitation.stop()
	c.application.stop()
}

func (c *Coordinator) clearLocked() {
	c.invitations = make(map[string]*pending)
	c.applications = make(map[string]*pending)
	c.responders = make(map[string]struct{})
	c.invitation = nil
	c.application = nil
	c.rollID = ""
	c.rollReplied = false
}

// PendingInvitations lists invitees still waiting for an answer.
func (c *Coordinator) PendingInvitations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.invitations))
	for u := range c.invitations {
		out = append(out, u)
	}
	return out
}

// PendingApplications lists applicants a host has not answered yet.
func (c *Coordinator) PendingApplications() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.applications))
	for u := range c.applications {
		out = append(out, u)
	}
	return out
}

func (c *Coordinator) HasReceivedInvitation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invitation != nil
}

func (c *Coordinator) HasPendingApplication() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.application != nil
}

// guard runs the checks shared by every operation and returns the room
// and local user it validated.
func (c *Coordinator) guard() (domain.RoomInfo, domain.RoomUser, error) {
	if err := c.auth.Check(); err != nil {
		return domain.RoomInfo{}, domain.RoomUser{}, err
	}
	room, local := c.state.Snapshot()
	if !room.Active() {
		return room, local, domain.ErrRoomNotEntered
	}
	return room, local, nil
}

func (c *Coordinator) hostGuard() (domain.RoomInfo, domain.RoomUser, error) {
	room, local, err := c.guard()
	if err != nil {
		return room, local, err
	}
	if !local.Role.CanControl() {
		return room, local, domain.ErrNoPrivilege
	}
	return room, local, nil
}

func (c *Coordinator) send(ctx context.Context, to string, cmd Cmd, id string, data any) error {
	room, local := c.state.Snapshot()
	payload, err := encodeEnvelope(Envelope{Cmd: cmd, RoomID: room.RoomID, ID: id, From: local.UserID}, data)
	if err != nil {
		return domain.WrapError(domain.KindInvalidParam, "encode control message", err)
	}
	if err := c.im.SendControlMessage(ctx, to, payload); err != nil {
		log.Error().Str("module", "app.coord").Str("cmd", string(cmd)).Str("to", to).Err(err).Msg("send control")
		return domain.Transport(string(cmd), err)
	}
	log.Debug().Str("module", "app.coord").Str("cmd", string(cmd)).Str("to", to).Msg("control sent")
	return nil
}

// publishConfig pushes the current config into the group announcement so
// late joiners see it. A failure here does not fail the directive.
func (c *Coordinator) publishConfig(ctx context.Context) {
	cfg := c.state.Room().RoomConfig
	if err := c.im.SetGroupAnnouncement(ctx, cfg.Announcement()); err != nil {
		log.Warn().Str("module", "app.coord").Err(err).Msg("update announcement")
	}
}

func (c *Coordinator) updateConfig(fn func(cfg *domain.RoomConfig)) domain.RoomConfig {
	var out domain.RoomConfig
	c.state.SetRoom(func(r *domain.RoomInfo) {
		fn(&r.RoomConfig)
		out = r.RoomConfig
	})
	return out
}

func (c *Coordinator) localMedia() LocalMedia {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.media
}

func (c *Coordinator) muteMicrophone(mute bool) {
	m := c.localMedia()
	if m == nil {
		return
	}
	if err := m.SetMicrophoneMuted(mute); err != nil {
		log.Warn().Str("module", "app.coord").Bool("mute", mute).Err(err).Msg("apply microphone directive")
	}
}

func (c *Coordinator) muteCamera(mute bool) {
	m := c.localMedia()
	if m == nil {
		return
	}
	if err := m.SetCameraMuted(mute); err != nil {
		log.Warn().Str("module", "app.coord").Bool("mute", mute).Err(err).Msg("apply camera directive")
	}
}
