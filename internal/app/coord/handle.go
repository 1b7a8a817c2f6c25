package coord

import (
	"time"

	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

// HandleControl dispatches a control message received from another member.
func (c *Coordinator) HandleControl(from string, payload []byte) {
	env, err := decodeEnvelope(payload)
	if err != nil {
		log.Warn().Str("module", "app.coord").Str("from", from).Err(err).Msg("drop malformed control message")
		return
	}
	c.mu.Lock()
	attached := c.room
	c.mu.Unlock()
	if attached == 0 || env.RoomID != attached {
		log.Debug().Str("module", "app.coord").Str("cmd", string(env.Cmd)).Uint32("room", uint32(env.RoomID)).Msg("drop control message for another room")
		return
	}
	if from == "" {
		from = env.From
	}

	if !participantCmd(env.Cmd) && !c.fromHost(from) {
		log.Warn().Str("module", "app.coord").Str("cmd", string(env.Cmd)).Str("from", from).Msg("drop directive from non-host")
		return
	}

	log.Debug().Str("module", "app.coord").Str("cmd", string(env.Cmd)).Str("from", from).Msg("control received")
	switch env.Cmd {
	case CmdRoomConfig:
		var patch domain.RoomConfigPatch
		if c.bind(env, &patch) {
			cfg := c.updateConfig(func(cfg *domain.RoomConfig) { *cfg = cfg.Apply(patch) })
			c.pub.Emit(events.RoomConfigChangedEvent{Config: cfg})
		}
	case CmdMuteMic:
		var d flagData
		if c.bind(env, &d) {
			c.muteMicrophone(d.On)
			c.pub.Emit(events.MicrophoneMutedEvent{Muted: d.On, By: from})
		}
	case CmdMuteCamera:
		var d flagData
		if c.bind(env, &d) {
			c.muteCamera(d.On)
			c.pub.Emit(events.CameraMutedEvent{Muted: d.On, By: from})
		}
	case CmdMuteAllMic:
		var d flagData
		if c.bind(env, &d) {
			c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsAllMicMuted = d.On })
			if !c.localIsHost() {
				c.muteMicrophone(d.On)
				c.pub.Emit(events.MicrophoneMutedEvent{Muted: d.On, By: from})
			}
		}
	case CmdMuteAllCamera:
		var d flagData
		if c.bind(env, &d) {
			c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsAllCameraMuted = d.On })
			if !c.localIsHost() {
				c.muteCamera(d.On)
				c.pub.Emit(events.CameraMutedEvent{Muted: d.On, By: from})
			}
		}
	case CmdMuteChat:
		var d flagData
		if c.bind(env, &d) {
			c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsChatRoomMuted = d.On })
			c.pub.Emit(events.ChatRoomMutedEvent{Muted: d.On, By: from})
		}
	case CmdApplyForbid:
		var d flagData
		if c.bind(env, &d) {
			c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsSpeechApplicationForbidden = d.On })
			c.pub.Emit(events.SpeechApplicationForbiddenEvent{Forbidden: d.On, By: from})
		}
	case CmdKickOff:
		if c.onKicked != nil {
			c.onKicked(from)
		}
	case CmdRollStart:
		c.onRollStart(env, from)
	case CmdRollStop:
		c.onRollStop(from)
	case CmdRollReply:
		c.onRollReply(env, from)
	case CmdInvite:
		c.onInvite(env, from)
	case CmdInviteCancel:
		c.onInviteCancel(env, from)
	case CmdInviteReply:
		c.onInviteReply(env, from)
	case CmdInviteTimeout:
		c.onInviteTimeout(env)
	case CmdApply:
		c.onApply(env, from)
	case CmdApplyCancel:
		c.onApplyCancel(env, from)
	case CmdApplyReply:
		c.onApplyReply(env, from)
	case CmdApplyTimeout:
		c.onApplyTimeout(env, from)
	case CmdSendOffSpeaker:
		c.muteMicrophone(true)
		c.pub.Emit(events.SpeechExitOrderedEvent{By: from})
	case CmdSendOffAllSpeakers:
		if !c.localIsHost() {
			c.muteMicrophone(true)
			c.pub.Emit(events.SpeechExitOrderedEvent{By: from})
		}
	case CmdExitSpeech:
		if u, ok := c.state.User(from); ok {
			c.pub.Emit(events.UserStateChangedEvent{User: u})
		}
	default:
		log.Warn().Str("module", "app.coord").Str("cmd", string(env.Cmd)).Msg("unknown control command")
	}
}

// participantCmd lists what any member may send; everything else needs a host.
func participantCmd(cmd Cmd) bool {
	switch cmd {
	case CmdRollReply, CmdInviteReply, CmdApply, CmdApplyCancel, CmdApplyTimeout, CmdExitSpeech:
		return true
	}
	return false
}

func (c *Coordinator) bind(env Envelope, v any) bool {
	if err := env.bind(v); err != nil {
		log.Warn().Str("module", "app.coord").Str("cmd", string(env.Cmd)).Err(err).Msg("drop control message with bad data")
		return false
	}
	return true
}

// fromHost reports whether userID may issue directives in this room.
func (c *Coordinator) fromHost(userID string) bool {
	if userID == "" {
		return false
	}
	if c.state.Room().OwnerID == userID {
		return true
	}
	u, ok := c.state.User(userID)
	return ok && u.Role.CanControl()
}

func (c *Coordinator) localIsHost() bool {
	return c.state.Local().Role.CanControl()
}

func (c *Coordinator) onRollStart(env Envelope, from string) {
	c.mu.Lock()
	c.rollID = env.ID
	c.rollReplied = false
	c.responders = make(map[string]struct{})
	c.mu.Unlock()
	c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsCallingRoll = true })
	c.pub.Emit(events.CallingRollStartedEvent{By: from})
}

func (c *Coordinator) onRollStop(from string) {
	c.mu.Lock()
	c.rollID = ""
	c.rollReplied = false
	c.mu.Unlock()
	c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsCallingRoll = false })
	c.pub.Emit(events.CallingRollStoppedEvent{By: from})
}

func (c *Coordinator) onRollReply(env Envelope, from string) {
	if !c.localIsHost() || !c.state.Room().RoomConfig.IsCallingRoll {
		return
	}
	c.mu.Lock()
	if env.ID != "" && c.rollID != "" && env.ID != c.rollID {
		c.mu.Unlock()
		return
	}
	if _, seen := c.responders[from]; seen {
		c.mu.Unlock()
		return
	}
	c.responders[from] = struct{}{}
	c.mu.Unlock()
	c.pub.Emit(events.UserRepliedCallingRollEvent{UserID: from})
}

func (c *Coordinator) onInvite(env Envelope, from string) {
	var d inviteData
	if !c.bind(env, &d) || env.ID == "" {
		return
	}
	timeout := time.Duration(d.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = c.inviteTimeout
	}
	id := env.ID
	p := &pending{id: id, user: from, deadline: time.Now().Add(timeout)}
	c.mu.Lock()
	c.invitation.stop()
	c.invitation = p
	p.timer = time.AfterFunc(timeout, func() { c.receivedInvitationExpired(id) })
	c.mu.Unlock()
	c.pub.Emit(events.SpeechInvitationReceivedEvent{InvitationID: id, Inviter: from})
}

func (c *Coordinator) takeInvitation(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invitation == nil || c.invitation.id != id {
		return false
	}
	c.invitation.stop()
	c.invitation = nil
	return true
}

// receivedInvitationExpired expires the invitation even when the inviter's
// timeout notice never arrives.
func (c *Coordinator) receivedInvitationExpired(id string) {
	if !c.takeInvitation(id) {
		return
	}
	log.Info().Str("module", "app.coord").Str("id", id).Msg("received speech invitation timed out")
	c.pub.Emit(events.SpeechInvitationTimeoutEvent{InvitationID: id, UserID: c.state.Local().UserID})
}

func (c *Coordinator) onInviteCancel(env Envelope, from string) {
	if c.takeInvitation(env.ID) {
		c.pub.Emit(events.SpeechInvitationCancelledEvent{InvitationID: env.ID, Inviter: from})
	}
}

func (c *Coordinator) onInviteTimeout(env Envelope) {
	if c.takeInvitation(env.ID) {
		c.pub.Emit(events.SpeechInvitationTimeoutEvent{InvitationID: env.ID, UserID: c.state.Local().UserID})
	}
}

func (c *Coordinator) onInviteReply(env Envelope, from string) {
	var d replyData
	if !c.bind(env, &d) {
		return
	}
	// a reply racing the timeout loses: the invitation is already gone
	if !c.dropInvitation(from, env.ID) {
		log.Debug().Str("module", "app.coord").Str("from", from).Msg("late invitation reply")
		return
	}
	c.pub.Emit(events.SpeechInvitationRepliedEvent{InvitationID: env.ID, UserID: from, Agree: d.Agree})
}

func (c *Coordinator) onApply(env Envelope, from string) {
	if env.ID == "" || !c.localIsHost() {
		return
	}
	c.mu.Lock()
	c.applications[from] = &pending{id: env.ID, user: from}
	c.mu.Unlock()
	c.pub.Emit(events.SpeechApplicationReceivedEvent{ApplicationID: env.ID, UserID: from})
}

func (c *Coordinator) dropReceivedApplication(from, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.applications[from]
	if !ok || p.id != id {
		return false
	}
	delete(c.applications, from)
	return true
}

func (c *Coordinator) onApplyCancel(env Envelope, from string) {
	if c.dropReceivedApplication(from, env.ID) {
		c.pub.Emit(events.SpeechApplicationCancelledEvent{ApplicationID: env.ID, UserID: from})
	}
}

func (c *Coordinator) onApplyTimeout(env Envelope, from string) {
	if c.dropReceivedApplication(from, env.ID) {
		c.pub.Emit(events.SpeechApplicationTimeoutEvent{ApplicationID: env.ID, UserID: from})
	}
}

func (c *Coordinator) onApplyReply(env Envelope, from string) {
	var d replyData
	if !c.bind(env, &d) {
		return
	}
	if !c.dropApplication(env.ID) {
		log.Debug().Str("module", "app.coord").Str("from", from).Msg("late application reply")
		return
	}
	if d.Agree {
		c.muteMicrophone(false)
	}
	c.pub.Emit(events.SpeechApplicationRepliedEvent{ApplicationID: env.ID, By: from, Agree: d.Agree})
}
