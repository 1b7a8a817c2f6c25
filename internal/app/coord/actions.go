package coord

import (
	"context"
	"errors"

	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SetControlConfig applies patch locally once the room has been told.
func (c *Coordinator) SetControlConfig(ctx context.Context, patch domain.RoomConfigPatch) error {
	if _, _, err := c.hostGuard(); err != nil {
		return err
	}
	if err := c.send(ctx, "", CmdRoomConfig, "", patch); err != nil {
		return err
	}
	cfg := c.updateConfig(func(cfg *domain.RoomConfig) { *cfg = cfg.Apply(patch) })
	c.publishConfig(ctx)
	c.pub.Emit(events.RoomConfigChangedEvent{Config: cfg})
	return nil
}

func (c *Coordinator) MuteUserMicrophone(ctx context.Context, userID string, mute bool) error {
	return c.muteUser(ctx, CmdMuteMic, userID, mute)
}

func (c *Coordinator) MuteUserCamera(ctx context.Context, userID string, mute bool) error {
	return c.muteUser(ctx, CmdMuteCamera, userID, mute)
}

func (c *Coordinator) muteUser(ctx context.Context, cmd Cmd, userID string, mute bool) error {
	_, local, err := c.hostGuard()
	if err != nil {
		return err
	}
	if userID == "" || userID == local.UserID {
		return domain.ErrInvalidUserID
	}
	return c.send(ctx, userID, cmd, "", flagData{On: mute})
}

func (c *Coordinator) MuteAllUsersMicrophone(ctx context.Context, mute bool) error {
	return c.broadcastFlag(ctx, CmdMuteAllMic, mute, func(cfg *domain.RoomConfig) { cfg.IsAllMicMuted = mute })
}

func (c *Coordinator) MuteAllUsersCamera(ctx context.Context, mute bool) error {
	return c.broadcastFlag(ctx, CmdMuteAllCamera, mute, func(cfg *domain.RoomConfig) { cfg.IsAllCameraMuted = mute })
}

func (c *Coordinator) MuteChatRoom(ctx context.Context, mute bool) error {
	return c.broadcastFlag(ctx, CmdMuteChat, mute, func(cfg *domain.RoomConfig) { cfg.IsChatRoomMuted = mute })
}

func (c *Coordinator) ForbidSpeechApplication(ctx context.Context, forbid bool) error {
	return c.broadcastFlag(ctx, CmdApplyForbid, forbid, func(cfg *domain.RoomConfig) { cfg.IsSpeechApplicationForbidden = forbid })
}

// broadcastFlag flips a room-wide switch and tells everyone else.
func (c *Coordinator) broadcastFlag(ctx context.Context, cmd Cmd, on bool, set func(cfg *domain.RoomConfig)) error {
	if _, _, err := c.hostGuard(); err != nil {
		return err
	}
	if err := c.send(ctx, "", cmd, "", flagData{On: on}); err != nil {
		return err
	}
	cfg := c.updateConfig(set)
	c.publishConfig(ctx)
	c.pub.Emit(events.RoomConfigChangedEvent{Config: cfg})
	return nil
}

// KickOffUser removes userID from the group and tells its client to leave.
func (c *Coordinator) KickOffUser(ctx context.Context, userID string) error {
	_, local, err := c.hostGuard()
	if err != nil {
		return err
	}
	if userID == "" || userID == local.UserID {
		return domain.ErrInvalidUserID
	}
	if err := c.im.KickGroupMember(ctx, userID); err != nil {
		if !errors.Is(err, core.ErrMemberNotFound) {
			return domain.Transport("kick group member", err)
		}
		log.Warn().Str("module", "app.coord").Str("user", userID).Msg("kick: member already gone")
		return nil
	}
	if err := c.send(ctx, userID, CmdKickOff, "", nil); err != nil {
		log.Warn().Str("module", "app.coord").Str("user", userID).Err(err).Msg("kick notice not delivered")
	}
	return nil
}

func (c *Coordinator) StartCallingRoll(ctx context.Context) error {
	room, local, err := c.hostGuard()
	if err != nil {
		return err
	}
	if room.RoomConfig.IsCallingRoll {
		return domain.ErrRollAlreadyStarted
	}
	id := uuid.NewString()
	c.mu.Lock()
	c.rollID = id
	c.rollReplied = false
	c.responders = make(map[string]struct{})
	c.mu.Unlock()

	c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsCallingRoll = true })
	if err := c.send(ctx, "", CmdRollStart, id, nil); err != nil {
		c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsCallingRoll = false })
		return err
	}
	c.publishConfig(ctx)
	c.pub.Emit(events.CallingRollStartedEvent{By: local.UserID})
	return nil
}

func (c *Coordinator) StopCallingRoll(ctx context.Context) error {
	room, local, err := c.hostGuard()
	if err != nil {
		return err
	}
	if !room.RoomConfig.IsCallingRoll {
		return domain.ErrRollNotStarted
	}
	c.mu.Lock()
	id := c.rollID
	c.mu.Unlock()

	if err := c.send(ctx, "", CmdRollStop, id, nil); err != nil {
		return err
	}
	c.mu.Lock()
	if c.rollID == id {
		c.rollID = ""
	}
	c.mu.Unlock()
	c.updateConfig(func(cfg *domain.RoomConfig) { cfg.IsCallingRoll = false })
	c.publishConfig(ctx)
	c.pub.Emit(events.CallingRollStoppedEvent{By: local.UserID})
	return nil
}

// ReplyCallingRoll answers the running roll call; repeats are ignored.
func (c *Coordinator) ReplyCallingRoll(ctx context.Context) error {
	room, _, err := c.guard()
	if err != nil {
		return err
	}
	if !room.RoomConfig.IsCallingRoll {
		return domain.ErrRollNotStarted
	}
	c.mu.Lock()
	if c.rollReplied {
		c.mu.Unlock()
		return nil
	}
	id := c.rollID
	c.mu.Unlock()

	if err := c.send(ctx, "", CmdRollReply, id, nil); err != nil {
		return err
	}
	c.mu.Lock()
	if c.rollID == id {
		c.rollReplied = true
	}
	c.mu.Unlock()
	return nil
}

// Responders returns who answered the current roll call.
func (c *Coordinator) Responders() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.responders))
	for u := range c.responders {
		out = append(out, u)
	}
	return out
}

func (c *Coordinator) SendOffSpeaker(ctx context.Context, userID string) error {
	_, local, err := c.hostGuard()
	if err != nil {
		return err
	}
	if userID == "" || userID == local.UserID {
		return domain.ErrInvalidUserID
	}
	return c.send(ctx, userID, CmdSendOffSpeaker, "", nil)
}

func (c *Coordinator) SendOffAllSpeakers(ctx context.Context) error {
	if _, _, err := c.hostGuard(); err != nil {
		return err
	}
	return c.send(ctx, "", CmdSendOffAllSpeakers, "", nil)
}

// ExitSpeechState mutes the local microphone and tells the room.
func (c *Coordinator) ExitSpeechState(ctx context.Context) error {
	_, local, err := c.guard()
	if err != nil {
		return err
	}
	if !local.IsAudioStreamAvailable {
		return domain.ErrNotSpeaking
	}
	if m := c.localMedia(); m != nil {
		if err := m.SetMicrophoneMuted(true); err != nil {
			return domain.Transport("mute microphone", err)
		}
	}
	return c.send(ctx, "", CmdExitSpeech, "", nil)
}
