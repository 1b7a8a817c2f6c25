package coord

import (
	"context"
	"time"

	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SendSpeechInvitation invites userID to speak. A second invitation to the
// same user replaces the first one and restarts its timeout.
func (c *Coordinator) SendSpeechInvitation(ctx context.Context, userID string) error {
	room, local, err := c.guard()
	if err != nil {
		return err
	}
	if room.RoomConfig.SpeechMode != domain.ApplySpeech {
		return domain.ErrNotApplySpeechMode
	}
	if !local.Role.CanControl() {
		return domain.ErrNoPrivilege
	}
	if userID == "" || userID == local.UserID {
		return domain.ErrInvalidUserID
	}

	id := uuid.NewString()
	p := &pending{id: id, user: userID, deadline: time.Now().Add(c.inviteTimeout)}
	c.mu.Lock()
	c.invitations[userID].stop()
	c.invitations[userID] = p
	p.timer = time.AfterFunc(c.inviteTimeout, func() { c.invitationExpired(userID, id) })
	c.mu.Unlock()

	if err := c.send(ctx, userID, CmdInvite, id, inviteData{TimeoutMs: c.inviteTimeout.Milliseconds()}); err != nil {
		c.dropInvitation(userID, id)
		return err
	}
	log.Info().Str("module", "app.coord").Str("user", userID).Str("id", id).Msg("speech invitation sent")
	return nil
}

func (c *Coordinator) CancelSpeechInvitation(ctx context.Context, userID string) error {
	if _, _, err := c.guard(); err != nil {
		return err
	}
	c.mu.Lock()
	p, ok := c.invitations[userID]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	if err := c.send(ctx, userID, CmdInviteCancel, p.id, nil); err != nil {
		return err
	}
	c.dropInvitation(userID, p.id)
	return nil
}

// ReplySpeechInvitation answers the invitation held by the local user.
func (c *Coordinator) ReplySpeechInvitation(ctx context.Context, agree bool) error {
	if _, _, err := c.guard(); err != nil {
		return err
	}
	c.mu.Lock()
	inv := c.invitation
	c.mu.Unlock()
	if inv == nil || time.Now().After(inv.deadline) {
		return domain.ErrInvitationExpired
	}
	if err := c.send(ctx, inv.user, CmdInviteReply, inv.id, replyData{Agree: agree}); err != nil {
		return err
	}
	// cancelled or timed out while the reply was in flight
	if !c.takeInvitation(inv.id) {
		return domain.ErrInvitationExpired
	}
	if agree {
		c.muteMicrophone(false)
	}
	return nil
}

func (c *Coordinator) dropInvitation(userID, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.invitations[userID]
	if !ok || p.id != id {
		return false
	}
	p.stop()
	delete(c.invitations, userID)
	return true
}

// invitationExpired is a no-op unless the same invitation is still pending.
func (c *Coordinator) invitationExpired(userID, id string) {
	if !c.dropInvitation(userID, id) {
		return
	}
	log.Info().Str("module", "app.coord").Str("user", userID).Str("id", id).Msg("speech invitation timed out")
	c.pub.Emit(events.SpeechInvitationTimeoutEvent{InvitationID: id, UserID: userID})
	if err := c.send(context.Background(), userID, CmdInviteTimeout, id, nil); err != nil {
		log.Warn().Str("module", "app.coord").Err(err).Msg("invitation timeout notice")
	}
}

// SendSpeechApplication asks the room owner for the floor.
func (c *Coordinator) SendSpeechApplication(ctx context.Context) error {
	room, local, err := c.guard()
	if err != nil {
		return err
	}
	if room.RoomConfig.IsSpeechApplicationForbidden {
		return domain.ErrApplicationForbidden
	}
	if room.RoomConfig.SpeechMode != domain.ApplySpeech {
		return domain.ErrNotApplySpeechMode
	}
	owner := room.OwnerID
	if owner == "" || owner == local.UserID {
		return domain.NewError(domain.KindInvalidParam, "no room owner to apply to")
	}

	id := uuid.NewString()
	p := &pending{id: id, user: owner, deadline: time.Now().Add(c.applyTimeout)}
	c.mu.Lock()
	c.application.stop()
	c.application = p
	p.timer = time.AfterFunc(c.applyTimeout, func() { c.applicationExpired(id) })
	c.mu.Unlock()

	if err := c.send(ctx, owner, CmdApply, id, nil); err != nil {
		c.dropApplication(id)
		return err
	}
	log.Info().Str("module", "app.coord").Str("owner", owner).Str("id", id).Msg("speech application sent")
	return nil
}

func (c *Coordinator) CancelSpeechApplication(ctx context.Context) error {
	if _, _, err := c.guard(); err != nil {
		return err
	}
	c.mu.Lock()
	p := c.application
	c.mu.Unlock()
	if p == nil {
		return nil
	}
	if err := c.send(ctx, p.user, CmdApplyCancel, p.id, nil); err != nil {
		return err
	}
	c.dropApplication(p.id)
	return nil
}

// ReplySpeechApplication answers userID's pending application.
func (c *Coordinator) ReplySpeechApplication(ctx context.Context, userID string, agree bool) error {
	if _, _, err := c.hostGuard(); err != nil {
		return err
	}
	c.mu.Lock()
	p, ok := c.applications[userID]
	c.mu.Unlock()
	if !ok {
		return domain.ErrNoApplication
	}
	if err := c.send(ctx, userID, CmdApplyReply, p.id, replyData{Agree: agree}); err != nil {
		return err
	}
	c.dropReceivedApplication(userID, p.id)
	return nil
}

func (c *Coordinator) dropApplication(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.application == nil || c.application.id != id {
		return false
	}
	c.application.stop()
	c.application = nil
	return true
}

func (c *Coordinator) applicationExpired(id string) {
	c.mu.Lock()
	p := c.application
	c.mu.Unlock()
	if p == nil || !c.dropApplication(id) {
		return
	}
	self := c.state.Local().UserID
	log.Info().Str("module", "app.coord").Str("id", id).Msg("speech application timed out")
	c.pub.Emit(events.SpeechApplicationTimeoutEvent{ApplicationID: id, UserID: self})
	if err := c.send(context.Background(), p.user, CmdApplyTimeout, id, nil); err != nil {
		log.Warn().Str("module", "app.coord").Err(err).Msg("application timeout notice")
	}
}
