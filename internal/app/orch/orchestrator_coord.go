package orch

import (
	"context"

	"github.com/dkeye/roomkit/internal/domain"
)

func (o *Orchestrator) SetControlConfig(ctx context.Context, patch domain.RoomConfigPatch) error {
	return o.coord.SetControlConfig(ctx, patch)
}

func (o *Orchestrator) MuteUserMicrophone(ctx context.Context, userID string, mute bool) error {
	return o.coord.MuteUserMicrophone(ctx, userID, mute)
}

func (o *Orchestrator) MuteAllUsersMicrophone(ctx context.Context, mute bool) error {
	return o.coord.MuteAllUsersMicrophone(ctx, mute)
}

func (o *Orchestrator) MuteUserCamera(ctx context.Context, userID string, mute bool) error {
	return o.coord.MuteUserCamera(ctx, userID, mute)
}

func (o *Orchestrator) MuteAllUsersCamera(ctx context.Context, mute bool) error {
	return o.coord.MuteAllUsersCamera(ctx, mute)
}

func (o *Orchestrator) MuteChatRoom(ctx context.Context, mute bool) error {
	return o.coord.MuteChatRoom(ctx, mute)
}

func (o *Orchestrator) KickOffUser(ctx context.Context, userID string) error {
	return o.coord.KickOffUser(ctx, userID)
}

func (o *Orchestrator) StartCallingRoll(ctx context.Context) error {
	return o.coord.StartCallingRoll(ctx)
}

func (o *Orchestrator) StopCallingRoll(ctx context.Context) error {
	return o.coord.StopCallingRoll(ctx)
}

func (o *Orchestrator) ReplyCallingRoll(ctx context.Context) error {
	return o.coord.ReplyCallingRoll(ctx)
}

func (o *Orchestrator) SendSpeechInvitation(ctx context.Context, userID string) error {
	return o.coord.SendSpeechInvitation(ctx, userID)
}

func (o *Orchestrator) CancelSpeechInvitation(ctx context.Context, userID string) error {
	return o.coord.CancelSpeechInvitation(ctx, userID)
}

func (o *Orchestrator) ReplySpeechInvitation(ctx context.Context, agree bool) error {
	return o.coord.ReplySpeechInvitation(ctx, agree)
}

func (o *Orchestrator) SendSpeechApplication(ctx context.Context) error {
	return o.coord.SendSpeechApplication(ctx)
}

func (o *Orchestrator) CancelSpeechApplication(ctx context.Context) error {
	return o.coord.CancelSpeechApplication(ctx)
}

func (o *Orchestrator) ReplySpeechApplication(ctx context.Context, userID string, agree bool) error {
	return o.coord.ReplySpeechApplication(ctx, userID, agree)
}

func (o *Orchestrator) ForbidSpeechApplication(ctx context.Context, forbid bool) error {
	return o.coord.ForbidSpeechApplication(ctx, forbid)
}

func (o *Orchestrator) SendOffSpeaker(ctx context.Context, userID string) error {
	return o.coord.SendOffSpeaker(ctx, userID)
}

func (o *Orchestrator) SendOffAllSpeakers(ctx context.Context) error {
	return o.coord.SendOffAllSpeakers(ctx)
}

func (o *Orchestrator) ExitSpeechState(ctx context.Context) error {
	return o.coord.ExitSpeechState(ctx)
}

// PendingApplications lists applicants waiting for this host.
func (o *Orchestrator) PendingApplications() []string {
	return o.coord.PendingApplications()
}

func (o *Orchestrator) PendingInvitations() []string {
	return o.coord.PendingInvitations()
}
