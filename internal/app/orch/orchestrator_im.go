package orch

import (
	"context"

	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) chatGuard() error {
	if err := o.auth.Check(); err != nil {
		return err
	}
	room, local := o.state.Snapshot()
	if !room.Active() {
		return domain.ErrRoomNotEntered
	}
	if room.RoomConfig.IsChatRoomMuted && !local.Role.CanControl() {
		return domain.ErrChatRoomMuted
	}
	return nil
}

func (o *Orchestrator) SendChatMessage(ctx context.Context, text string) error {
	if err := o.chatGuard(); err != nil {
		return err
	}
	if err := o.im.SendChatMessage(ctx, text); err != nil {
		return domain.Transport("send chat message", err)
	}
	return nil
}

func (o *Orchestrator) SendCustomMessage(ctx context.Context, msgType, data string) error {
	if err := o.chatGuard(); err != nil {
		return err
	}
	if err := o.im.SendCustomMessage(ctx, msgType, data); err != nil {
		return domain.Transport("send custom message", err)
	}
	return nil
}

func (o *Orchestrator) onMessagingEvent(ev core.MessagingEvent) {
	room := o.state.Room()
	switch e := ev.(type) {
	case core.ChatMessageReceived:
		if room.Active() {
			o.events.Emit(events.ChatMessageReceivedEvent{Messages: e.Messages})
		}
	case core.CustomMessageReceived:
		if room.Active() {
			o.events.Emit(events.CustomMessageReceivedEvent{From: e.From, Type: e.Type, Data: e.Data})
		}
	case core.ControlMessageReceived:
		o.coord.HandleControl(e.From, e.Payload)
	case core.GroupDismissed:
		if !room.Active() || e.GroupID != room.RoomID.GroupID() {
			log.Debug().Str("module", "app.orch").Str("group", e.GroupID).Msg("dismiss for another group")
			return
		}
		o.rooms.HandleRoomDestroyed(o.ctx)
	case core.GroupOwnerChanged:
		if room.Active() && e.GroupID == room.RoomID.GroupID() {
			o.rooms.HandleOwnerChanged(e.OwnerID)
		}
	default:
		log.Warn().Str("module", "app.orch").Msgf("unhandled messaging event %T", ev)
	}
}
