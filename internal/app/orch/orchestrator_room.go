package orch

import (
	"context"

	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/app/lifecycle"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) Login(ctx context.Context, appID uint32, userID, credential string) error {
	return o.auth.Login(ctx, appID, userID, credential)
}

// Logout leaves the current room first.
func (o *Orchestrator) Logout(ctx context.Context) error {
	if o.state.Room().Active() {
		if err := o.rooms.ExitRoom(ctx); err != nil {
			log.Warn().Str("module", "app.orch").Err(err).Msg("exit room before logout")
		}
	}
	return o.auth.Logout(ctx)
}

// SetRoomConfig stages config for the next CreateRoom. Inside a room it is
// a host-only control config change.
func (o *Orchestrator) SetRoomConfig(ctx context.Context, patch domain.RoomConfigPatch) error {
	if o.state.Room().Active() {
		return o.coord.SetControlConfig(ctx, patch)
	}
	o.state.SetRoom(func(r *domain.RoomInfo) { r.RoomConfig = r.RoomConfig.Apply(patch) })
	return nil
}

func (o *Orchestrator) CheckRoomExistence(ctx context.Context, roomID domain.RoomID) (bool, error) {
	return o.rooms.CheckRoomExistence(ctx, roomID)
}

func (o *Orchestrator) CreateRoom(ctx context.Context, roomID domain.RoomID, mode domain.SpeechMode) error {
	return o.rooms.CreateRoom(ctx, roomID, mode)
}

func (o *Orchestrator) EnterRoom(ctx context.Context, roomID domain.RoomID) error {
	return o.rooms.EnterRoom(ctx, roomID)
}

func (o *Orchestrator) ExitRoom(ctx context.Context) error {
	return o.rooms.ExitRoom(ctx)
}

func (o *Orchestrator) DestroyRoom(ctx context.Context) error {
	return o.rooms.DestroyRoom(ctx)
}

func (o *Orchestrator) TransferRoomMaster(ctx context.Context, userID string) error {
	return o.rooms.TransferRoomMaster(ctx, userID)
}

func (o *Orchestrator) Phase() lifecycle.Phase {
	return o.rooms.Phase()
}

func (o *Orchestrator) RoomInfo() domain.RoomInfo {
	return o.state.Room()
}

// RoomUsers returns the local user first, then the remote roster.
func (o *Orchestrator) RoomUsers() []domain.RoomUser {
	room, local := o.state.Snapshot()
	remote := o.state.Users()
	out := make([]domain.RoomUser, 0, len(remote)+1)
	if room.Active() {
		out = append(out, local)
	}
	return append(out, remote...)
}

func (o *Orchestrator) UserInfo(userID string) (domain.RoomUser, error) {
	if local := o.state.Local(); local.UserID == userID && userID != "" {
		return local, nil
	}
	if u, ok := o.state.User(userID); ok {
		return u, nil
	}
	return domain.RoomUser{}, domain.ErrInvalidUserID
}

// SetSelfProfile changes the local display meta without publishing it.
func (o *Orchestrator) SetSelfProfile(name, avatar string) domain.RoomUser {
	return o.state.SetLocal(func(u *domain.RoomUser) {
		u.Name = name
		u.Avatar = avatar
	})
}

// UpdateMyProfile publishes the local display meta to other members.
func (o *Orchestrator) UpdateMyProfile(ctx context.Context, name, avatar string) error {
	if err := o.auth.Check(); err != nil {
		return err
	}
	local := o.state.Local()
	if err := o.im.UpdateProfile(ctx, domain.Profile{UserID: local.UserID, Nick: name, Avatar: avatar}); err != nil {
		return domain.Transport("update profile", err)
	}
	local = o.SetSelfProfile(name, avatar)
	if o.state.Room().Active() {
		o.events.Emit(events.UserStateChangedEvent{User: local})
	}
	return nil
}
