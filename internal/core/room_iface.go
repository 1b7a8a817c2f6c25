package core

import "github.com/dkeye/roomkit/internal/domain"

// RoomState is the single-room slot: room meta, the local user and the
// remote roster. It never touches transport resources. Every getter returns
// a copy.
type RoomState interface {
	Room() domain.RoomInfo
	SetRoom(fn func(r *domain.RoomInfo))

	Local() domain.RoomUser
	SetLocal(fn func(u *domain.RoomUser)) domain.RoomUser

	User(userID string) (domain.RoomUser, bool)
	Users() []domain.RoomUser
	UserCount() int
	// UpsertUser applies fn to the roster entry for userID, creating it when
	// absent. created reports whether the entry was new.
	UpsertUser(userID string, fn func(u *domain.RoomUser)) (u domain.RoomUser, created bool)
	// UpdateUser applies fn only when the entry exists.
	UpdateUser(userID string, fn func(u *domain.RoomUser)) (domain.RoomUser, bool)
	RemoveUser(userID string) (domain.RoomUser, bool)

	// Snapshot returns room and local user read under one lock.
	Snapshot() (domain.RoomInfo, domain.RoomUser)
	// Reset clears room and roster; the local identity survives.
	Reset()
}
