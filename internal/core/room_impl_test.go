package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomkit/internal/domain"
)

func TestRoomStateCopies(t *testing.T) {
	s := NewRoomState()
	s.UpsertUser("bob", func(u *domain.RoomUser) { u.Name = "Bob" })

	u, ok := s.User("bob")
	require.True(t, ok)
	u.Name = "Mallory"

	u, _ = s.User("bob")
	assert.Equal(t, "Bob", u.Name)

	users := s.Users()
	users[0].Role = domain.RoleMaster
	u, _ = s.User("bob")
	assert.Equal(t, domain.RoleGuest, u.Role)
}

func TestRoomStateUpsert(t *testing.T) {
	s := NewRoomState()
	u, created := s.UpsertUser("bob", func(u *domain.RoomUser) { u.IsAudioStreamAvailable = true })
	assert.True(t, created)
	assert.True(t, u.IsAudioStreamAvailable)

	u, created = s.UpsertUser("bob", func(u *domain.RoomUser) {
		u.UserID = "renamed"
		u.IsVideoStreamAvailable = true
	})
	assert.False(t, created)
	assert.Equal(t, "bob", u.UserID)
	assert.True(t, u.IsAudioStreamAvailable)
	assert.True(t, u.IsVideoStreamAvailable)

	_, ok := s.UpdateUser("ghost", func(u *domain.RoomUser) { u.Name = "x" })
	assert.False(t, ok)
	assert.Equal(t, 1, s.UserCount())
}

func TestRoomStateUsersSorted(t *testing.T) {
	s := NewRoomState()
	for _, id := range []string{"carol", "alice", "bob"} {
		s.UpsertUser(id, nil)
	}
	var ids []string
	for _, u := range s.Users() {
		ids = append(ids, u.UserID)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, ids)

	_, ok := s.RemoveUser("bob")
	assert.True(t, ok)
	_, ok = s.RemoveUser("bob")
	assert.False(t, ok)
}

func TestRoomStateResetKeepsIdentity(t *testing.T) {
	s := NewRoomState()
	s.SetLocal(func(u *domain.RoomUser) {
		u.UserID = "alice"
		u.Name = "Alice"
		u.Avatar = "a.png"
		u.Role = domain.RoleMaster
		u.IsAudioStreamAvailable = true
	})
	s.SetRoom(func(r *domain.RoomInfo) { r.RoomID = 1001 })
	s.UpsertUser("bob", nil)

	s.Reset()

	room, local := s.Snapshot()
	assert.False(t, room.Active())
	assert.Equal(t, "alice", local.UserID)
	assert.Equal(t, "Alice", local.Name)
	assert.Equal(t, "a.png", local.Avatar)
	assert.Equal(t, domain.RoleGuest, local.Role)
	assert.False(t, local.IsAudioStreamAvailable)
	assert.Zero(t, s.UserCount())
}
