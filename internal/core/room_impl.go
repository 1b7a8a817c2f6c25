package core

import (
	"sort"
	"sync"

	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomState is a threadsafe in-memory room slot.
type roomState struct {
	mu     sync.RWMutex
	room   domain.RoomInfo
	local  domain.RoomUser
	byUser map[string]*domain.RoomUser
}

func NewRoomState() RoomState {
	return &roomState{
		room:   domain.EmptyRoomInfo(),
		local:  domain.NewRoomUser(""),
		byUser: make(map[string]*domain.RoomUser),
	}
}

func (s *roomState) Room() domain.RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room
}

func (s *roomState) SetRoom(fn func(r *domain.RoomInfo)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.room)
}

func (s *roomState) Local() domain.RoomUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.local
}

func (s *roomState) SetLocal(fn func(u *domain.RoomUser)) domain.RoomUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.local)
	return s.local
}

func (s *roomState) User(userID string) (domain.RoomUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byUser[userID]
	if !ok {
		return domain.RoomUser{}, false
	}
	return *u, true
}

func (s *roomState) Users() []domain.RoomUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RoomUser, 0, len(s.byUser))
	for _, u := range s.byUser {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (s *roomState) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}

func (s *roomState) UpsertUser(userID string, fn func(u *domain.RoomUser)) (domain.RoomUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byUser[userID]
	if !ok {
		nu := domain.NewRoomUser(userID)
		u = &nu
		s.byUser[userID] = u
		log.Debug().Str("module", "core.room").Str("user", userID).Msg("user added")
	}
	if fn != nil {
		fn(u)
	}
	u.UserID = userID
	return *u, !ok
}

func (s *roomState) UpdateUser(userID string, fn func(u *domain.RoomUser)) (domain.RoomUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byUser[userID]
	if !ok {
		return domain.RoomUser{}, false
	}
	fn(u)
	u.UserID = userID
	return *u, true
}

func (s *roomState) RemoveUser(userID string) (domain.RoomUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byUser[userID]
	if !ok {
		return domain.RoomUser{}, false
	}
	delete(s.byUser, userID)
	log.Debug().Str("module", "core.room").Str("user", userID).Msg("user removed")
	return *u, true
}

func (s *roomState) Snapshot() (domain.RoomInfo, domain.RoomUser) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room, s.local
}

func (s *roomState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = domain.EmptyRoomInfo()
	id, name, avatar := s.local.UserID, s.local.Name, s.local.Avatar
	s.local = domain.NewRoomUser(id)
	s.local.Name, s.local.Avatar = name, avatar
	s.byUser = make(map[string]*domain.RoomUser)
	log.Info().Str("module", "core.room").Str("user", id).Msg("room state reset")
}
