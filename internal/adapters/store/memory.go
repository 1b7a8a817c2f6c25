package store

import (
	"context"
	"slices"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	groups   map[string]*Group
	profiles map[string]Profile
}

func NewMemory() Store {
	return &memoryStore{
		groups:   make(map[string]*Group),
		profiles: make(map[string]Profile),
	}
}

func (s *memoryStore) CreateGroup(_ context.Context, g Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[g.ID]; ok {
		return ErrGroupExists
	}
	g.Members = slices.Clone(g.Members)
	s.groups[g.ID] = &g
	return nil
}

func (s *memoryStore) Group(_ context.Context, id string) (Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return Group{}, ErrGroupNotFound
	}
	out := *g
	out.Members = slices.Clone(g.Members)
	return out, nil
}

func (s *memoryStore) GroupExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[id]
	return ok, nil
}

func (s *memoryStore) AddMember(ctx context.Context, id, userID string) (Group, error) {
	s.mu.Lock()
	g, ok := s.groups[id]
	if !ok {
		s.mu.Unlock()
		return Group{}, ErrGroupNotFound
	}
	if !slices.Contains(g.Members, userID) {
		g.Members = append(g.Members, userID)
	}
	s.mu.Unlock()
	return s.Group(ctx, id)
}

func (s *memoryStore) RemoveMember(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return ErrGroupNotFound
	}
	i := slices.Index(g.Members, userID)
	if i < 0 {
		return ErrNotMember
	}
	g.Members = slices.Delete(g.Members, i, i+1)
	return nil
}

func (s *memoryStore) SetOwner(_ context.Context, id, ownerID string) error {
	return s.update(id, func(g *Group) { g.OwnerID = ownerID })
}

func (s *memoryStore) SetAnnouncement(_ context.Context, id, announcement string) error {
	return s.update(id, func(g *Group) { g.Announcement = announcement })
}

func (s *memoryStore) update(id string, fn func(g *Group)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return ErrGroupNotFound
	}
	fn(g)
	return nil
}

func (s *memoryStore) DeleteGroup(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(s.groups, id)
	return nil
}

func (s *memoryStore) SetProfile(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
	return nil
}

// Profiles returns a profile for every requested user, empty for unknown ones.
func (s *memoryStore) Profiles(_ context.Context, userIDs []string) ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Profile, 0, len(userIDs))
	for _, id := range userIDs {
		p, ok := s.profiles[id]
		if !ok {
			p = Profile{UserID: id}
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *memoryStore) Close() error { return nil }
