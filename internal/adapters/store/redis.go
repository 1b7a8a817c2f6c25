package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis keeps groups in rdb. A zero ttl keeps them until dismissed.
func NewRedis(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func groupKey(id string) string {
	return fmt.Sprintf("groups:%s", id)
}

func membersKey(id string) string {
	return fmt.Sprintf("groups:%s:members", id)
}

const profilesKey = "profiles"

func (s *redisStore) CreateGroup(ctx context.Context, g Group) error {
	members := g.Members
	g.Members = nil
	b, err := json.Marshal(g)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetArgs(ctx, groupKey(g.ID), b, redis.SetArgs{Mode: "NX", TTL: s.ttl}).Result()
	if errors.Is(err, redis.Nil) {
		return ErrGroupExists
	}
	if err != nil {
		return err
	}
	if ok != "OK" {
		return ErrGroupExists
	}
	if len(members) == 0 {
		return nil
	}
	pipe := s.rdb.TxPipeline()
	for _, m := range members {
		pipe.SAdd(ctx, membersKey(g.ID), m)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, membersKey(g.ID), s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisStore) meta(ctx context.Context, id string) (Group, error) {
	val, err := s.rdb.Get(ctx, groupKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Group{}, ErrGroupNotFound
	}
	if err != nil {
		return Group{}, err
	}
	var g Group
	if err := json.Unmarshal(val, &g); err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *redisStore) Group(ctx context.Context, id string) (Group, error) {
	g, err := s.meta(ctx, id)
	if err != nil {
		return g, err
	}
	g.Members, err = s.rdb.SMembers(ctx, membersKey(id)).Result()
	return g, err
}

func (s *redisStore) GroupExists(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, groupKey(id)).Result()
	return n > 0, err
}

func (s *redisStore) AddMember(ctx context.Context, id, userID string) (Group, error) {
	if _, err := s.meta(ctx, id); err != nil {
		return Group{}, err
	}
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, membersKey(id), userID)
	if s.ttl > 0 {
		pipe.Expire(ctx, membersKey(id), s.ttl)
		pipe.Expire(ctx, groupKey(id), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return Group{}, err
	}
	return s.Group(ctx, id)
}

func (s *redisStore) RemoveMember(ctx context.Context, id, userID string) error {
	if _, err := s.meta(ctx, id); err != nil {
		return err
	}
	n, err := s.rdb.SRem(ctx, membersKey(id), userID).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotMember
	}
	return nil
}

func (s *redisStore) SetOwner(ctx context.Context, id, ownerID string) error {
	return s.update(ctx, id, func(g *Group) { g.OwnerID = ownerID })
}

func (s *redisStore) SetAnnouncement(ctx context.Context, id, announcement string) error {
	return s.update(ctx, id, func(g *Group) { g.Announcement = announcement })
}

// update rewrites the meta key under WATCH so concurrent writers retry.
func (s *redisStore) update(ctx context.Context, id string, fn func(g *Group)) error {
	key := groupKey(id)
	return s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrGroupNotFound
		}
		if err != nil {
			return err
		}
		var g Group
		if err := json.Unmarshal(val, &g); err != nil {
			return err
		}
		fn(&g)
		b, err := json.Marshal(g)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, redis.KeepTTL)
			return nil
		})
		return err
	}, key)
}

func (s *redisStore) DeleteGroup(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, groupKey(id), membersKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (s *redisStore) SetProfile(ctx context.Context, p Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, profilesKey, p.UserID, b).Err()
}

func (s *redisStore) Profiles(ctx context.Context, userIDs []string) ([]Profile, error) {
	if len(userIDs) == 0 {
		return []Profile{}, nil
	}
	vals, err := s.rdb.HMGet(ctx, profilesKey, userIDs...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(userIDs))
	for i, v := range vals {
		p := Profile{UserID: userIDs[i]}
		if str, ok := v.(string); ok {
			if err := json.Unmarshal([]byte(str), &p); err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *redisStore) Close() error { return s.rdb.Close() }
