package signal

import (
	"sync"
	"time"
)

// RoomRateLimiter is a sliding window limiter keyed by user id.
type RoomRateLimiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
	now      func() time.Time
}

func NewRoomRateLimiter(limit int, interval time.Duration) *RoomRateLimiter {
	return &RoomRateLimiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

func (rl *RoomRateLimiter) Allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[userID]
	fresh := attempts[:0]
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[userID] = fresh
		return false
	}
	rl.history[userID] = append(fresh, now)
	return true
}

// Forget drops the window of a disconnected user.
func (rl *RoomRateLimiter) Forget(userID string) {
	rl.mu.Lock()
	delete(rl.history, userID)
	rl.mu.Unlock()
}
