package orch

import (
	"sync"
	"time"

	"github.com/dkeye/Sidebar/internal/core"
	"golang.org/x/time/rate"
)

// RoomRateLimiter is a token bucket per session: limit creations per interval,
// with a burst of limit.
type RoomRateLimiter struct {
	mu       sync.Mutex
	limiters map[core.SessionID]*rate.Limiter
	every    rate.Limit
	burst    int
}

func NewRoomRateLimiter(limit int, interval time.Duration) *RoomRateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RoomRateLimiter{
		limiters: make(map[core.SessionID]*rate.Limiter),
		every:    rate.Every(interval / time.Duration(limit)),
		burst:    limit,
	}
}

func (rl *RoomRateLimiter) Allow(sid core.SessionID) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[sid]
	if !ok {
		l = rate.NewLimiter(rl.every, rl.burst)
		rl.limiters[sid] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}
