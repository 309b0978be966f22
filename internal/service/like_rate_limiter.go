package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LikeRateLimiter limita cuantos likes puede dar un usuario por ventana.
type LikeRateLimiter interface {
	Allow(ctx context.Context, userID string) bool
}

type memoryLikeRateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewLikeRateLimiter crea un rate limiter en memoria de ventana deslizante.
func NewLikeRateLimiter(window time.Duration, max int) LikeRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryLikeRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *memoryLikeRateLimiter) Allow(_ context.Context, userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}
	kept := pruneBefore(l.hits[userID], cutoff)
	if len(kept) >= l.max {
		l.hits[userID] = kept
		return false
	}
	l.hits[userID] = append(kept, now)
	return true
}

// sweep borra usuarios sin likes dentro de la ventana.
func (l *memoryLikeRateLimiter) sweep(cutoff time.Time) {
	for userID, entries := range l.hits {
		if kept := pruneBefore(entries, cutoff); len(kept) == 0 {
			delete(l.hits, userID)
		} else {
			l.hits[userID] = kept
		}
	}
}

func pruneBefore(entries []time.Time, cutoff time.Time) []time.Time {
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

// INCR + EXPIRE atomico: la ventana arranca con el primer like.
const redisLikeAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisLikeRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisLikeRateLimiter comparte el contador entre replicas. Si Redis falla deja pasar.
func NewRedisLikeRateLimiter(client *redis.Client, window time.Duration, max int) LikeRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLikeRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "likes:rl:",
	}
}

func (l *redisLikeRateLimiter) Allow(ctx context.Context, userID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisLikeAllowScript, []string{l.prefix + userID}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
