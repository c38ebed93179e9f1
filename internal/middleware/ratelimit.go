package middleware

import (
	"anre_quiz_backend/internal/config"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// FailedAuthLimiter throttles repeated failed login/register submissions per
// client IP. Only failures count: a successful authentication resets the
// window. State lives in redis so the limit holds across instances.
type FailedAuthLimiter struct {
	Redis *redis.Client

	mu          sync.RWMutex
	maxAttempts int
	window      time.Duration
}

func NewFailedAuthLimiter(rdb *redis.Client, cfg *config.AuthLimitConfig) *FailedAuthLimiter {
	return &FailedAuthLimiter{
		Redis:       rdb,
		maxAttempts: cfg.MaxAttempts,
		window:      time.Duration(cfg.WindowSeconds) * time.Second,
	}
}

// UpdateLimits applies reloaded config. Registered as a config callback.
func (l *FailedAuthLimiter) UpdateLimits(cfg *config.AuthLimitConfig) {
	l.mu.Lock()
	l.maxAttempts = cfg.MaxAttempts
	l.window = time.Duration(cfg.WindowSeconds) * time.Second
	l.mu.Unlock()
}

func (l *FailedAuthLimiter) key(clientIP string) string {
	return "auth_rl:" + clientIP
}

// Check reports whether the client is currently blocked and for how long.
// Limiter errors fail open: an unreachable redis must not lock users out.
func (l *FailedAuthLimiter) Check(ctx context.Context, clientIP string) (time.Duration, bool) {
	l.mu.RLock()
	maxAttempts := l.maxAttempts
	l.mu.RUnlock()

	count, err := l.Redis.Get(ctx, l.key(clientIP)).Int()
	if err != nil || count < maxAttempts {
		return 0, false
	}

	ttl, err := l.Redis.TTL(ctx, l.key(clientIP)).Result()
	if err != nil || ttl < 0 {
		return 0, false
	}
	return ttl, true
}

// RecordFailure counts one failed attempt. The window starts at the first
// failure and is not extended by later ones.
func (l *FailedAuthLimiter) RecordFailure(ctx context.Context, clientIP string) {
	l.mu.RLock()
	window := l.window
	l.mu.RUnlock()

	count, err := l.Redis.Incr(ctx, l.key(clientIP)).Result()
	if err != nil {
		return
	}
	if count == 1 {
		l.Redis.Expire(ctx, l.key(clientIP), window)
	}
}

// Reset clears the counter after a successful authentication.
func (l *FailedAuthLimiter) Reset(ctx context.Context, clientIP string) {
	l.Redis.Del(ctx, l.key(clientIP))
}

// RetryMessage is the user-visible throttle message.
func RetryMessage(retryAfter time.Duration) string {
	return fmt.Sprintf("Prea multe încercări eșuate. Te rugăm să încerci din nou în %d secunde.", int(retryAfter.Seconds()))
}
