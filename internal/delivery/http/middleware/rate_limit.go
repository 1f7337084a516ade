package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"
	"mancarijo/pkg/logger"
	"mancarijo/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	KeyFunc   func(*gin.Context) string
	// FailClosed rejects requests while redis errors instead of counting
	// them in memory.
	FailClosed bool
}

// SignInRateLimitConfig limits sign-in and password-recovery attempts per
// client IP.
func SignInRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "mancarijo:rl:auth:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// hitCounter counts one attempt against key and reports the count within
// the current window and when that window ends.
type hitCounter interface {
	hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// INCR with the TTL set on the first hit; returns {count, ttl}.
var incrWithTTL = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`)

type redisCounter struct {
	client *goredis.Client
}

func (r redisCounter) hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	vals, err := incrWithTTL.Run(ctx, r.client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) < 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", vals)
	}
	return int(vals[0]), time.Now().Add(time.Duration(vals[1]) * time.Second), nil
}

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// memoryCounter is the fallback when redis is not configured. Expired
// windows are swept on access.
type memoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*memoryWindow
	lastSweep time.Time
	now       func() time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{windows: map[string]*memoryWindow{}, now: time.Now}
}

func (m *memoryCounter) hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > 5*time.Minute {
		for k, w := range m.windows {
			if now.After(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.lastSweep = now
	}

	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// RateLimitMiddleware counts attempts in redis when the shared client is
// up and in process memory otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	fallback := newMemoryCounter()

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		var counter hitCounter = fallback
		if client := redis.Client(); client != nil {
			counter = redisCounter{client: client}
		}

		count, resetAt, err := counter.hit(c.Request.Context(), key, config.Window)
		if err != nil {
			logger.Log.Warn("Rate limit check failed", "key", key, "error", err)
			if config.FailClosed {
				response.Abort(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
				return
			}
			count, resetAt, _ = fallback.hit(c.Request.Context(), key, config.Window)
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit exceeded",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString(string(domain.KeyRequestID)),
			)
			response.Abort(c, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
			return
		}

		c.Next()
	}
}
