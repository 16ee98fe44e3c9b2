package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"loan-offers/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RateLimiterMiddleware struct {
	limiter Limiter
	cfg     config.RateLimitConfig
	logger  *slog.Logger
}

// NewRateLimiterMiddleware keeps one token bucket per client IP in memory.
func NewRateLimiterMiddleware(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiterMiddleware {
	ml := newMemoryLimiter(cfg)
	go ml.cleanup(ctx, 10*time.Minute)
	return newRateLimiterMiddleware(ml, cfg, logger)
}

// NewRedisRateLimiterMiddleware counts requests per IP in one-second windows
// shared by every replica through Redis.
func NewRedisRateLimiterMiddleware(client redis.Cmdable, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiterMiddleware {
	return newRateLimiterMiddleware(NewRedisLimiter(client, cfg), cfg, logger)
}

func newRateLimiterMiddleware(l Limiter, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiterMiddleware {
	logger = logger.With("component", "RateLimiter")
	if cfg.Enabled {
		logger.Info("Rate limiter configured", "rps", cfg.RPS, "burst", cfg.Burst, "limiter", fmt.Sprintf("%T", l))
	}
	return &RateLimiterMiddleware{limiter: l, cfg: cfg, logger: logger}
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		allowed, err := rl.limiter.Allow(r.Context(), ip)
		if err != nil {
			rl.logger.ErrorContext(r.Context(), "Rate limit check failed, allowing request", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractIP keys clients by RemoteAddr only. Forwarding headers are trusted
// solely through chi's RealIP, which runs earlier in the stack.
func extractIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type memoryLimiter struct {
	limiters sync.Map
	limit    rate.Limit
	burst    int
}

func newMemoryLimiter(cfg config.RateLimitConfig) *memoryLimiter {
	return &memoryLimiter{limit: rate.Limit(cfg.RPS), burst: cfg.Burst}
}

func (m *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	limiter, _ := m.limiters.LoadOrStore(key, rate.NewLimiter(m.limit, m.burst))
	return limiter.(*rate.Limiter).Allow(), nil
}

// sweep drops limiters whose bucket has refilled, since those clients are idle.
func (m *memoryLimiter) sweep(now time.Time) {
	m.limiters.Range(func(key, value interface{}) bool {
		if value.(*rate.Limiter).TokensAt(now) >= float64(m.burst) {
			m.limiters.Delete(key)
		}
		return true
	})
}

func (m *memoryLimiter) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

type RedisLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter allows burst requests per second, or the rounded-up RPS
// when burst is unset.
func NewRedisLimiter(client redis.Cmdable, cfg config.RateLimitConfig) *RedisLimiter {
	limit := int64(cfg.Burst)
	if limit <= 0 {
		limit = int64(math.Ceil(cfg.RPS))
	}
	return &RedisLimiter{client: client, limit: limit, window: time.Second, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := "ratelimit:" + key + ":" + strconv.FormatInt(l.now().Unix(), 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, 2*l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}
