package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds the per-client throttle settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns the settings used when none are
// configured.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// bucket is a token bucket refilled continuously at rate tokens/second,
// capped at burst.
type bucket struct {
	mu       sync.Mutex
	tokens   float64
	burst    float64
	rate     float64
	lastFill time.Time
}

func newBucket(rate float64, burst int) *bucket {
	return &bucket{
		tokens:   float64(burst),
		burst:    float64(burst),
		rate:     rate,
		lastFill: time.Now(),
	}
}

// take consumes one token. It reports whether the request may proceed, how
// many whole tokens remain, and the seconds to wait when denied.
func (b *bucket) take() (ok bool, remaining int, retryAfter int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = math.Min(b.burst, b.tokens+now.Sub(b.lastFill).Seconds()*b.rate)
	b.lastFill = now

	if b.tokens < 1 {
		if b.rate <= 0 {
			return false, 0, 1
		}
		return false, 0, int((1-b.tokens)/b.rate) + 1
	}
	b.tokens--
	return true, int(b.tokens), 0
}

// limiter keeps one bucket per client IP.
type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     RateLimitConfig
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
	}
}

func (l *limiter) bucketFor(ip string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[ip]
	if !ok {
		b = newBucket(l.cfg.RequestsPerSecond, l.cfg.BurstSize)
		l.buckets[ip] = b
	}
	return b
}

// RateLimit throttles clients by IP. Throttled requests get a 429 with a
// Retry-After hint and the same error body shape the rest of the API uses.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	l := newLimiter(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limitHeader)

			ok, remaining, retryAfter := l.bucketFor(c.RealIP()).take()
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"erro": "limite de requisições excedido"})
			}
			return next(c)
		}
	}
}
