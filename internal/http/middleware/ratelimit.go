package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused bucket lives and how often buckets are swept.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket keyed by client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time

	// OnLimited is called for every rejected request, e.g. to count it.
	OnLimited func(c *fiber.Ctx)
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		rps:       rate.Limit(rps),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Allow reports whether key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Handler keys buckets on c.IP(), so the app must set ProxyHeader when it runs behind a proxy.
// It rejects requests over the limit with 429 and a JSON {error} body.
func (l *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.Allow(c.IP()) {
			return c.Next()
		}
		if l.OnLimited != nil {
			l.OnLimited(c)
		}
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
	}
}
