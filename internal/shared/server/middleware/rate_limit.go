package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/metrics"
	"agrirevive-backend/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	// buckets untouched this long are full again and can be forgotten
	bucketIdleTTL = 10 * time.Minute
	sweepEvery    = 1024
)

// RateLimitRule is a token bucket refilled at Rate tokens per second.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig wires RateLimit. GroupFor picks the bucket group per
// request; unmatched requests use DefaultGroup.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter keeps one bucket per principal and group.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
	calls   int
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter creates an empty limiter. now defaults to time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// GroupByRoute maps "METHOD route" pairs to limiter groups.
func GroupByRoute(routes map[string]string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return routes[c.Request.Method+" "+c.FullPath()]
	}
}

// RateLimit throttles requests per principal and group. Signed-in users are
// keyed by user id. Guests are keyed by client IP because X-Guest-Id is
// chosen by the caller.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}

		allowed, retryAfter := cfg.Limiter.Allow(principal(c)+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		metrics.IncRateLimited()
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := max(int(math.Ceil(float64(retryAfterMs)/1000.0)), 1)
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down.", gin.H{
			"group":        group,
			"retryAfterMs": retryAfterMs,
		})
	}
}

func principal(c *gin.Context) string {
	if !IsGuest(c) {
		if id := strings.TrimSpace(UserIDFromContext(c)); id != "" {
			return "user:" + id
		}
	}
	return "ip:" + strings.TrimSpace(c.ClientIP())
}

// Allow takes one token from key's bucket. When the bucket is empty it
// reports how long until a token is available.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweepLocked(now)
	}

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = bucket
	}
	if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	if bucket.tokens >= 1 {
		bucket.tokens--
		return true, 0
	}
	waitSec := math.Max(0, (1-bucket.tokens)/rule.Rate)
	return false, time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
}

// Len reports how many buckets are tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Sweep drops buckets idle for longer than the idle TTL.
func (l *RateLimiter) Sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(now)
}

func (l *RateLimiter) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
}
