package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newcourse/newcourse/backend/course-service/pkg/logger"
	"github.com/newcourse/newcourse/backend/course-service/pkg/metrics"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Name labels the limiter in metrics.
	Name() string
	// RetryAfter is the hint sent with 429 responses.
	RetryAfter() time.Duration
}

// MemoryLimiter is a per-key token bucket kept in process memory.
type MemoryLimiter struct {
	rps   float64
	burst int
	store sync.Map // map[string]*rate.Limiter
}

// NewMemoryLimiter allows rps events per second with the given burst, per key.
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	return &MemoryLimiter{rps: rps, burst: burst}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	v, ok := m.store.Load(key)
	if !ok {
		v, _ = m.store.LoadOrStore(key, rate.NewLimiter(rate.Limit(m.rps), m.burst))
	}
	return v.(*rate.Limiter).Allow(), nil
}

func (m *MemoryLimiter) Name() string              { return "memory" }
func (m *MemoryLimiter) RetryAfter() time.Duration { return time.Second }

// RateLimitMiddleware rejects requests over the limit with 429. Requests are
// keyed by client IP. Limiter errors fail closed with 500.
func RateLimitMiddleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		ok, err := l.Allow(c.Request.Context(), "ip:"+ip)
		if err != nil {
			logger.Errorf("rate limit check failed (%s): %v", l.Name(), err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			return
		}
		if !ok {
			c.Header("Retry-After", fmt.Sprintf("%d", int(l.RetryAfter().Seconds())))
			metrics.RateLimitRejected.WithLabelValues(l.Name()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(l.Name()).Inc()
		c.Next()
	}
}
