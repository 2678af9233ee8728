package ratelimit

import (
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/Apurer/go-gin-order-tracker/internal/shared/errors"
)

// maxTrackedClients bounds the limiter map; it is reset once exceeded.
const maxTrackedClients = 10000

// Limiter keeps one token bucket per client IP.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	logger   *slog.Logger
}

// New creates a limiter allowing rps requests per second with the given burst per client.
func New(rps float64, burst int, logger *slog.Logger) *Limiter {
	if burst < 1 {
		burst = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		logger:   logger,
	}
}

func (l *Limiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxTrackedClients {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !l.limiterFor(key).Allow() {
			l.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "rate limit exceeded",
				slog.String("client", key),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path))
			apierrors.Respond(c, apierrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
