package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/noah-isme/erolls-portal/pkg/response"
)

const limiterIdleTTL = 10 * time.Minute

type actorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ActionLimiter throttles mutating workflow calls per actor.
type ActionLimiter struct {
	mu     sync.Mutex
	actors map[string]*actorLimiter
	rps    rate.Limit
	burst  int
	now    func() time.Time
}

// NewActionLimiter builds a limiter allowing rps actions per second with the
// given burst for each actor.
func NewActionLimiter(rps float64, burst int) *ActionLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &ActionLimiter{actors: make(map[string]*actorLimiter), rps: rate.Limit(rps), burst: burst, now: time.Now}
}

// Allow reports whether the actor may act now.
func (l *ActionLimiter) Allow(key string) bool {
	l.mu.Lock()
	entry, ok := l.actors[key]
	if !ok {
		entry = &actorLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.actors[key] = entry
	}
	entry.lastSeen = l.now()
	l.mu.Unlock()
	return entry.limiter.Allow()
}

// Sweep drops limiters idle for longer than the idle TTL.
func (l *ActionLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-limiterIdleTTL)
	removed := 0
	for key, entry := range l.actors {
		if entry.lastSeen.Before(cutoff) {
			delete(l.actors, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle limiters until ctx is done.
func (l *ActionLimiter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Middleware keys the limiter by actor id, falling back to client IP.
func (l *ActionLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if claims := ClaimsFromContext(c); claims != nil {
			if id := claims.Actor().ID; id != "" {
				key = "actor:" + id
			}
		}
		if !l.Allow(key) {
			response.TooManyRequests(c, time.Second, "too many workflow actions, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
