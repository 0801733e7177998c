package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/dfs-optimizer/pkg/utils"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token-bucket limiter per client IP, replacing the
// teacher's hand-rolled SMSRateLimiter with the ecosystem limiter already in
// its own go.mod.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = lim
	}
	return lim
}

// RateLimit caps requests per client IP on solver-bound routes (the MILP
// solve is the system's one unbounded suspension point, §5) so a burst of
// regenerate clicks can't queue unboundedly behind the solver.
func RateLimit(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(requestsPerSecond, burst)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			utils.SendError(c, http.StatusTooManyRequests, utils.NewAppError("RATE_LIMITED", "too many requests, slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}
