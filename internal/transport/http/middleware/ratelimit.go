package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "raluma-api/internal/transport/http/response"
)

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiters drops buckets idle for longer than idle. A bucket that idle has
// refilled, so a fresh one behaves the same.
type ipLimiters struct {
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newIPLimiters(rps rate.Limit, burst int) *ipLimiters {
	idle := time.Minute
	if rps > 0 {
		if refill := time.Duration(float64(burst) / float64(rps) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &ipLimiters{rps: rps, burst: burst, idle: idle, now: time.Now, visitors: make(map[string]*visitor)}
}

func (l *ipLimiters) allow(ip string) bool {
	now := l.now()
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idle {
		for k, v := range l.visitors {
			if now.Sub(v.seen) >= l.idle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.seen = now
	l.mu.Unlock()
	return v.lim.AllowN(now, 1)
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimitPerIP keeps a bucket per client address.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	return rateLimitPerIP(newIPLimiters(rps, burst))
}

func rateLimitPerIP(l *ipLimiters) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.allow(c.ClientIP()) {
			c.Next()
			return
		}
		tooMany(c)
	}
}

func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.Error(resp.CodeTooManyRequests, "too many requests"))
}
