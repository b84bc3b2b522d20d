package middleware

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
)

// limiterIdleTTL is how long an unused per-client bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// NewRateLimiter creates a per-client limiter allowing rps sustained
// requests per second with bursts of up to burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After hint.
// Operational endpoints under /-/ are exempt.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/-/") {
			c.Next()
			return
		}

		if rl.allow(c.ClientIP()) {
			c.Next()
			return
		}

		retry := time.Second
		if rl.rps > 0 {
			retry = max(time.Duration(float64(time.Second)/float64(rl.rps)), time.Second)
		}

		c.Header("Retry-After", strconv.Itoa(int(retry/time.Second)))
		dto.Abort(c, dto.ErrorCodeRateLimited, "too many requests")
	}
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	cl, ok := rl.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[client] = cl
	}

	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// sweep drops idle buckets at most once per TTL. Must be called with mu held.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < limiterIdleTTL {
		return
	}

	rl.lastSweep = now

	for ip, cl := range rl.clients {
		if now.Sub(cl.lastSeen) >= limiterIdleTTL {
			delete(rl.clients, ip)
		}
	}
}

// clientCount reports how many buckets are held.
func (rl *RateLimiter) clientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return len(rl.clients)
}
