package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"moviedex/internal/conf"
	"moviedex/internal/metrics"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"golang.org/x/time/rate"
)

const (
	sweepInterval = time.Minute
	idleClient    = 3 * time.Minute
)

// RateLimiter is a token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(c conf.RateLimit) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(c.RPS),
		burst:   c.Burst,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Filter rejects requests over the limit with 429.
func (l *RateLimiter) Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			metrics.RateLimited.Inc()
			khttp.DefaultErrorEncoder(w, r, errors.New(http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > idleClient {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
