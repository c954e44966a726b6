package proofServer

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type trackedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter is a per-client-IP token bucket. Idle buckets are dropped on access.
type clientLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*trackedLimiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*trackedLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (cl *clientLimiter) allow(client string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) > limiterIdleTTL {
		for k, l := range cl.limiters {
			if now.Sub(l.lastSeen) > limiterIdleTTL {
				delete(cl.limiters, k)
			}
		}
		cl.lastSweep = now
	}

	l, ok := cl.limiters[client]
	if !ok {
		l = &trackedLimiter{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.limiters[client] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

func (cl *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cl.allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
