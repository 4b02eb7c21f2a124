package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter hands out one token bucket per client address.
type clientLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*visitor
	now     func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*visitor),
		now:     time.Now,
	}
}

func (l *clientLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.clients[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter.AllowN(v.lastSeen, 1)
}

// sweep forgets clients idle for longer than maxIdle and reports how many
// remain.
func (l *clientLimiter) sweep(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-maxIdle)
	for k, v := range l.clients {
		if v.lastSeen.Before(cutoff) {
			delete(l.clients, k)
		}
	}
	return len(l.clients)
}

// retryAfter is the whole number of seconds until one token refills.
func (l *clientLimiter) retryAfter() int {
	secs := int(1/float64(l.rps) + 0.999)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := clientKey(r); !s.limiter.allow(key) {
			s.metrics.Increment("rate_limited")
			s.log.Warn("rate limited", "client", key, "total", s.metrics.Counter("rate_limited"))
			w.Header().Set("Retry-After", strconv.Itoa(s.limiter.retryAfter()))
			s.writeError(w, http.StatusTooManyRequests, "rate_limit", "Rate limit exceeded - please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
