package rate_limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/smart-inventory/internal/metrics"
)

const (
	maxVisitors = 1000
	visitorTTL  = 5 * time.Minute
)

// Limiter hands out one token bucket per client IP. Idle visitors expire
// from the LRU after visitorTTL.
type Limiter struct {
	mu       sync.Mutex
	visitors *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func New(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{
		visitors: expirable.NewLRU[string, *rate.Limiter](maxVisitors, nil, visitorTTL),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (l *Limiter) GetVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.visitors.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.visitors.Add(ip, limiter)
	}
	return limiter
}

// CleanupAllVisitors forgets every tracked client.
func (l *Limiter) CleanupAllVisitors() {
	l.visitors.Purge()
}

// Middleware rejects clients that exceed their bucket with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.GetVisitor(clientIP(r)).Allow() {
			metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", "1")
			handlers.WriteError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
