package httpapi

import (
	"net"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// maxClients bounds the limiter map; it is reset when exceeded.
const maxClients = 4096

// ClientLimiter rate-limits per remote IP.
type ClientLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (cl *ClientLimiter) limiterFor(host string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if lim, ok := cl.m[host]; ok {
		return lim
	}
	if len(cl.m) >= maxClients {
		cl.m = make(map[string]*rate.Limiter)
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[host] = lim
	return lim
}

// Allow reports whether the client behind remoteAddr may make a request now.
func (cl *ClientLimiter) Allow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return cl.limiterFor(host).Allow()
}

// RateLimit answers 429 once a client exceeds its budget. A non-positive
// rate disables limiting.
func RateLimit(reqPerSec float64, burst int) Middleware {
	if reqPerSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	cl := NewClientLimiter(reqPerSec, max(burst, 1))
	retry := strconv.Itoa(max(1, int(1/reqPerSec)))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cl.Allow(r.RemoteAddr) {
				w.Header().Set("Retry-After", retry)
				WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
