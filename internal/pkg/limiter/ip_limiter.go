/*
Package limiter provides per-client-IP request rate limiting.

It keeps one token bucket (rate.Limiter) per client IP address and runs a cleanup
goroutine that periodically drops the buckets of idle clients.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/logx"
	"nutrigen/internal/pkg/resp"

	"golang.org/x/time/rate"
)

const cleanupInterval = 3 * time.Minute

// IPRateLimiter implements a concurrency-safe rate limiter keyed by client IP address.
type IPRateLimiter struct {
	// mu is used to protect concurrent access to the limits map.
	mu *sync.RWMutex

	// limits stores the map from client IP address to the *rate.Limiter instance.
	limits map[string]*rate.Limiter

	// r is the number of events allowed per second.
	r rate.Limit

	// b is the burst size (token bucket size).
	b int

	// rejected writes the response for a request over the limit.
	rejected http.HandlerFunc

	logger zerolog.Logger
}

// NewIPRateLimiter creates and returns a new IPRateLimiter instance.
// Requests over the limit get the JSON ErrRateLimitExceeded envelope; use WithRejectHandler
// to answer differently. A background goroutine periodically removes idle limiters.
func NewIPRateLimiter(name string, r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		mu:     &sync.RWMutex{},
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
		rejected: func(w http.ResponseWriter, r *http.Request) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
		},
		logger: logx.Component("limiter").With().Str("limiter", name).Logger(),
	}

	go i.cleanUpVisitors()

	return i
}

// WithRejectHandler replaces the response written when a client exceeds the limit.
func (i *IPRateLimiter) WithRejectHandler(h http.HandlerFunc) *IPRateLimiter {
	i.rejected = h
	return i
}

// GetLimiter retrieves the rate limiter corresponding to the given IP address,
// creating it on first use. Creation uses double-checked locking.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if !exists {
		i.mu.Lock()
		limiter, exists = i.limits[ip]
		if !exists {
			limiter = rate.NewLimiter(i.r, i.b)
			i.limits[ip] = limiter
		}
		i.mu.Unlock()
	}

	return limiter
}

// cleanUpVisitors periodically removes limiters whose token bucket is full again,
// i.e. clients that have been idle long enough to be indistinguishable from new ones.
func (i *IPRateLimiter) cleanUpVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		count := 0
		for ip, limiter := range i.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(i.limits, ip)
				count++
			}
		}
		active := len(i.limits)
		i.mu.Unlock()

		i.logger.Debug().Int("removed", count).Int("active", active).Msg("Rate limiter cleanup finished")
	}
}

// Middleware returns an HTTP middleware that performs rate limiting checks on incoming requests.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !i.GetLimiter(ip).Allow() {
			logx.Ctx(r.Context()).Warn().Str("limiter_path", r.URL.Path).Msg("Rate limit exceeded")
			i.rejected(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
