package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// SecurityHeadersMiddleware adds security headers to all responses.
// The surface is a JSON/text API, so the CSP denies everything.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		next.ServeHTTP(w, r)
	})
}

// RateLimiter implements a simple per-IP rate limiter using token bucket algorithm
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
	cleanup  time.Duration // cleanup interval for old entries
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a new rate limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		cleanup:  window * 2,
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.cleanup {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow checks if a request from the given IP is allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, exists := rl.visitors[ip]

	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1, // Use one token
			lastReset: now,
		}
		return true
	}

	if now.Sub(v.lastReset) >= rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = now
		return true
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}

	return false
}

// RateLimitConfig holds rate limiters for the different endpoint classes.
type RateLimitConfig struct {
	// ImportLimiter for the paste-import endpoint (parsing is the
	// heaviest thing the server does)
	ImportLimiter *RateLimiter
	// APILimiter for general API endpoints
	APILimiter *RateLimiter
	// GlobalLimiter for all other requests
	GlobalLimiter *RateLimiter
}

// NewDefaultRateLimitConfig creates rate limiters with sensible defaults
func NewDefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		ImportLimiter: NewRateLimiter(20, time.Minute),
		APILimiter:    NewRateLimiter(60, time.Minute),
		GlobalLimiter: NewRateLimiter(120, time.Minute),
	}
}

// RateLimitMiddleware creates a rate limiting middleware
func RateLimitMiddleware(config *RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			path := r.URL.Path

			var limiter *RateLimiter
			switch {
			case path == "/api/import":
				limiter = config.ImportLimiter
			case strings.HasPrefix(path, "/api/"):
				limiter = config.APILimiter
			default:
				limiter = config.GlobalLimiter
			}

			if !limiter.Allow(ip) {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize limits the size of request bodies. A shared record is a
// single pasted block, so 1 MB is generous.
const (
	MaxJSONBodySize = 1 << 20
	MaxTextBodySize = 1 << 20
)

// LimitBodyMiddleware limits request body size to prevent DoS
func LimitBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			contentType := r.Header.Get("Content-Type")
			var maxSize int64

			switch {
			case strings.HasPrefix(contentType, "application/json"):
				maxSize = MaxJSONBodySize
			case strings.HasPrefix(contentType, "text/plain"):
				maxSize = MaxTextBodySize
			default:
				maxSize = MaxJSONBodySize // Default limit
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		}

		next.ServeHTTP(w, r)
	})
}
