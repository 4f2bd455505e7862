package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/tripplanner-backend/pkg/ctxutil"
)

const visitorIdleTTL = 10 * time.Minute

const rateLimitedBody = `{"error":"rate limit exceeded","code":"rate_limited"}` + "\n"

// RateLimiter implements per-IP token bucket rate limiting.
type RateLimiter struct {
	visitors sync.Map // map[string]*visitor
	stop     chan struct{}
}

type visitor struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that allows perMinute requests per caller with
// bursts of up to burst requests. Authenticated callers are limited by user
// ID, anonymous ones by client IP.
func (rl *RateLimiter) Limit(perMinute, burst int) Middleware {
	every := rate.Every(time.Minute / time.Duration(perMinute))
	retryAfter := strconv.Itoa(int(60.0/float64(perMinute)) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := rl.getVisitor(visitorKey(r), every, burst)
			if !v.limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(rateLimitedBody))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Allow reports whether the caller in ctx may proceed, drawing from the same
// per-user buckets as Limit. Callers without a user share one bucket.
func (rl *RateLimiter) Allow(perMinute, burst int) func(ctx context.Context) bool {
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(ctx context.Context) bool {
		key := "anonymous"
		if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
			key = "user:" + userID.String()
		}
		return rl.getVisitor(key, every, burst).limiter.Allow()
	}
}

func (rl *RateLimiter) getVisitor(key string, every rate.Limit, burst int) *visitor {
	val, _ := rl.visitors.LoadOrStore(key, &visitor{limiter: rate.NewLimiter(every, burst)})
	v := val.(*visitor)

	v.mu.Lock()
	v.lastSeen = time.Now()
	v.mu.Unlock()
	return v
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.visitors.Range(func(key, value any) bool {
				v := value.(*visitor)
				v.mu.Lock()
				idle := now.Sub(v.lastSeen)
				v.mu.Unlock()
				if idle > visitorIdleTTL {
					rl.visitors.Delete(key)
				}
				return true
			})
		}
	}
}

func visitorKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	return "ip:" + clientIP(r)
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
