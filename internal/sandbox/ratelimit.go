package sandbox

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type rateBucket struct {
	count int
	reset time.Time
}

// loginLimiter counts signin attempts per email, falling back to the
// client address, in fixed windows.
type loginLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	buckets map[string]*rateBucket
}

func newLoginLimiter(limit int, window time.Duration, now func() time.Time) *loginLimiter {
	return &loginLimiter{limit: limit, window: window, now: now, buckets: map[string]*rateBucket{}}
}

// LoginRateLimit rejects signin attempts over the limit with 429. A limit
// of zero disables it.
func LoginRateLimit(limit int, window time.Duration, now func() time.Time, logger *zap.Logger) func(http.Handler) http.Handler {
	rl := newLoginLimiter(limit, window, now)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			key := signinKey(r)
			allowed, retry := rl.take(key)
			if !allowed {
				logger.Warn("signin rate limited", zap.String("key", key))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				fail(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *loginLimiter) take(key string) (bool, int) {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	bucket, ok := rl.buckets[key]
	if !ok || now.After(bucket.reset) {
		bucket = &rateBucket{reset: now.Add(rl.window)}
		rl.buckets[key] = bucket
	}
	bucket.count++
	if bucket.count <= rl.limit {
		return true, 0
	}
	return false, max(int(bucket.reset.Sub(now).Seconds()), 1)
}

func signinKey(r *http.Request) string {
	if email := peekEmail(r); email != "" {
		return "email:" + strings.ToLower(email)
	}
	return "ip:" + clientIP(r)
}

// peekEmail reads the email field and restores the body for the handler.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	var payload struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	return strings.TrimSpace(payload.Email)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
