package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, period time.Duration) (*Limiter, *time.Time) {
	t.Helper()
	l := New(limit, period)
	t.Cleanup(l.Stop)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllow_Refills(t *testing.T) {
	l, now := newTestLimiter(t, 2, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")
	assert.Equal(t, 0, l.Remaining("a"))

	*now = now.Add(time.Minute + time.Second)
	assert.True(t, l.Allow("a"))
	assert.Equal(t, 1, l.Remaining("a"))
}

func TestAllow_PartialRefill(t *testing.T) {
	l, now := newTestLimiter(t, 4, time.Minute)
	for i := 0; i < 4; i++ {
		require.True(t, l.Allow("a"))
	}
	assert.False(t, l.Allow("a"))
	assert.InDelta(t, float64(15*time.Second), float64(l.RetryAfter("a")), float64(time.Millisecond))

	*now = now.Add(16 * time.Second)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestRetryAfter_DoesNotConsume(t *testing.T) {
	l, _ := newTestLimiter(t, 2, time.Minute)
	require.True(t, l.Allow("a"))
	l.RetryAfter("a")
	l.RetryAfter("a")
	assert.Equal(t, 1, l.Remaining("a"))
	assert.True(t, l.Allow("a"))
}

func TestEvictIdle(t *testing.T) {
	l, now := newTestLimiter(t, 2, time.Minute)
	l.Allow("old")
	*now = now.Add(2 * time.Minute)
	l.Allow("fresh")

	l.evictIdle()
	assert.Equal(t, 1, l.size())
	assert.Equal(t, 2, l.Remaining("old"))
}

func TestNilLimiter(t *testing.T) {
	var l *Limiter
	assert.True(t, l.Allow("a"))
	l.Stop()
}

func TestAllow_NoLimit(t *testing.T) {
	l, _ := newTestLimiter(t, 0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("a"))
	}
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(t, 1, 30*time.Second)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.RemoteAddr = "203.0.113.7:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestMiddleware_IgnoresSpoofedForwardedFor(t *testing.T) {
	l, _ := newTestLimiter(t, 2, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusNoContent {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded ignored", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "10.0.0.2:80", "10.0.0.2"},
		{"real ip ignored", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "10.0.0.2:80", "10.0.0.2"},
		{"remote addr", nil, "192.0.2.9:4321", "192.0.2.9"},
		{"no port", nil, "192.0.2.10", "192.0.2.10"},
		{"ipv6", nil, "[2001:db8::1]:443", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}
