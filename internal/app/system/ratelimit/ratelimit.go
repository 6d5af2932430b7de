// Package ratelimit throttles public write endpoints per client.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/respond"
	"golang.org/x/time/rate"
)

// Limiter keeps a token bucket per key. Each bucket holds limit tokens and
// refills completely over period. It is safe for concurrent use.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	limit   int
	period  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New returns a Limiter allowing limit requests per key every period.
// Call Stop to end its background sweep.
func New(limit int, period time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		period:  period,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if limit > 0 && period > 0 {
		go l.sweep(period)
	}
	return l
}

// get returns the bucket for key, creating it on first use.
func (l *Limiter) get(key string, now time.Time) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok = l.buckets[key]; ok {
		return b
	}
	b = &bucket{
		lim:      rate.NewLimiter(rate.Every(l.period/time.Duration(l.limit)), l.limit),
		lastSeen: now,
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) disabled() bool {
	return l == nil || l.limit <= 0 || l.period <= 0
}

// Allow takes one token for key and reports whether one was available.
// A non-positive limit allows everything.
func (l *Limiter) Allow(key string) bool {
	if l.disabled() {
		return true
	}
	now := l.now()
	b := l.get(key, now)
	l.mu.Lock()
	b.lastSeen = now
	l.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

// Remaining returns how many whole tokens key has left.
func (l *Limiter) Remaining(key string) int {
	if l.disabled() {
		return 0
	}
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if !ok {
		return l.limit
	}
	return max(int(b.lim.TokensAt(l.now())), 0)
}

// RetryAfter returns how long until key has a token again.
func (l *Limiter) RetryAfter(key string) time.Duration {
	if l.disabled() {
		return 0
	}
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if !ok {
		return 0
	}
	now := l.now()
	res := b.lim.ReserveN(now, 1)
	if !res.OK() {
		return l.period
	}
	d := res.DelayFrom(now)
	res.CancelAt(now)
	return d
}

// Stop ends the background sweep.
func (l *Limiter) Stop() {
	if l == nil {
		return
	}
	l.once.Do(func() { close(l.stop) })
}

// Stopped reports whether Stop has been called.
func (l *Limiter) Stopped() bool {
	select {
	case <-l.stop:
		return true
	default:
		return false
	}
}

// sweep drops buckets idle for a full period; they would be full anyway.
func (l *Limiter) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.period)
	for k, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
		}
	}
}

// size reports the number of tracked keys.
func (l *Limiter) size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !l.Allow(ip) {
			secs := int((l.RetryAfter(ip) + time.Second - 1) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			respond.Error(w, http.StatusTooManyRequests, "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the host part of RemoteAddr. Forwarding headers are
// only honoured through Proxies.RealIP, which rewrites RemoteAddr for
// requests arriving from a trusted proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
