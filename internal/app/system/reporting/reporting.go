// Package reporting forwards persistence failures and panics to Sentry.
// With no DSN configured every function is a no-op.
package reporting

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.uber.org/zap"
)

// Config describes the Sentry project.
type Config struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
}

var enabled atomic.Bool

// Init configures the Sentry client. It returns false when no DSN is set.
func Init(cfg Config, logger *zap.Logger) (bool, error) {
	if cfg.DSN == "" {
		enabled.Store(false)
		return false, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
	}); err != nil {
		return false, err
	}
	enabled.Store(true)
	if logger != nil {
		logger.Info("sentry error reporting enabled", zap.String("environment", cfg.Environment))
	}
	return true, nil
}

// Enabled reports whether Init succeeded with a DSN.
func Enabled() bool { return enabled.Load() }

// Capture sends err with tags. It prefers the request-scoped hub placed in
// ctx by Middleware.
func Capture(ctx context.Context, err error, tags map[string]string) {
	if err == nil || !Enabled() {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		hub.CaptureException(err)
	})
}

// Middleware recovers panics, reports them, and re-panics so chi's
// Recoverer still writes the 500.
func Middleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true, WaitForDelivery: false, Timeout: 2 * time.Second})
	return func(next http.Handler) http.Handler {
		if !Enabled() {
			return next
		}
		return h.Handle(next)
	}
}

// Flush waits up to d for buffered events.
func Flush(d time.Duration) {
	if Enabled() {
		sentry.Flush(d)
	}
}
