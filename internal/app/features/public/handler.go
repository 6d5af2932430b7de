// Package public serves the unauthenticated read API the marketing site is
// built from, plus event registration.
package public

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/edupath/internal/app/features/awards"
	"github.com/dalemusser/edupath/internal/app/features/blogs"
	"github.com/dalemusser/edupath/internal/app/features/events"
	"github.com/dalemusser/edupath/internal/app/features/features"
	"github.com/dalemusser/edupath/internal/app/features/offices"
	"github.com/dalemusser/edupath/internal/app/features/partners"
	"github.com/dalemusser/edupath/internal/app/features/registrations"
	"github.com/dalemusser/edupath/internal/app/features/slides"
	"github.com/dalemusser/edupath/internal/app/features/steps"
	settingsstore "github.com/dalemusser/edupath/internal/app/store/settings"
	"github.com/dalemusser/edupath/internal/app/system/auditlog"
	"github.com/dalemusser/edupath/internal/app/system/paging"
	"github.com/dalemusser/edupath/internal/app/system/ratelimit"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"go.uber.org/zap"
)

// Services are the resource services the public API reads through.
type Services struct {
	Blogs         *blogs.Service
	Events        *events.Service
	Registrations *registrations.Service
	Partners      *partners.Service
	Awards        *awards.Service
	Steps         *steps.Service
	Features      *features.Service
	Offices       *offices.Service
	Slides        *slides.Service
}

// Options tune the public API.
type Options struct {
	// CacheSeconds is the max-age sent on GET responses; zero disables it.
	CacheSeconds     int
	MaxBodyBytes     int64
	DefaultPageLimit int
}

// Handler serves /api/public.
type Handler struct {
	Services
	Settings *settingsstore.Store
	AuditLog *auditlog.Logger
	Limiter  *ratelimit.Limiter
	Log      *zap.Logger

	opts Options
	now  func() time.Time
}

// NewHandler builds the public handler. limiter may be nil to disable
// throttling of registrations.
func NewHandler(svcs Services, settings *settingsstore.Store, auditLog *auditlog.Logger, limiter *ratelimit.Limiter, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = schema.DefaultMaxBody
	}
	if opts.DefaultPageLimit <= 0 {
		opts.DefaultPageLimit = paging.DefaultLimit
	}
	return &Handler{
		Services: svcs,
		Settings: settings,
		AuditLog: auditLog,
		Limiter:  limiter,
		Log:      logger.With(zap.String("surface", "public")),
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for the upcoming-events filter.
func (h *Handler) SetClock(now func() time.Time) { h.now = now }

// cacheControl marks successful GET responses as publicly cacheable. Errors
// and not-found answers are never cached.
func (h *Handler) cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.CacheSeconds <= 0 || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&cacheWriter{
			ResponseWriter: w,
			value:          "public, max-age=" + strconv.Itoa(h.opts.CacheSeconds),
		}, r)
	})
}

// cacheWriter sets Cache-Control just before a 200 header goes out.
type cacheWriter struct {
	http.ResponseWriter
	value       string
	wroteHeader bool
}

func (c *cacheWriter) WriteHeader(code int) {
	if !c.wroteHeader {
		c.wroteHeader = true
		if code == http.StatusOK {
			c.Header().Set("Cache-Control", c.value)
		}
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *cacheWriter) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	return c.ResponseWriter.Write(b)
}

func (c *cacheWriter) Unwrap() http.ResponseWriter { return c.ResponseWriter }
