// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/edupath/internal/app/store/audit"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Destinations for a category's events.
const (
	All = "all" // MongoDB + zap
	DB  = "db"
	Log = "log"
	Off = "off"
)

// Config selects where each category of events goes.
type Config struct {
	Admin  string
	Public string
}

// Logger records audit events to the audit store and to zap.
// A nil *Logger is a no-op, which keeps handler tests free of audit setup.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(e audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", e.Category),
		zap.String("event_type", e.EventType),
		zap.String("resource", e.Resource),
		zap.String("ip", e.IP),
	}
	if e.ResourceID != "" {
		fields = append(fields, zap.String("id", e.ResourceID))
	}
	if e.ActorID != "" {
		fields = append(fields, zap.String("actor_id", e.ActorID))
	}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}
	for k, v := range e.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Record writes e according to the configured destination for its category.
func (l *Logger) Record(ctx context.Context, e audit.Event) {
	if l == nil {
		return
	}
	setting := All
	switch e.Category {
	case audit.CategoryAdmin:
		setting = l.config.Admin
	case audit.CategoryPublic:
		setting = l.config.Public
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}
	if setting == All || setting == Log {
		l.logToZap(e)
	}
	if (setting == All || setting == DB) && l.store != nil {
		if err := l.store.Log(ctx, e); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", e.EventType))
		}
	}
}

// fromRequest fills the actor and request context of an event.
func fromRequest(r *http.Request, e audit.Event) audit.Event {
	if u, ok := auth.CurrentUser(r); ok {
		e.ActorID = u.ID
		e.ActorName = u.Name
		e.ActorRole = u.Role
	}
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	e.RequestID = middleware.GetReqID(r.Context())
	return e
}

// Mutation records "<resource>_<action>" for one admin write.
func (l *Logger) Mutation(ctx context.Context, r *http.Request, resource, action, id string, details map[string]string) {
	if l == nil {
		return
	}
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  resource + "_" + action,
		Resource:   resource,
		ResourceID: id,
		Details:    details,
	}))
}

// SettingsUpdated records a change to the site settings document.
func (l *Logger) SettingsUpdated(ctx context.Context, r *http.Request) {
	if l == nil {
		return
	}
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventSettingsUpdated,
		Resource:  "settings",
	}))
}

// RegistrationSubmitted records a registration made through the public site.
func (l *Logger) RegistrationSubmitted(ctx context.Context, r *http.Request, registrationID, eventID string) {
	if l == nil {
		return
	}
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:   audit.CategoryPublic,
		EventType:  audit.EventRegistrationSubmitted,
		Resource:   "event_registration",
		ResourceID: registrationID,
		Details:    map[string]string{"event_id": eventID},
	}))
}
