// internal/app/features/settings/handler.go
package settings

import (
	settingsstore "github.com/dalemusser/edupath/internal/app/store/settings"
	"github.com/dalemusser/edupath/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler owns the site settings endpoints.
type Handler struct {
	Store        *settingsstore.Store
	Log          *zap.Logger
	AuditLog     *auditlog.Logger
	MaxBodyBytes int64
}

// NewHandler constructs a Handler bound to the given settings store.
func NewHandler(store *settingsstore.Store, audit *auditlog.Logger, logger *zap.Logger, maxBody int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:        store,
		Log:          logger.With(zap.String("resource", "settings")),
		AuditLog:     audit,
		MaxBodyBytes: maxBody,
	}
}
