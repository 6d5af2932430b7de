// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/edupath/internal/app/store/audit"
	"go.uber.org/zap"
)

type Handler struct {
	Store *audit.Store
	Log   *zap.Logger
}

// NewHandler constructs an audit log feature handler bound to the audit store.
func NewHandler(store *audit.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Log: logger}
}
