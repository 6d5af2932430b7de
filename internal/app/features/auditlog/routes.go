// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/edupath/internal/app/policy/accesspolicy"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under the path where this router is mounted
// (typically "/api/audit-events" from bootstrap). Admins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(accesspolicy.Admins()...))

		pr.Get("/", h.ServeList)
	})

	return r
}
