// internal/app/features/registrations/routes.go
package registrations

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/policy/accesspolicy"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin registration API plus GET /export.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := crud.Routes(h, sm, accesspolicy.Registrations)
	r.With(sm.RequireRole(accesspolicy.Registrations.Read...)).Get("/export", ServeExport(h))
	return r
}
