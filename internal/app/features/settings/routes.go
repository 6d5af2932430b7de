// internal/app/features/settings/routes.go
package settings

import (
	"github.com/dalemusser/edupath/internal/app/policy/accesspolicy"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin settings endpoints. Reading is open to staff;
// saving is admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.With(sm.RequireRole(accesspolicy.Staff()...)).Get("/", h.ServeSettings)
	r.With(sm.RequireRole(accesspolicy.Admins()...)).Put("/", h.HandleSettings)
	return r
}
