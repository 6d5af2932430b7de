// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/policy/accesspolicy"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin event API.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	return crud.Routes(h, sm, accesspolicy.Content)
}
