// internal/app/features/awards/routes.go
package awards

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/policy/accesspolicy"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	return crud.Routes(h, sm, accesspolicy.Content)
}
