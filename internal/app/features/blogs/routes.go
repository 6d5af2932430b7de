// internal/app/features/blogs/routes.go
package blogs

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/policy/accesspolicy"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin blog API.
//
//	r.Mount("/api/blogs", blogs.Routes(blogs.NewHandler(svc, deps), sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	return crud.Routes(h, sm, accesspolicy.Content)
}
