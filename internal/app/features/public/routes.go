package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the public API. Nothing here requires a session.
//
//	r.Mount("/api/public", public.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.cacheControl)

	r.Get("/blogs", h.ServeBlogs)
	r.Get("/blogs/{slug}", h.ServeBlog)
	r.Get("/events", h.ServeEvents)
	r.Get("/events/{slug}", h.ServeEvent)

	register := http.Handler(http.HandlerFunc(h.HandleRegister))
	if h.Limiter != nil {
		register = h.Limiter.Middleware(register)
	}
	r.Method(http.MethodPost, "/events/{slug}/register", register)

	r.Get("/partners", activeList(h, h.Partners))
	r.Get("/awards", activeList(h, h.Awards))
	r.Get("/steps", activeList(h, h.Steps))
	r.Get("/features", activeList(h, h.Features))
	r.Get("/offices", activeList(h, h.Offices))
	r.Get("/slides", activeList(h, h.Slides))
	r.Get("/settings", h.ServeSettings)
	return r
}
