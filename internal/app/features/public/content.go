package public

import (
	"net/http"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/events"
	"github.com/dalemusser/edupath/internal/app/system/paging"
	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/dalemusser/edupath/internal/app/system/richtext"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/search"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var published = bson.M{"status": models.StatusPublished}

// blogView is a published blog with its markdown rendered.
type blogView struct {
	models.Blog
	ContentHTML string `json:"contentHtml"`
}

func (h *Handler) listQuery(r *http.Request, params ...string) crud.ListQuery {
	q := crud.ListQuery{
		Page:    paging.ParseWithDefault(r, h.opts.DefaultPageLimit),
		Search:  query.Search(r, "search"),
		Filters: map[string]string{},
		Where:   published,
	}
	for _, p := range params {
		if v := query.Get(r, p); v != "" {
			q.Filters[p] = v
		}
	}
	return q
}

// ServeBlogs handles GET /blogs: published posts, optionally narrowed by
// category or tag.
func (h *Handler) ServeBlogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "public.blogs")
	defer cancel()

	page, err := h.Blogs.List(ctx, h.listQuery(r, "category", "tag"))
	if err != nil {
		crud.WriteError(w, h.Log, "blog", err)
		return
	}
	respond.OK(w, http.StatusOK, crud.ListBody("blogs", page))
}

// ServeBlog handles GET /blogs/{slug}.
func (h *Handler) ServeBlog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "public.blog")
	defer cancel()

	b, err := h.Blogs.GetBySlug(ctx, chi.URLParam(r, "slug"), published)
	if err != nil {
		crud.WriteError(w, h.Log, "blog", err)
		return
	}
	html, err := richtext.Render(b.Content)
	if err != nil {
		h.Log.Warn("render blog content", zap.String("slug", b.Slug), zap.Error(err))
		html = ""
	}
	respond.OK(w, http.StatusOK, respond.Body{"blog": blogView{Blog: b, ContentHTML: html}})
}

// ServeEvents handles GET /events. With ?upcoming=true only events that
// have not ended are listed.
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "public.events")
	defer cancel()

	q := h.listQuery(r)
	switch query.Get(r, "upcoming") {
	case "", "false", "0":
	case "true", "1":
		q.Where = search.And(published, events.Upcoming(h.now()))
	default:
		respond.BadRequest(w, "validation failed", schema.Field("upcoming", "must be true or false"))
		return
	}

	page, err := h.Events.List(ctx, q)
	if err != nil {
		crud.WriteError(w, h.Log, "event", err)
		return
	}
	respond.OK(w, http.StatusOK, crud.ListBody("events", page))
}

// ServeEvent handles GET /events/{slug}.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "public.event")
	defer cancel()

	ev, err := h.Events.GetBySlug(ctx, chi.URLParam(r, "slug"), published)
	if err != nil {
		crud.WriteError(w, h.Log, "event", err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Body{"event": ev})
}

// ServeSettings handles GET /settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "public.settings")
	defer cancel()

	s, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Error("load settings", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, http.StatusOK, respond.Body{"settings": s})
}

// activeList serves every active document of one resource in display order.
func activeList[T any, I schema.Validator](h *Handler, svc *crud.Service[T, I]) http.HandlerFunc {
	res := svc.Resource()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "public."+res.Plural)
		defer cancel()

		items, err := svc.All(ctx, bson.M{"active": true})
		if err != nil {
			crud.WriteError(w, h.Log, res.Name, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		respond.OK(w, http.StatusOK, respond.Body{res.Plural: items})
	}
}
