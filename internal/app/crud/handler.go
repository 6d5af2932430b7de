package crud

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/edupath/internal/app/store/audit"
	"github.com/dalemusser/edupath/internal/app/system/auditlog"
	"github.com/dalemusser/edupath/internal/app/system/paging"
	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Options tune request handling.
type Options struct {
	MaxBodyBytes     int64
	DefaultPageLimit int
}

// Deps are the handler dependencies shared by every resource.
type Deps struct {
	AuditLog *auditlog.Logger
	Log      *zap.Logger
	Options  Options
}

// Handler serves the JSON API for one resource.
type Handler[T any, I schema.Validator] struct {
	Svc      *Service[T, I]
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	opts     Options
}

// NewHandler wires a Handler around svc.
func NewHandler[T any, I schema.Validator](svc *Service[T, I], auditLog *auditlog.Logger, logger *zap.Logger, opts Options) *Handler[T, I] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = schema.DefaultMaxBody
	}
	if opts.DefaultPageLimit <= 0 {
		opts.DefaultPageLimit = paging.DefaultLimit
	}
	return &Handler[T, I]{
		Svc:      svc,
		Log:      logger.With(zap.String("resource", svc.res.Name)),
		AuditLog: auditLog,
		opts:     opts,
	}
}

// ParseListQuery reads page, limit, search and the resource's filter
// parameters from r.
func (h *Handler[T, I]) ParseListQuery(r *http.Request) ListQuery {
	q := ListQuery{
		Page:    paging.ParseWithDefault(r, h.opts.DefaultPageLimit),
		Search:  query.Search(r, "search"),
		Filters: map[string]string{},
	}
	for _, f := range h.Svc.res.Filters {
		if v := query.Get(r, f.Param); v != "" {
			q.Filters[f.Param] = v
		}
	}
	return q
}

// ServeList handles GET /.
func (h *Handler[T, I]) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, h.Svc.res.Name+".list")
	defer cancel()

	page, err := h.Svc.List(ctx, h.ParseListQuery(r))
	if err != nil {
		h.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, ListBody(h.Svc.res.Plural, page))
}

// ListBody builds the list envelope payload.
func ListBody[T any](key string, page paging.Page[T]) respond.Body {
	return respond.Body{
		key:          page.Items,
		"page":       page.Page,
		"limit":      page.Limit,
		"total":      page.Total,
		"totalPages": page.TotalPages,
	}
}

// ServeGet handles GET /{id}.
func (h *Handler[T, I]) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Svc.res.Name+".get")
	defer cancel()

	doc, err := h.Svc.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Body{h.Svc.res.Name: doc})
}

// HandleCreate handles POST /.
func (h *Handler[T, I]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := schema.Decode[I](r.Body, h.opts.MaxBodyBytes)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Svc.res.Name+".create")
	defer cancel()

	doc, err := h.Svc.Create(ctx, in)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.audit(ctx, r, audit.ActionCreated, h.Svc.ID(&doc))
	respond.OK(w, http.StatusCreated, respond.Body{h.Svc.res.Name: doc})
}

// HandleUpdate handles PUT and PATCH /{id}. Both accept a partial body.
func (h *Handler[T, I]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, err := schema.Decode[I](r.Body, h.opts.MaxBodyBytes)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Svc.res.Name+".update")
	defer cancel()

	doc, err := h.Svc.Update(ctx, id, in)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.audit(ctx, r, audit.ActionUpdated, id)
	respond.OK(w, http.StatusOK, respond.Body{h.Svc.res.Name: doc})
}

// HandleDelete handles DELETE /{id}.
func (h *Handler[T, I]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, h.Svc.res.Name+".delete")
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		h.WriteError(w, err)
		return
	}
	h.audit(ctx, r, audit.ActionDeleted, id)
	respond.OK(w, http.StatusOK, respond.Body{"id": id})
}

type reorderInput struct {
	IDs []string `json:"ids"`
}

// HandleReorder handles POST /reorder with {"ids": [...]} in display order.
func (h *Handler[T, I]) HandleReorder(w http.ResponseWriter, r *http.Request) {
	in, err := schema.Decode[reorderInput](r.Body, h.opts.MaxBodyBytes)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, h.Svc.res.Name+".reorder")
	defer cancel()

	n, err := h.Svc.Reorder(ctx, in.IDs)
	if n > 0 {
		h.audit(ctx, r, audit.ActionReordered, "")
	}
	if err != nil {
		h.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Body{"updated": n})
}

func (h *Handler[T, I]) audit(ctx context.Context, r *http.Request, action, id string) {
	h.AuditLog.Mutation(context.WithoutCancel(ctx), r, h.Svc.res.Name, action, id, nil)
}

// WriteError maps service errors to responses.
func (h *Handler[T, I]) WriteError(w http.ResponseWriter, err error) {
	WriteError(w, h.Log, h.Svc.res.Name, err)
}

// WriteError maps the error taxonomy to HTTP: field errors 400, not found
// 404, anything else a generic 500. name labels the 404 message.
func WriteError(w http.ResponseWriter, log *zap.Logger, name string, err error) {
	if errs, ok := AsValidation(err); ok {
		respond.BadRequest(w, "validation failed", errs)
		return
	}
	if IsNotFound(err) {
		respond.NotFound(w, name+" not found")
		return
	}
	// PersistenceErrors were logged where they happened.
	var pe *PersistenceError
	if !errors.As(err, &pe) && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	respond.Internal(w)
}
