// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/audit"
	"github.com/dalemusser/edupath/internal/app/system/paging"
	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const pageSize = 50

// ServeList handles GET /api/audit-events. Filters: category, eventType,
// resource, resourceId, actorId, from and to (YYYY-MM-DD, inclusive).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	params := paging.ParseWithDefault(r, pageSize)

	filter := audit.QueryFilter{
		Category:   query.Get(r, "category"),
		EventType:  query.Get(r, "eventType"),
		Resource:   query.Get(r, "resource"),
		ResourceID: query.Get(r, "resourceId"),
		ActorID:    query.Get(r, "actorId"),
		Limit:      int64(params.Limit),
		Offset:     params.Skip(),
	}

	var errs schema.Errors
	if from := strings.TrimSpace(query.Get(r, "from")); from != "" {
		if t, err := time.Parse(time.DateOnly, from); err == nil {
			filter.StartTime = &t
		} else {
			errs = append(errs, schema.FieldError{Field: "from", Message: "must be a date like 2026-01-31"})
		}
	}
	if to := strings.TrimSpace(query.Get(r, "to")); to != "" {
		if t, err := time.Parse(time.DateOnly, to); err == nil {
			endOfDay := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndTime = &endOfDay
		} else {
			errs = append(errs, schema.FieldError{Field: "to", Message: "must be a date like 2026-01-31"})
		}
	}
	if len(errs) > 0 {
		crud.WriteError(w, h.Log, "audit event", errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	events, err := h.Store.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		respond.Internal(w)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		respond.Internal(w)
		return
	}

	respond.OK(w, http.StatusOK, crud.ListBody("events", paging.NewPage(events, params, total)))
}
