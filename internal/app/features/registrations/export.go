package registrations

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/csvutil"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

var exportColumns = []csvutil.Column[models.EventRegistration]{
	{Header: "Registered", Value: func(r models.EventRegistration) string { return r.RegistrationDate.UTC().Format(time.RFC3339) }},
	{Header: "Event", Value: func(r models.EventRegistration) string { return r.EventTitle }},
	{Header: "Name", Value: func(r models.EventRegistration) string { return r.Name }},
	{Header: "Email", Value: func(r models.EventRegistration) string { return r.Email }},
	{Header: "Phone", Value: func(r models.EventRegistration) string { return r.Phone }},
	{Header: "Country", Value: func(r models.EventRegistration) string { return r.Country }},
	{Header: "Preferred Destination", Value: func(r models.EventRegistration) string { return r.PreferredDestination }},
	{Header: "Study Level", Value: func(r models.EventRegistration) string { return r.StudyLevel }},
	{Header: "Requirements", Value: func(r models.EventRegistration) string { return r.Requirements }},
	{Header: "Notes", Value: func(r models.EventRegistration) string { return r.Notes }},
	{Header: "Status", Value: func(r models.EventRegistration) string { return r.Status }},
	{Header: "Payment", Value: func(r models.EventRegistration) string { return r.PaymentStatus }},
}

// ServeExport handles GET /export. It takes the same search and filter
// parameters as the list and streams every match, up to csvutil.MaxRows,
// as a CSV download.
func ServeExport(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "registration.export")
		defer cancel()

		rows, err := h.Svc.Matching(ctx, h.ParseListQuery(r), csvutil.MaxRows)
		if err != nil {
			h.WriteError(w, err)
			return
		}
		if len(rows) == csvutil.MaxRows {
			h.Log.Warn("registration export truncated", zap.Int("rows", len(rows)))
		}

		name := fmt.Sprintf("registrations-%s.csv", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		if err := csvutil.Write(w, exportColumns, rows); err != nil {
			// Headers are already sent; all that is left is to log.
			h.Log.Error("registration export failed", zap.Error(err))
		}
	}
}
