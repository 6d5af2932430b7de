package public

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/registrations"
	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// RegisterInput is what a visitor may send. Status, payment and notes are
// staff-only and cannot be set here.
type RegisterInput struct {
	Name                 *string `json:"name"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
	Country              *string `json:"country"`
	PreferredDestination *string `json:"preferredDestination"`
	StudyLevel           *string `json:"studyLevel"`
	Requirements         *string `json:"requirements"`
}

func (in RegisterInput) registration(eventID string) registrations.Input {
	return registrations.Input{
		EventID:              &eventID,
		Name:                 in.Name,
		Email:                in.Email,
		Phone:                in.Phone,
		Country:              in.Country,
		PreferredDestination: in.PreferredDestination,
		StudyLevel:           in.StudyLevel,
		Requirements:         in.Requirements,
	}
}

// receipt is the part of a new registration echoed back to the visitor.
type receipt struct {
	ID               string    `json:"id"`
	EventID          string    `json:"eventId"`
	EventTitle       string    `json:"eventTitle"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// HandleRegister handles POST /events/{slug}/register. The event must be
// published and have a free seat.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	in, err := schema.Decode[RegisterInput](r.Body, h.opts.MaxBodyBytes)
	if err != nil {
		crud.WriteError(w, h.Log, "registration", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "public.register")
	defer cancel()

	ev, err := h.Events.GetBySlug(ctx, chi.URLParam(r, "slug"), published)
	if err != nil {
		crud.WriteError(w, h.Log, "event", err)
		return
	}
	// The seat check and the insert are separate operations, so two
	// simultaneous sign-ups for the last seat can both succeed.
	full, err := registrations.Full(ctx, h.Registrations, ev)
	if err != nil {
		crud.WriteError(w, h.Log, "registration", err)
		return
	}
	if full {
		respond.Error(w, http.StatusConflict, "this event is fully booked")
		return
	}

	reg, err := h.Registrations.Create(ctx, in.registration(ev.ID.Hex()))
	if err != nil {
		crud.WriteError(w, h.Log, "registration", err)
		return
	}
	h.AuditLog.RegistrationSubmitted(context.WithoutCancel(ctx), r, reg.ID.Hex(), ev.ID.Hex())

	respond.OK(w, http.StatusCreated, respond.Body{"registration": receipt{
		ID:               reg.ID.Hex(),
		EventID:          reg.EventID.Hex(),
		EventTitle:       reg.EventTitle,
		Name:             reg.Name,
		Email:            reg.Email,
		Status:           reg.Status,
		PaymentStatus:    reg.PaymentStatus,
		RegistrationDate: reg.RegistrationDate,
	}})
}
