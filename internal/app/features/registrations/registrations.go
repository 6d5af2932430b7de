// Package registrations is the admin API for event registrations.
package registrations

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/events"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/status"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Collection is the registrations collection name.
const Collection = "event_registrations"

type (
	Service = crud.Service[models.EventRegistration, Input]
	Handler = crud.Handler[models.EventRegistration, Input]
)

// Input is the create/update payload. EventID is fixed once created.
type Input struct {
	EventID              *string `json:"eventId"`
	Name                 *string `json:"name"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
	Country              *string `json:"country"`
	PreferredDestination *string `json:"preferredDestination"`
	StudyLevel           *string `json:"studyLevel"`
	Requirements         *string `json:"requirements"`
	Notes                *string `json:"notes"`
	Status               *string `json:"status"`
	PaymentStatus        *string `json:"paymentStatus"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("eventId", in.EventID)
	c.ObjectID("eventId", in.EventID)
	c.Required("name", in.Name)
	c.MaxLen("name", in.Name, 120)
	c.Required("email", in.Email)
	c.Email("email", in.Email)
	c.Required("phone", in.Phone)
	c.MaxLen("phone", in.Phone, 30)
	c.MaxLen("country", in.Country, 80)
	c.MaxLen("preferredDestination", in.PreferredDestination, 80)
	c.MaxLen("studyLevel", in.StudyLevel, 80)
	c.MaxLen("requirements", in.Requirements, 2000)
	c.MaxLen("notes", in.Notes, 2000)
	c.Enum("status", in.Status, models.RegistrationStatuses...)
	c.Enum("paymentStatus", in.PaymentStatus, models.PaymentStatuses...)
	return c.Errors()
}

// Resource describes registrations to the CRUD service. Creating one looks
// up its event in src to check it exists and to copy its title.
func Resource(src content.Source) crud.Resource[models.EventRegistration, Input] {
	eventsColl := content.New[models.Event](src, events.Collection)
	return crud.Resource[models.EventRegistration, Input]{
		Name:         "registration",
		Plural:       "registrations",
		Collection:   Collection,
		SearchFields: []string{"name", "email", "phone", "event_title"},
		Filters: []crud.Filter{
			{Param: "status", Field: "status", Values: models.RegistrationStatuses},
			{Param: "paymentStatus", Field: "payment_status", Values: models.PaymentStatuses},
			{Param: "eventId", Field: "event_id", ID: true},
		},
		Defaults: func() models.EventRegistration {
			return models.EventRegistration{
				Status:        models.RegistrationPending,
				PaymentStatus: models.PaymentPending,
			}
		},
		Apply: apply,
		Base:  func(r *models.EventRegistration) *models.Base { return &r.Base },
		Derive: func(ctx context.Context, prev, next *models.EventRegistration, now time.Time) error {
			if prev != nil {
				if next.EventID != prev.EventID {
					return schema.Field("eventId", "cannot be changed")
				}
				return status.CheckRegistration(prev.Status, next.Status)
			}
			ev, err := eventsColl.Get(ctx, next.EventID)
			if err != nil {
				if crud.IsNotFound(err) {
					return schema.Field("eventId", "event not found")
				}
				return err
			}
			next.EventTitle = ev.Title
			next.RegistrationDate = now
			return nil
		},
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(src), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}

func apply(r *models.EventRegistration, in Input) {
	if in.EventID != nil {
		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*in.EventID)); err == nil {
			r.EventID = oid
		}
	}
	schema.SetTrim(&r.Name, in.Name)
	schema.SetTrim(&r.Email, in.Email)
	schema.SetTrim(&r.Phone, in.Phone)
	schema.SetTrim(&r.Country, in.Country)
	schema.SetTrim(&r.PreferredDestination, in.PreferredDestination)
	schema.SetTrim(&r.StudyLevel, in.StudyLevel)
	schema.Set(&r.Requirements, in.Requirements)
	schema.Set(&r.Notes, in.Notes)
	schema.SetTrim(&r.Status, in.Status)
	schema.SetTrim(&r.PaymentStatus, in.PaymentStatus)
}

// Holding counts the registrations for eventID that hold a seat, which is
// every registration that is not cancelled.
func Holding(ctx context.Context, svc *Service, eventID primitive.ObjectID) (int64, error) {
	return svc.Collection().Count(ctx, bson.M{
		"event_id": eventID,
		"status":   bson.M{"$ne": models.RegistrationCancelled},
	})
}

// Full reports whether an event with the given capacity has no seats left.
// A capacity of zero means unlimited.
func Full(ctx context.Context, svc *Service, ev models.Event) (bool, error) {
	if ev.Capacity <= 0 {
		return false, nil
	}
	n, err := Holding(ctx, svc, ev.ID)
	if err != nil {
		return false, err
	}
	return n >= int64(ev.Capacity), nil
}
