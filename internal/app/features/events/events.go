// Package events is the admin API for events visitors can register for.
package events

import (
	"context"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/blogs"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/status"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Collection is the events collection name.
const Collection = "events"

type (
	Service = crud.Service[models.Event, Input]
	Handler = crud.Handler[models.Event, Input]
)

// Input is the create/update payload.
type Input struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Capacity    *int       `json:"capacity"`
	Fee         *string    `json:"fee"`
	Image       *string    `json:"image"`
	Status      *string    `json:"status"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("title", in.Title)
	c.MaxLen("title", in.Title, 200)
	c.MaxLen("description", in.Description, 5000)
	c.Required("location", in.Location)
	c.MaxLen("location", in.Location, 200)
	schema.Present(c, "startsAt", in.StartsAt)
	c.IntRange("capacity", in.Capacity, 0, 1_000_000)
	c.MaxLen("fee", in.Fee, 50)
	c.URL("image", in.Image)
	c.Enum("status", in.Status, models.ContentStatuses...)
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		c.Add("endsAt", "must not be before startsAt")
	}
	return c.Errors()
}

// Resource describes events to the CRUD service.
func Resource() crud.Resource[models.Event, Input] {
	return crud.Resource[models.Event, Input]{
		Name:         "event",
		Plural:       "events",
		Collection:   Collection,
		SearchFields: []string{"title", "location", "description"},
		Filters: []crud.Filter{
			{Param: "status", Field: "status", Values: models.ContentStatuses},
		},
		Defaults: func() models.Event { return models.Event{Status: models.StatusDraft} },
		Apply:    apply,
		Base:     func(e *models.Event) *models.Base { return &e.Base },
		Slug: &crud.SlugRule[models.Event]{
			Source: func(e *models.Event) string { return e.Title },
			Target: func(e *models.Event) *string { return &e.Slug },
		},
		Derive: derive,
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}

func apply(e *models.Event, in Input) {
	schema.SetTrim(&e.Title, in.Title)
	schema.Set(&e.Description, in.Description)
	schema.SetTrim(&e.Location, in.Location)
	if in.StartsAt != nil {
		e.StartsAt = in.StartsAt.UTC()
	}
	if in.EndsAt != nil {
		at := in.EndsAt.UTC()
		e.EndsAt = &at
	}
	schema.Set(&e.Capacity, in.Capacity)
	schema.SetTrim(&e.Fee, in.Fee)
	schema.SetTrim(&e.Image, in.Image)
	schema.SetTrim(&e.Status, in.Status)
}

func derive(_ context.Context, prev, next *models.Event, now time.Time) error {
	// A partial update may move only one end of the range.
	if next.EndsAt != nil && next.EndsAt.Before(next.StartsAt) {
		return schema.Field("endsAt", "must not be before startsAt")
	}
	from := ""
	if prev != nil {
		from = prev.Status
	}
	if err := blogs.CheckStatus(prev == nil, from, next.Status); err != nil {
		return err
	}
	if status.Publishing(from, next.Status) && next.PublishedAt == nil {
		at := now
		next.PublishedAt = &at
	}
	return nil
}

// Upcoming restricts a list to events that have not ended by now.
func Upcoming(now time.Time) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"ends_at": bson.M{"$gte": now}},
		bson.M{"ends_at": bson.M{"$exists": false}, "starts_at": bson.M{"$gte": now}},
	}}
}
