// Package awards is the admin API for awards and recognitions.
package awards

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

const Collection = "awards"

type (
	Service = crud.Service[models.Award, Input]
	Handler = crud.Handler[models.Award, Input]
)

type Input struct {
	Title       *string `json:"title"`
	Issuer      *string `json:"issuer"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Active      *bool   `json:"active"`
	Order       *int    `json:"order"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("title", in.Title)
	c.MaxLen("title", in.Title, 200)
	c.MaxLen("issuer", in.Issuer, 200)
	c.IntRange("year", in.Year, 1900, 2100)
	c.MaxLen("description", in.Description, 2000)
	c.URL("image", in.Image)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

func Resource() crud.Resource[models.Award, Input] {
	return crud.Resource[models.Award, Input]{
		Name:         "award",
		Plural:       "awards",
		Collection:   Collection,
		SearchFields: []string{"title", "issuer", "description"},
		Filters:      []crud.Filter{{Param: "active", Field: "active", Bool: true}},
		OrderField:   "order",
		Defaults:     func() models.Award { return models.Award{Active: true} },
		Apply: func(a *models.Award, in Input) {
			schema.SetTrim(&a.Title, in.Title)
			schema.SetTrim(&a.Issuer, in.Issuer)
			schema.Set(&a.Year, in.Year)
			schema.Set(&a.Description, in.Description)
			schema.SetTrim(&a.Image, in.Image)
			schema.Set(&a.Active, in.Active)
			schema.Set(&a.Order, in.Order)
		},
		Base: func(a *models.Award) *models.Base { return &a.Base },
		Slug: &crud.SlugRule[models.Award]{
			Source: func(a *models.Award) string { return a.Title },
			Target: func(a *models.Award) *string { return &a.Slug },
		},
		Order: func(a *models.Award) *int { return &a.Order },
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}
