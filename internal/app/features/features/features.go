// Package features is the admin API for the "why choose us" selling points.
package features

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

const Collection = "features"

type (
	Service = crud.Service[models.Feature, Input]
	Handler = crud.Handler[models.Feature, Input]
)

type Input struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Icon        *models.MediaRef `json:"icon"`
	Active      *bool            `json:"active"`
	Order       *int             `json:"order"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("title", in.Title)
	c.MaxLen("title", in.Title, 120)
	c.Required("description", in.Description)
	c.MaxLen("description", in.Description, 1000)
	c.Media("icon", in.Icon, true)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

func Resource() crud.Resource[models.Feature, Input] {
	return crud.Resource[models.Feature, Input]{
		Name:         "feature",
		Plural:       "features",
		Collection:   Collection,
		SearchFields: []string{"title", "description"},
		Filters:      []crud.Filter{{Param: "active", Field: "active", Bool: true}},
		OrderField:   "order",
		Defaults:     func() models.Feature { return models.Feature{Active: true} },
		Apply: func(f *models.Feature, in Input) {
			schema.SetTrim(&f.Title, in.Title)
			schema.Set(&f.Description, in.Description)
			schema.Set(&f.Icon, in.Icon)
			schema.Set(&f.Active, in.Active)
			schema.Set(&f.Order, in.Order)
		},
		Base: func(f *models.Feature) *models.Base { return &f.Base },
		Slug: &crud.SlugRule[models.Feature]{
			Source: func(f *models.Feature) string { return f.Title },
			Target: func(f *models.Feature) *string { return &f.Slug },
		},
		Order: func(f *models.Feature) *int { return &f.Order },
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}
