// Package slides is the admin API for the home page hero slides.
package slides

import (
	"context"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

const Collection = "slides"

type (
	Service = crud.Service[models.Slide, Input]
	Handler = crud.Handler[models.Slide, Input]
)

type Input struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Image    *string `json:"image"`
	CTALabel *string `json:"ctaLabel"`
	CTALink  *string `json:"ctaLink"`
	Active   *bool   `json:"active"`
	Order    *int    `json:"order"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("title", in.Title)
	c.MaxLen("title", in.Title, 160)
	c.MaxLen("subtitle", in.Subtitle, 300)
	c.Required("image", in.Image)
	c.URL("image", in.Image)
	c.MaxLen("ctaLabel", in.CTALabel, 40)
	c.Link("ctaLink", in.CTALink)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

func Resource() crud.Resource[models.Slide, Input] {
	return crud.Resource[models.Slide, Input]{
		Name:         "slide",
		Plural:       "slides",
		Collection:   Collection,
		SearchFields: []string{"title", "subtitle"},
		Filters:      []crud.Filter{{Param: "active", Field: "active", Bool: true}},
		OrderField:   "order",
		Defaults:     func() models.Slide { return models.Slide{Active: true} },
		Apply: func(s *models.Slide, in Input) {
			schema.SetTrim(&s.Title, in.Title)
			schema.SetTrim(&s.Subtitle, in.Subtitle)
			schema.SetTrim(&s.Image, in.Image)
			schema.SetTrim(&s.CTALabel, in.CTALabel)
			schema.SetTrim(&s.CTALink, in.CTALink)
			schema.Set(&s.Active, in.Active)
			schema.Set(&s.Order, in.Order)
		},
		Base: func(s *models.Slide) *models.Base { return &s.Base },
		Slug: &crud.SlugRule[models.Slide]{
			Source: func(s *models.Slide) string { return s.Title },
			Target: func(s *models.Slide) *string { return &s.Slug },
		},
		Order: func(s *models.Slide) *int { return &s.Order },
		Derive: func(_ context.Context, _, next *models.Slide, _ time.Time) error {
			// A button needs both its label and its target.
			if (next.CTALabel == "") != (next.CTALink == "") {
				return schema.Field("ctaLink", "ctaLabel and ctaLink must be set together")
			}
			return nil
		},
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}
