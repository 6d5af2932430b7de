// Package steps is the admin API for the study-abroad process steps.
package steps

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

const Collection = "study_steps"

type (
	Service = crud.Service[models.Step, Input]
	Handler = crud.Handler[models.Step, Input]
)

type Input struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Icon        *models.MediaRef `json:"icon"`
	StepNumber  *int             `json:"stepNumber"`
	Active      *bool            `json:"active"`
	Order       *int             `json:"order"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("title", in.Title)
	c.MaxLen("title", in.Title, 200)
	c.Required("description", in.Description)
	c.MaxLen("description", in.Description, 2000)
	c.Media("icon", in.Icon, false)
	schema.Present(c, "stepNumber", in.StepNumber)
	c.IntRange("stepNumber", in.StepNumber, 1, 50)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

func Resource() crud.Resource[models.Step, Input] {
	return crud.Resource[models.Step, Input]{
		Name:         "step",
		Plural:       "steps",
		Collection:   Collection,
		SearchFields: []string{"title", "description"},
		Filters:      []crud.Filter{{Param: "active", Field: "active", Bool: true}},
		OrderField:   "order",
		Defaults:     func() models.Step { return models.Step{Active: true} },
		Apply: func(s *models.Step, in Input) {
			schema.SetTrim(&s.Title, in.Title)
			schema.Set(&s.Description, in.Description)
			schema.Set(&s.Icon, in.Icon)
			schema.Set(&s.StepNumber, in.StepNumber)
			schema.Set(&s.Active, in.Active)
			schema.Set(&s.Order, in.Order)
		},
		Base: func(s *models.Step) *models.Base { return &s.Base },
		Slug: &crud.SlugRule[models.Step]{
			Source: func(s *models.Step) string { return s.Title },
			Target: func(s *models.Step) *string { return &s.Slug },
		},
		Order: func(s *models.Step) *int { return &s.Order },
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}
