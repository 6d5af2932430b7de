// Package offices is the admin API for branch offices. Offices have no slug;
// several can share a city.
package offices

import (
	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

const Collection = "offices"

type (
	Service = crud.Service[models.Office, Input]
	Handler = crud.Handler[models.Office, Input]
)

type Input struct {
	Name     *string `json:"name"`
	City     *string `json:"city"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	MapEmbed *string `json:"mapEmbed"`
	Hours    *string `json:"hours"`
	Active   *bool   `json:"active"`
	Order    *int    `json:"order"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.MaxLen("name", in.Name, 120)
	c.Required("city", in.City)
	c.MaxLen("city", in.City, 80)
	c.Required("address", in.Address)
	c.MaxLen("address", in.Address, 300)
	c.Required("phone", in.Phone)
	c.MaxLen("phone", in.Phone, 40)
	c.Email("email", in.Email)
	c.URL("mapEmbed", in.MapEmbed)
	c.MaxLen("hours", in.Hours, 120)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

func Resource() crud.Resource[models.Office, Input] {
	return crud.Resource[models.Office, Input]{
		Name:         "office",
		Plural:       "offices",
		Collection:   Collection,
		SearchFields: []string{"name", "city", "address"},
		Filters: []crud.Filter{
			{Param: "city", Field: "city"},
			{Param: "active", Field: "active", Bool: true},
		},
		OrderField: "order",
		Defaults:   func() models.Office { return models.Office{Active: true} },
		Apply: func(o *models.Office, in Input) {
			schema.SetTrim(&o.Name, in.Name)
			schema.SetTrim(&o.City, in.City)
			schema.SetTrim(&o.Address, in.Address)
			schema.SetTrim(&o.Phone, in.Phone)
			schema.SetTrim(&o.Email, in.Email)
			schema.SetTrim(&o.MapEmbed, in.MapEmbed)
			schema.SetTrim(&o.Hours, in.Hours)
			schema.Set(&o.Active, in.Active)
			schema.Set(&o.Order, in.Order)
		},
		Base:  func(o *models.Office) *models.Base { return &o.Base },
		Order: func(o *models.Office) *int { return &o.Order },
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}
