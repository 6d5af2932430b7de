// Package partners is the admin API for partner universities and institutions.
package partners

import (
	"context"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

// Collection is the partners collection name.
const Collection = "partners"

type (
	Service = crud.Service[models.Partner, Input]
	Handler = crud.Handler[models.Partner, Input]
)

// Input is the create/update payload. LegacyID is the numeric id the public
// site links with; it is assigned when omitted.
type Input struct {
	LegacyID    *int             `json:"legacyId"`
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Country     *string          `json:"country"`
	Logo        *models.MediaRef `json:"logo"`
	BrandColor  *string          `json:"brandColor"`
	Description *string          `json:"description"`
	Website     *string          `json:"website"`
	Active      *bool            `json:"active"`
	Order       *int             `json:"order"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.IntRange("legacyId", in.LegacyID, 1, 1_000_000_000)
	c.Required("name", in.Name)
	c.MaxLen("name", in.Name, 200)
	c.MaxLen("category", in.Category, 80)
	c.MaxLen("country", in.Country, 80)
	c.Media("logo", in.Logo, true)
	c.HexColor("brandColor", in.BrandColor)
	c.MaxLen("description", in.Description, 2000)
	c.URL("website", in.Website)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

// Resource describes partners to the CRUD service.
func Resource(src content.Source) crud.Resource[models.Partner, Input] {
	coll := content.New[models.Partner](src, Collection)
	return crud.Resource[models.Partner, Input]{
		Name:         "partner",
		Plural:       "partners",
		Collection:   Collection,
		SearchFields: []string{"name", "country", "category", "description"},
		Filters: []crud.Filter{
			{Param: "category", Field: "category"},
			{Param: "country", Field: "country"},
			{Param: "active", Field: "active", Bool: true},
		},
		OrderField: "order",
		Defaults:   func() models.Partner { return models.Partner{Active: true} },
		Apply:      apply,
		Base:       func(p *models.Partner) *models.Base { return &p.Base },
		Slug: &crud.SlugRule[models.Partner]{
			Source: func(p *models.Partner) string { return p.Name },
			Target: func(p *models.Partner) *string { return &p.Slug },
		},
		Order: func(p *models.Partner) *int { return &p.Order },
		Derive: func(ctx context.Context, prev, next *models.Partner, _ time.Time) error {
			if next.LegacyID != 0 {
				return nil
			}
			if prev != nil {
				next.LegacyID = prev.LegacyID
				return nil
			}
			max, err := coll.MaxInt(ctx, "legacy_id")
			if err != nil {
				return err
			}
			next.LegacyID = max + 1
			return nil
		},
		UniqueFields: map[string]string{"legacy_id": "legacyId"},
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(src), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}

func apply(p *models.Partner, in Input) {
	schema.Set(&p.LegacyID, in.LegacyID)
	schema.SetTrim(&p.Name, in.Name)
	schema.SetTrim(&p.Category, in.Category)
	schema.SetTrim(&p.Country, in.Country)
	schema.Set(&p.Logo, in.Logo)
	schema.SetTrim(&p.BrandColor, in.BrandColor)
	schema.Set(&p.Description, in.Description)
	schema.SetTrim(&p.Website, in.Website)
	schema.Set(&p.Active, in.Active)
	schema.Set(&p.Order, in.Order)
}
