// Package users is the admin API for user accounts. Accounts are created by
// the external auth service on sign-in; admins manage roles here.
package users

import (
	"context"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/store/queries/uploadcounts"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const Collection = "users"

type (
	Service = crud.Service[models.User, Input]
	Handler = crud.Handler[models.User, Input]
)

// Input is the create/update payload. EmailVerified toggles the verified
// timestamp: true stamps it once, false clears it.
type Input struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Role          *string `json:"role"`
	Image         *string `json:"image"`
	EmailVerified *bool   `json:"emailVerified"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("name", in.Name)
	c.MaxLen("name", in.Name, 120)
	c.Required("email", in.Email)
	c.Email("email", in.Email)
	c.MaxLen("email", in.Email, 254)
	c.Enum("role", in.Role, models.UserRoles...)
	c.URL("image", in.Image)
	return c.Errors()
}

// Resource describes users to the CRUD service. Listed and fetched users
// carry their upload count.
func Resource(src content.Source) crud.Resource[models.User, Input] {
	return crud.Resource[models.User, Input]{
		Name:         "user",
		Plural:       "users",
		Collection:   Collection,
		SearchFields: []string{"name", "email"},
		Filters:      []crud.Filter{{Param: "role", Field: "role", Values: models.UserRoles}},
		Defaults:     func() models.User { return models.User{Role: models.RoleUser} },
		Apply:        apply,
		Base:         func(u *models.User) *models.Base { return &u.Base },
		Derive: func(_ context.Context, _, next *models.User, now time.Time) error {
			if next.EmailVerified != nil && next.EmailVerified.IsZero() {
				at := now
				next.EmailVerified = &at
			}
			return nil
		},
		Decorate: func(ctx context.Context, docs []models.User) error {
			db, err := src.Handle(ctx)
			if err != nil {
				return err
			}
			ids := make([]primitive.ObjectID, len(docs))
			for i := range docs {
				ids[i] = docs[i].ID
			}
			counts, err := uploadcounts.PerUser(ctx, db, ids)
			if err != nil {
				return err
			}
			for i := range docs {
				docs[i].UploadCount = counts[docs[i].ID]
			}
			return nil
		},
		UniqueFields: map[string]string{"email_ci": "email"},
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(src), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}

func apply(u *models.User, in Input) {
	schema.SetTrim(&u.Name, in.Name)
	if in.Email != nil {
		schema.SetTrim(&u.Email, in.Email)
		u.EmailCI = text.Fold(u.Email)
	}
	schema.SetTrim(&u.Role, in.Role)
	schema.SetTrim(&u.Image, in.Image)
	if in.EmailVerified != nil {
		switch {
		case !*in.EmailVerified:
			u.EmailVerified = nil
		case u.EmailVerified == nil:
			// Stamped with the write time in Derive.
			u.EmailVerified = &time.Time{}
		}
	}
}
