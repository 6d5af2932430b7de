// Package uploads is the admin API for image upload records. Files live on
// the external image host; only their metadata is stored here.
package uploads

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const Collection = "uploads"

// MaxSize is the largest file the image host accepts.
const MaxSize = 10 << 20

type (
	Service = crud.Service[models.Upload, Input]
	Handler = crud.Handler[models.Upload, Input]
)

// Input is the create/update payload. UserID defaults to the signed-in user.
type Input struct {
	UserID      *string `json:"userId"`
	FileName    *string `json:"fileName"`
	URL         *string `json:"url"`
	ContentType *string `json:"contentType"`
	Size        *int64  `json:"size"`
	Alt         *string `json:"alt"`
}

func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.ObjectID("userId", in.UserID)
	c.Required("fileName", in.FileName)
	c.MaxLen("fileName", in.FileName, 255)
	c.Required("url", in.URL)
	c.URL("url", in.URL)
	c.MaxLen("contentType", in.ContentType, 100)
	if in.ContentType != nil && *in.ContentType != "" && !strings.HasPrefix(strings.TrimSpace(*in.ContentType), "image/") {
		c.Add("contentType", "must be an image type")
	}
	schema.Present(c, "size", in.Size)
	c.NonNegative("size", in.Size)
	if in.Size != nil && *in.Size > MaxSize {
		c.Add("size", "must be at most %d bytes", MaxSize)
	}
	c.MaxLen("alt", in.Alt, 300)
	return c.Errors()
}

func Resource() crud.Resource[models.Upload, Input] {
	return crud.Resource[models.Upload, Input]{
		Name:         "upload",
		Plural:       "uploads",
		Collection:   Collection,
		SearchFields: []string{"file_name", "alt"},
		Filters:      []crud.Filter{{Param: "userId", Field: "user_id", ID: true}},
		Apply:        apply,
		Base:         func(u *models.Upload) *models.Base { return &u.Base },
		Derive: func(ctx context.Context, prev, next *models.Upload, _ time.Time) error {
			if prev != nil {
				next.PublicID = prev.PublicID
				return nil
			}
			next.PublicID = uuid.NewString()
			if next.UserID == nil {
				if u, ok := auth.UserFromContext(ctx); ok {
					if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
						next.UserID = &oid
					}
				}
			}
			return nil
		},
		UniqueFields: map[string]string{"public_id": "publicId"},
	}
}

func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

func NewHandler(svc *Service, d crud.Deps) *Handler {
	return crud.NewHandler(svc, d.AuditLog, d.Log, d.Options)
}

func apply(u *models.Upload, in Input) {
	if in.UserID != nil {
		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*in.UserID)); err == nil {
			u.UserID = &oid
		} else {
			u.UserID = nil
		}
	}
	schema.SetTrim(&u.FileName, in.FileName)
	schema.SetTrim(&u.URL, in.URL)
	schema.SetTrim(&u.ContentType, in.ContentType)
	schema.Set(&u.Size, in.Size)
	schema.SetTrim(&u.Alt, in.Alt)
}
