// Package blogs is the admin API for blog articles.
package blogs

import (
	"context"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/richtext"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/slug"
	"github.com/dalemusser/edupath/internal/app/system/status"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

// Collection is the blogs collection name.
const Collection = "blogs"

// ExcerptLength is the length of an excerpt derived from content.
const ExcerptLength = 160

// Service and Handler are the blog instantiations of the generic CRUD types.
type (
	Service = crud.Service[models.Blog, Input]
	Handler = crud.Handler[models.Blog, Input]
)

// Input is the create/update payload. Nil fields were not sent.
type Input struct {
	Title         *string   `json:"title"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content"`
	Author        *string   `json:"author"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featuredImage"`
	Status        *string   `json:"status"`
	Order         *int      `json:"order"`
}

// Validate checks the sent fields; on create the required ones must be sent.
func (in Input) Validate(partial bool) schema.Errors {
	c := schema.NewChecker(partial)
	c.Required("title", in.Title)
	c.MaxLen("title", in.Title, 200)
	c.MaxLen("excerpt", in.Excerpt, 500)
	c.Required("content", in.Content)
	c.Required("author", in.Author)
	c.MaxLen("author", in.Author, 100)
	c.Required("category", in.Category)
	c.Enum("category", in.Category, models.BlogCategories...)
	c.Tags("tags", in.Tags, 20, 40)
	c.URL("featuredImage", in.FeaturedImage)
	c.Enum("status", in.Status, models.ContentStatuses...)
	c.IntRange("order", in.Order, 0, 1_000_000)
	return c.Errors()
}

// Resource describes blogs to the CRUD service.
func Resource() crud.Resource[models.Blog, Input] {
	return crud.Resource[models.Blog, Input]{
		Name:         "blog",
		Plural:       "blogs",
		Collection:   Collection,
		SearchFields: []string{"title", "excerpt", "author", "tags"},
		Filters: []crud.Filter{
			{Param: "status", Field: "status", Values: models.ContentStatuses},
			{Param: "category", Field: "category", Values: models.BlogCategories},
			{Param: "tag", Field: "tags"},
		},
		OrderField: "order",
		Defaults: func() models.Blog {
			return models.Blog{Status: models.StatusDraft, Tags: []string{}}
		},
		Apply: apply,
		Base:  func(b *models.Blog) *models.Base { return &b.Base },
		Slug: &crud.SlugRule[models.Blog]{
			Source: func(b *models.Blog) string { return b.Title },
			Target: func(b *models.Blog) *string { return &b.Slug },
		},
		Order:  func(b *models.Blog) *int { return &b.Order },
		Derive: derive,
	}
}

// NewService returns the blog service.
func NewService(src content.Source, logger *zap.Logger) *Service {
	return crud.NewService(src, Resource(), logger)
}

// NewHandler returns the blog HTTP handler.
func NewHandler(svc *Service, h crud.Deps) *Handler {
	return crud.NewHandler(svc, h.AuditLog, h.Log, h.Options)
}

func apply(b *models.Blog, in Input) {
	schema.SetTrim(&b.Title, in.Title)
	schema.SetTrim(&b.Excerpt, in.Excerpt)
	schema.Set(&b.Content, in.Content)
	schema.SetTrim(&b.Author, in.Author)
	schema.SetTrim(&b.Category, in.Category)
	schema.SetTags(&b.Tags, in.Tags)
	schema.SetTrim(&b.FeaturedImage, in.FeaturedImage)
	schema.SetTrim(&b.Status, in.Status)
	schema.Set(&b.Order, in.Order)
}

func derive(_ context.Context, prev, next *models.Blog, now time.Time) error {
	from := ""
	if prev != nil {
		from = prev.Status
	}
	if err := CheckStatus(prev == nil, from, next.Status); err != nil {
		return err
	}
	contentChanged := prev == nil || prev.Content != next.Content
	if contentChanged {
		next.ReadTime = slug.ReadTime(next.Content)
	}
	// A derived excerpt follows the content; a hand-written one is kept.
	if next.Excerpt == "" || (contentChanged && prev != nil &&
		next.Excerpt == prev.Excerpt && prev.Excerpt == Excerpt(prev.Content)) {
		next.Excerpt = Excerpt(next.Content)
	}
	if status.Publishing(from, next.Status) && next.PublishedAt == nil {
		at := now
		next.PublishedAt = &at
	}
	return nil
}

// CheckStatus applies the content lifecycle. New records start as draft or
// published.
func CheckStatus(creating bool, from, to string) error {
	if creating && to == models.StatusArchived {
		return schema.Field("status", "new records must start as draft or published")
	}
	return status.CheckContent(from, to)
}

// Excerpt derives a plain-text teaser from markdown content.
func Excerpt(markdown string) string {
	rendered, err := richtext.Render(markdown)
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(html.UnescapeString(richtext.PlainText(rendered))), " ")
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}
	r := []rune(text)[:ExcerptLength]
	if i := strings.LastIndexByte(string(r), ' '); i > ExcerptLength/2 {
		return string(r)[:i] + "…"
	}
	return string(r) + "…"
}
