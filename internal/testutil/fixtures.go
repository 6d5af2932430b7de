package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts documents directly, bypassing services, so tests can set
// up state the API would refuse to create (archived records, fixed slugs).
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database.
func (f *Fixtures) DB() *mongo.Database { return f.db }

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

func base() models.Base {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Base{ID: primitive.NewObjectID(), CreatedAt: now, UpdatedAt: now}
}

// CreateBlog inserts a blog with the given slug and status.
func (f *Fixtures) CreateBlog(ctx context.Context, title, slug, status string) models.Blog {
	f.t.Helper()
	b := models.Blog{
		Base:     base(),
		Title:    title,
		Slug:     slug,
		Excerpt:  "Excerpt for " + title,
		Content:  "Some **markdown** content.",
		Author:   "Test Author",
		Category: models.BlogCategories[0],
		Tags:     []string{},
		Status:   status,
		ReadTime: "1 min read",
	}
	if status == models.StatusPublished {
		at := b.CreatedAt
		b.PublishedAt = &at
	}
	f.insert(ctx, "blogs", b)
	return b
}

// CreateEvent inserts an event starting a week from now.
func (f *Fixtures) CreateEvent(ctx context.Context, title, slug, status string) models.Event {
	f.t.Helper()
	e := models.Event{
		Base:     base(),
		Title:    title,
		Slug:     slug,
		Location: "Kathmandu",
		StartsAt: time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Millisecond),
		Status:   status,
	}
	if status == models.StatusPublished {
		at := e.CreatedAt
		e.PublishedAt = &at
	}
	f.insert(ctx, "events", e)
	return e
}

// CreatePartner inserts an active partner.
func (f *Fixtures) CreatePartner(ctx context.Context, name, slug string, legacyID int) models.Partner {
	f.t.Helper()
	p := models.Partner{
		Base:     base(),
		LegacyID: legacyID,
		Name:     name,
		Slug:     slug,
		Category: "University",
		Country:  "Canada",
		Logo:     models.LabelRef("🎓"),
		Active:   true,
	}
	f.insert(ctx, "partners", p)
	return p
}

// CreateUser inserts a user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()
	u := models.User{
		Base:    base(),
		Name:    name,
		Email:   email,
		EmailCI: text.Fold(email),
		Role:    role,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateUpload inserts an upload owned by userID.
func (f *Fixtures) CreateUpload(ctx context.Context, userID primitive.ObjectID, fileName string) models.Upload {
	f.t.Helper()
	id := userID
	u := models.Upload{
		Base:        base(),
		PublicID:    primitive.NewObjectID().Hex(),
		UserID:      &id,
		FileName:    fileName,
		URL:         "https://img.example.com/" + fileName,
		ContentType: "image/png",
		Size:        1024,
	}
	f.insert(ctx, "uploads", u)
	return u
}
