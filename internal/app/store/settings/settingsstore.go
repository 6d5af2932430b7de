// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the settings collection name.
const Collection = "site_settings"

// singleton selects the one settings document.
var singleton = bson.M{"key": "site"}

// Store provides access to the site_settings collection, which holds a
// single document.
type Store struct {
	src content.Source
}

// New creates a new settings store.
func New(src content.Source) *Store {
	return &Store{src: src}
}

func (s *Store) coll(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.src.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(Collection), nil
}

// Get returns the site settings. If none have been saved, it returns the
// defaults.
func (s *Store) Get(ctx context.Context) (models.SiteSettings, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return models.SiteSettings{}, err
	}
	var settings models.SiteSettings
	err = c.FindOne(ctx, singleton).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SiteSettings{SiteName: models.DefaultSiteName}, nil
	}
	if err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

// Save replaces the editable settings. Uses upsert so it works whether
// settings exist or not.
func (s *Store) Save(ctx context.Context, settings models.SiteSettings, now time.Time) (models.SiteSettings, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return models.SiteSettings{}, err
	}
	settings.UpdatedAt = &now

	update := bson.M{
		"$set": bson.M{
			"key":             "site",
			"site_name":       settings.SiteName,
			"tagline":         settings.Tagline,
			"contact_email":   settings.ContactEmail,
			"contact_phone":   settings.ContactPhone,
			"whatsapp":        settings.WhatsApp,
			"address":         settings.Address,
			"social":          settings.Social,
			"updated_at":      settings.UpdatedAt,
			"updated_by_id":   settings.UpdatedByID,
			"updated_by_name": settings.UpdatedByName,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.SiteSettings
	if err := c.FindOneAndUpdate(ctx, singleton, update, opts).Decode(&out); err != nil {
		return models.SiteSettings{}, err
	}
	return out, nil
}

// Exists checks if settings have been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return false, err
	}
	count, err := c.CountDocuments(ctx, singleton)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
