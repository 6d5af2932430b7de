package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/validators"
	"github.com/dalemusser/edupath/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{
		"blogs", "events", "partners", "awards", "study_steps", "features", "slides",
		"offices", "event_registrations", "users", "uploads", "site_settings", "audit_events",
	} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators(t *testing.T) {
	db := setup(t)
	now := time.Now().UTC()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{"blog ok", "blogs", bson.M{"title": "Visa Guide", "slug": "visa-guide", "content": "x", "status": "draft"}, false},
		{"blog missing slug", "blogs", bson.M{"title": "Visa Guide", "content": "x", "status": "draft"}, true},
		{"blog bad status", "blogs", bson.M{"title": "T", "slug": "t", "content": "x", "status": "live"}, true},
		{"blog bad slug", "blogs", bson.M{"title": "T", "slug": "Not A Slug", "content": "x", "status": "draft"}, true},
		{"event ok", "events", bson.M{"title": "Fair", "slug": "fair", "starts_at": now, "status": "published", "capacity": 50}, false},
		{"event negative capacity", "events", bson.M{"title": "Fair", "slug": "fair-2", "starts_at": now, "status": "draft", "capacity": -1}, true},
		{"step out of range", "study_steps", bson.M{"title": "Apply", "slug": "apply", "step_number": 51}, true},
		{"partner bad logo kind", "partners", bson.M{"name": "MIT", "slug": "mit", "legacy_id": 1, "logo": bson.M{"kind": "svg", "value": "x"}}, true},
		{"registration ok", "event_registrations", bson.M{
			"event_id": primitive.NewObjectID(), "name": "Asha", "email": "asha@example.com",
			"status": "pending", "payment_status": "pending", "registration_date": now,
		}, false},
		{"registration bad payment", "event_registrations", bson.M{
			"event_id": primitive.NewObjectID(), "name": "Asha", "email": "asha@example.com",
			"status": "pending", "payment_status": "owed", "registration_date": now,
		}, true},
		{"user bad role", "users", bson.M{"name": "A", "email": "a@x.io", "email_ci": "a@x.io", "role": "member"}, true},
		{"user ok", "users", bson.M{"name": "A", "email": "a@x.io", "email_ci": "a@x.io", "role": "ADMIN"}, false},
		{"upload negative size", "uploads", bson.M{"public_id": "p", "file_name": "a.png", "url": "https://x.io/a.png", "size": -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := testutil.TestContext()
			defer cancel()
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error inserting into %s", tt.coll)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("insert into %s failed: %v", tt.coll, err)
			}
		})
	}
}
