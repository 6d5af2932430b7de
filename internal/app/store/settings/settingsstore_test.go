package settingsstore_test

import (
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/store/content"
	settingsstore "github.com/dalemusser/edupath/internal/app/store/settings"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/edupath/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Get_NoSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(content.Static(db))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName: got %q, want default %q", settings.SiteName, models.DefaultSiteName)
	}
	if !settings.ID.IsZero() {
		t.Errorf("defaults should have no id, got %v", settings.ID)
	}

	exists, err := store.Exists(ctx)
	if err != nil || exists {
		t.Errorf("Exists = %v, %v; want false", exists, err)
	}
}

func TestStore_Save_UpsertsSingleDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(content.Static(db))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := primitive.NewObjectID()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first, err := store.Save(ctx, models.SiteSettings{
		SiteName:    "EduPath Nepal",
		Tagline:     "Study abroad, made simple",
		Social:      models.SocialLinks{Facebook: "https://facebook.com/edupath"},
		UpdatedByID: &actor,
	}, now)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first.ID.IsZero() {
		t.Fatal("expected an id after upsert")
	}

	second, err := store.Save(ctx, models.SiteSettings{SiteName: "EduPath"}, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second save created a new document: %v != %v", second.ID, first.ID)
	}

	n, err := db.Collection(settingsstore.Collection).CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("documents = %d, want 1", n)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SiteName != "EduPath" || got.Tagline != "" {
		t.Errorf("got %+v, want replaced fields", got)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(now.Add(time.Minute)) {
		t.Errorf("UpdatedAt = %v", got.UpdatedAt)
	}
}
