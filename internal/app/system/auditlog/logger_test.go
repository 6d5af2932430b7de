package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/edupath/internal/app/store/audit"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/auditlog"
	"github.com/dalemusser/edupath/internal/testutil"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/api/blogs", nil)

	logger.Record(ctx, audit.Event{EventType: "test"})
	logger.Mutation(ctx, req, "blog", audit.ActionCreated, "x", nil)
	logger.SettingsUpdated(ctx, req)
	logger.RegistrationSubmitted(ctx, req, "r", "e")
}

func TestLogger_Mutation_RecordsActor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(content.Static(db))
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Admin: auditlog.DB})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.AdminUser()
	req := testutil.WithUser(httptest.NewRequest("POST", "/api/blogs", nil), admin)
	req.RemoteAddr = "203.0.113.7:41000"
	req.Header.Set("X-Forwarded-For", "198.51.100.99")

	logger.Mutation(ctx, req, "blog", audit.ActionCreated, "b1", map[string]string{"slug": "study-in-canada"})

	events, err := store.ForResource(ctx, "blog", "b1", 10)
	if err != nil {
		t.Fatalf("ForResource: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.EventType != "blog_created" || e.ActorID != admin.ID || e.IP != "203.0.113.7" {
		t.Errorf("event = %+v", e)
	}
	if e.Details["slug"] != "study-in-canada" {
		t.Errorf("details = %v", e.Details)
	}
}

func TestLogger_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(content.Static(db))
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Admin: auditlog.Off, Public: auditlog.Log})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := httptest.NewRequest("POST", "/", nil)
	logger.Mutation(ctx, req, "blog", audit.ActionDeleted, "b1", nil)
	logger.RegistrationSubmitted(ctx, req, "r1", "e1")

	n, err := store.Count(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected no stored events, got %d", n)
	}
}
