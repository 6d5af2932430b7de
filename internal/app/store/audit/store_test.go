package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/store/audit"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/testutil"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(content.Static(db))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	for _, typ := range []string{"blog_created", "blog_updated", "partner_created"} {
		res := "blog"
		if typ == "partner_created" {
			res = "partner"
		}
		if err := store.Log(ctx, audit.Event{
			Category:   audit.CategoryAdmin,
			EventType:  typ,
			Resource:   res,
			ResourceID: "abc",
			ActorID:    "actor-1",
			IP:         "10.0.0.1",
		}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	events, err := store.ForResource(ctx, "blog", "abc", 10)
	if err != nil {
		t.Fatalf("ForResource failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 blog events, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Timestamp.Before(before) {
		t.Error("expected timestamp to be set")
	}

	n, err := store.Count(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}

	page, err := store.Query(ctx, audit.QueryFilter{Limit: 1, Offset: 1})
	if err != nil || len(page) != 1 {
		t.Errorf("Query page = %d, %v", len(page), err)
	}
}

func TestStore_PurgeBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(content.Static(db))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	for _, ts := range []time.Time{now.Add(-48 * time.Hour), now.Add(-25 * time.Hour), now.Add(-time.Hour)} {
		if err := store.Log(ctx, audit.Event{Category: audit.CategoryAdmin, EventType: "blog_updated", Resource: "blog", Timestamp: ts}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	n, err := store.PurgeBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeBefore failed: %v", err)
	}
	if n != 2 {
		t.Errorf("purged %d, want 2", n)
	}
	left, _ := store.Count(ctx, audit.QueryFilter{})
	if left != 1 {
		t.Errorf("remaining = %d, want 1", left)
	}
}
