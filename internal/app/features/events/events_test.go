package events_test

import (
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/events"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/indexes"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/edupath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newService(t *testing.T) *events.Service {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	require.NoError(t, indexes.EnsureAll(ctx, db, nil))
	return events.NewService(content.Static(db), nil)
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

var start = time.Date(2026, 11, 14, 10, 0, 0, 0, time.UTC)

func fair() events.Input {
	return events.Input{
		Title:    str("UK Education Fair"),
		Location: str("Kathmandu"),
		StartsAt: &start,
		Capacity: num(120),
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := svc.Create(ctx, fair())
	require.NoError(t, err)
	assert.Equal(t, "uk-education-fair", e.Slug)
	assert.Equal(t, models.StatusDraft, e.Status)
	assert.True(t, e.StartsAt.Equal(start))
	assert.Nil(t, e.PublishedAt)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := start.Add(-time.Hour)
	in := events.Input{Title: str("Fair"), Location: str(""), EndsAt: &before, Capacity: num(-1)}
	_, err := svc.Create(ctx, in)
	errs, ok := crud.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, errs.Has("startsAt"))
	assert.True(t, errs.Has("location"))
	assert.True(t, errs.Has("capacity"))

	in = fair()
	in.EndsAt = &before
	_, err = svc.Create(ctx, in)
	errs, ok = crud.AsValidation(err)
	require.True(t, ok)
	assert.True(t, errs.Has("endsAt"))
}

func TestUpdate_EndsAtCheckedAgainstStored(t *testing.T) {
	svc := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := svc.Create(ctx, fair())
	require.NoError(t, err)

	before := start.Add(-time.Minute)
	_, err = svc.Update(ctx, e.ID.Hex(), events.Input{EndsAt: &before})
	errs, ok := crud.AsValidation(err)
	require.True(t, ok)
	assert.True(t, errs.Has("endsAt"))

	after := start.Add(3 * time.Hour)
	e, err = svc.Update(ctx, e.ID.Hex(), events.Input{EndsAt: &after, Status: str(models.StatusPublished)})
	require.NoError(t, err)
	require.NotNil(t, e.EndsAt)
	assert.NotNil(t, e.PublishedAt)
}

func TestUpcoming(t *testing.T) {
	svc := newService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	past := start.AddDate(0, -2, 0)
	_, err := svc.Create(ctx, events.Input{Title: str("Past"), Location: str("Pokhara"), StartsAt: &past})
	require.NoError(t, err)
	_, err = svc.Create(ctx, fair())
	require.NoError(t, err)

	page, err := svc.List(ctx, crud.ListQuery{Where: events.Upcoming(start.AddDate(0, -1, 0))})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "UK Education Fair", page.Items[0].Title)

	all, err := svc.All(ctx, bson.M{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
