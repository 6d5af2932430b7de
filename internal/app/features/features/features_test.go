package features_test

import (
	"encoding/json"
	"testing"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/features"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/indexes"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/edupath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatures_BareStringIcon(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	require.NoError(t, indexes.EnsureAll(ctx, db, nil))
	svc := features.NewService(content.Static(db), nil)

	var in features.Input
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Expert Counsellors","description":"Ten years of experience","icon":"https://cdn.example.com/star.svg"}`), &in))
	f, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.URLRef("https://cdn.example.com/star.svg"), f.Icon)
	assert.Equal(t, "expert-counsellors", f.Slug)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"Visa Success","description":"98% approval","icon":"✈️"}`), &in))
	f, err = svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.MediaLabel, f.Icon.Kind)

	_, err = svc.Create(ctx, features.Input{})
	errs, ok := crud.AsValidation(err)
	require.True(t, ok)
	assert.True(t, errs.Has("title"))
	assert.True(t, errs.Has("icon"))
}
