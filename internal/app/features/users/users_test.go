package users_test

import (
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/users"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/indexes"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/edupath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }
func flag(b bool) *bool    { return &b }

func setup(t *testing.T) (*users.Service, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	require.NoError(t, indexes.EnsureAll(ctx, db, nil))
	return users.NewService(content.Static(db), nil), testutil.NewFixtures(t, db)
}

func TestCreate_DefaultsAndUniqueEmail(t *testing.T) {
	svc, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := svc.Create(ctx, users.Input{Name: str("Sita"), Email: str("Sita@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, "sita@example.com", u.EmailCI)
	assert.Nil(t, u.EmailVerified)

	_, err = svc.Create(ctx, users.Input{Name: str("Other"), Email: str("sita@example.COM")})
	errs, ok := crud.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, errs.Has("email"))
}

func TestUpdate_RoleAndVerification(t *testing.T) {
	svc, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := svc.Create(ctx, users.Input{Name: str("Ram"), Email: str("ram@example.com")})
	require.NoError(t, err)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })
	u, err = svc.Update(ctx, u.ID.Hex(), users.Input{Role: str(models.RoleSupport), EmailVerified: flag(true)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupport, u.Role)
	require.NotNil(t, u.EmailVerified)
	assert.True(t, u.EmailVerified.Equal(now))

	svc.SetClock(func() time.Time { return now.Add(time.Hour) })
	u, err = svc.Update(ctx, u.ID.Hex(), users.Input{EmailVerified: flag(true)})
	require.NoError(t, err)
	assert.True(t, u.EmailVerified.Equal(now), "verification time is stamped once")

	u, err = svc.Update(ctx, u.ID.Hex(), users.Input{EmailVerified: flag(false)})
	require.NoError(t, err)
	assert.Nil(t, u.EmailVerified)

	_, err = svc.Update(ctx, u.ID.Hex(), users.Input{Role: str("OWNER")})
	errs, ok := crud.AsValidation(err)
	require.True(t, ok)
	assert.True(t, errs.Has("role"))
}

func TestList_UploadCountsAndRoleFilter(t *testing.T) {
	svc, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	fx.CreateUser(ctx, "Plain", "plain@example.com", models.RoleUser)
	fx.CreateUpload(ctx, admin.ID, "a.png")
	fx.CreateUpload(ctx, admin.ID, "b.png")
	fx.CreateUpload(ctx, admin.ID, "c.png")

	page, err := svc.List(ctx, crud.ListQuery{Filters: map[string]string{"role": models.RoleAdmin}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 3, page.Items[0].UploadCount)

	got, err := svc.Get(ctx, admin.ID.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.UploadCount)

	page, err = svc.List(ctx, crud.ListQuery{Search: "plain"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Zero(t, page.Items[0].UploadCount)
}
