package crud_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/edupath/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var contentAccess = crud.Access{
	Read:   []string{models.RoleAdmin, models.RoleSupport},
	Write:  []string{models.RoleAdmin, models.RoleSupport},
	Delete: []string{models.RoleAdmin},
}

func newNoteRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newNoteService(t)
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test", "", time.Hour, false, false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	h := crud.NewHandler(svc, nil, zap.NewNop(), crud.Options{})
	r := chi.NewRouter()
	r.Mount("/api/notes", crud.Routes(h, sm, contentAccess))
	return r
}

type noteEnvelope struct {
	Success bool `json:"success"`
	Note    note `json:"note"`
}

type listEnvelope struct {
	Success    bool   `json:"success"`
	Notes      []note `json:"notes"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"totalPages"`
}

func do(t *testing.T, h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateGetUpdateDelete(t *testing.T) {
	h := newNoteRouter(t)
	admin := testutil.AdminUser()

	rec := do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", map[string]any{
		"title": "Study in Canada", "body": "short", "status": "draft",
	}, admin))
	rec.AssertStatus(t, http.StatusCreated)
	var created noteEnvelope
	rec.Decode(t, &created)
	if !created.Success || created.Note.Slug != "study-in-canada" {
		t.Fatalf("created = %+v", created)
	}
	id := created.Note.ID.Hex()
	rec.AssertContains(t, `"id":"`+id+`"`)

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "GET", "/api/notes/"+id, nil, admin))
	rec.AssertStatus(t, http.StatusOK)

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "PATCH", "/api/notes/"+id, map[string]any{"status": "published"}, admin))
	rec.AssertStatus(t, http.StatusOK)
	var patched noteEnvelope
	rec.Decode(t, &patched)
	if patched.Note.Status != "published" || patched.Note.PublishedAt == nil {
		t.Errorf("patched = %+v", patched.Note)
	}

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "PUT", "/api/notes/"+id, map[string]any{"title": "Study in Canada 2025"}, admin))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"slug":"study-in-canada-2025"`)

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "DELETE", "/api/notes/"+id, nil, admin))
	rec.AssertStatus(t, http.StatusOK)
	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "DELETE", "/api/notes/"+id, nil, admin))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, `"success":false`)
}

func TestHandler_ValidationErrors(t *testing.T) {
	h := newNoteRouter(t)
	admin := testutil.AdminUser()

	rec := do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", map[string]any{"title": ""}, admin))
	rec.AssertStatus(t, http.StatusBadRequest)
	var body respond.ErrorBody
	rec.Decode(t, &body)
	if body.Success || len(body.Details) == 0 || body.Details[0].Field != "title" {
		t.Errorf("body = %+v", body)
	}

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", map[string]any{"title": "x", "bogus": 1}, admin))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, `"field":"bogus"`)

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", `{"title":`, admin))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandler_NotFound(t *testing.T) {
	h := newNoteRouter(t)
	admin := testutil.AdminUser()

	for _, id := range []string{"nope", "64b000000000000000000000"} {
		rec := do(t, h, testutil.NewAuthenticatedRequest(t, "GET", "/api/notes/"+id, nil, admin))
		rec.AssertStatus(t, http.StatusNotFound)
		rec.AssertContains(t, "note not found")
	}
}

func TestHandler_ListPaging(t *testing.T) {
	h := newNoteRouter(t)
	admin := testutil.AdminUser()

	for i := 0; i < 25; i++ {
		rec := do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", map[string]any{"title": "Item"}, admin))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := do(t, h, testutil.NewAuthenticatedRequest(t, "GET", "/api/notes?page=2&limit=10", nil, admin))
	rec.AssertStatus(t, http.StatusOK)
	var got listEnvelope
	rec.Decode(t, &got)
	if len(got.Notes) != 10 || got.TotalPages != 3 || got.Total != 25 || got.Page != 2 || got.Limit != 10 {
		t.Errorf("list = items %d, page %d, limit %d, total %d, totalPages %d",
			len(got.Notes), got.Page, got.Limit, got.Total, got.TotalPages)
	}

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "GET", "/api/notes?search=zzz", nil, admin))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"notes":[]`)
}

func TestHandler_Access(t *testing.T) {
	h := newNoteRouter(t)

	rec := do(t, h, testutil.NewRequest(t, "GET", "/api/notes", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "GET", "/api/notes", nil, testutil.PlainUser()))
	rec.AssertStatus(t, http.StatusForbidden)

	support := testutil.SupportUser()
	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", map[string]any{"title": "By support"}, support))
	rec.AssertStatus(t, http.StatusCreated)
	var created noteEnvelope
	rec.Decode(t, &created)

	rec = do(t, h, testutil.NewAuthenticatedRequest(t, "DELETE", "/api/notes/"+created.Note.ID.Hex(), nil, support))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandler_Reorder(t *testing.T) {
	h := newNoteRouter(t)
	admin := testutil.AdminUser()

	var ids []string
	for _, title := range []string{"A", "B"} {
		rec := do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes", map[string]any{"title": title}, admin))
		var env noteEnvelope
		rec.Decode(t, &env)
		ids = append(ids, env.Note.ID.Hex())
	}
	rec := do(t, h, testutil.NewAuthenticatedRequest(t, "POST", "/api/notes/reorder", map[string]any{"ids": []string{ids[1], ids[0]}}, admin))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"updated":2`)
}
