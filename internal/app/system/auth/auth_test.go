package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "", "", time.Hour, false, false, nil); err == nil {
		t.Fatal("expected error for empty key")
	}
	sm, err := auth.NewSessionManager("", "", "", time.Hour, false, true, nil)
	if err != nil {
		t.Fatalf("ephemeral key: %v", err)
	}
	if sm.Name() != auth.DefaultSessionName {
		t.Errorf("Name() = %q", sm.Name())
	}
}

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()
	sm.RequireSignedIn(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/blogs", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newTestSessionManager(t)
	h := sm.RequireRole(models.RoleAdmin, models.RoleSupport)(okHandler())

	tests := []struct {
		name string
		user *auth.SessionUser
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"plain user", &auth.SessionUser{ID: "1", Role: models.RoleUser}, http.StatusForbidden},
		{"support", &auth.SessionUser{ID: "2", Role: models.RoleSupport}, http.StatusOK},
		{"admin lower case", &auth.SessionUser{ID: "3", Role: "admin"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/blogs", nil)
			if tt.user != nil {
				req = auth.WithUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	// Mint a cookie the way the sign-in service would.
	mint := httptest.NewRecorder()
	if err := sm.Save(mint, httptest.NewRequest("GET", "/", nil), auth.SessionUser{
		ID: "abc", Name: "Asha", Email: "asha@example.com", Role: "admin",
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cookies := mint.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no cookie written")
	}

	var got *auth.SessionUser
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/api/blogs", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "abc" || got.Role != models.RoleAdmin {
		t.Errorf("user = %+v", got)
	}
}

func TestLoadSessionUser_BadCookieIsAnonymous(t *testing.T) {
	sm := newTestSessionManager(t)
	var found bool
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if found {
		t.Error("undecodable cookie should not yield a user")
	}
}
