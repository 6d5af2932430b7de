package errors_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/edupath/internal/app/features/errors"
	"github.com/go-chi/chi/v5"
)

func TestRouterFallbacks(t *testing.T) {
	h := uierrors.NewHandler()
	r := chi.NewRouter()
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
	r.Get("/things", func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		method, path string
		status       int
		contains     string
	}{
		{"GET", "/nope", http.StatusNotFound, `"success":false`},
		{"DELETE", "/things", http.StatusMethodNotAllowed, "DELETE is not allowed"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s %s: status %d, want %d", tt.method, tt.path, rec.Code, tt.status)
		}
		if !strings.Contains(rec.Body.String(), tt.contains) {
			t.Errorf("%s %s: body %q missing %q", tt.method, tt.path, rec.Body.String(), tt.contains)
		}
	}
}
