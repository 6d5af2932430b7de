// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/edupath/internal/app/system/respond"
)

// Handler is the errors feature handler. It serves the JSON bodies for
// requests the router cannot match.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers requests for routes that do not exist.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.NotFound(w, "no route for "+r.Method+" "+r.URL.Path)
}

// MethodNotAllowed answers a known route called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path)
}
