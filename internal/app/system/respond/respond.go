// Package respond writes the JSON envelopes every API endpoint returns.
//
// Success bodies carry "success": true plus named payload keys; error bodies
// are {"success": false, "error": "...", "details": [...]}.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/edupath/internal/app/system/schema"
)

// Body is a success envelope's payload keys.
type Body map[string]any

// ErrorBody is the error envelope.
type ErrorBody struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details []schema.FieldError `json:"details,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes {"success": true, ...body} with the given status.
func OK(w http.ResponseWriter, status int, body Body) {
	out := make(map[string]any, len(body)+1)
	for k, v := range body {
		out[k] = v
	}
	out["success"] = true
	JSON(w, status, out)
}

// Error writes an error envelope.
func Error(w http.ResponseWriter, status int, msg string, details ...schema.FieldError) {
	JSON(w, status, ErrorBody{Success: false, Error: msg, Details: details})
}

func BadRequest(w http.ResponseWriter, msg string, details schema.Errors) {
	Error(w, http.StatusBadRequest, msg, details...)
}

func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "authentication required")
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "you do not have permission to do that")
}

// Internal writes the generic 500 body. The cause is logged by the caller and
// never sent to the client.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "something went wrong, please try again")
}
