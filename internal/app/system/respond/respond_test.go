package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/edupath/internal/app/system/schema"
)

func TestOK_AddsSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusCreated, Body{"blog": map[string]string{"slug": "a"}})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["success"] != true {
		t.Errorf("success = %v", got["success"])
	}
	if _, ok := got["blog"]; !ok {
		t.Error("missing blog key")
	}
}

func TestBadRequest_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "validation failed", schema.Field("title", "is required"))

	var got ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest || got.Success || len(got.Details) != 1 || got.Details[0].Field != "title" {
		t.Errorf("got %d %+v", rec.Code, got)
	}
}

func TestInternal_IsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	Internal(rec)
	var got ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if rec.Code != 500 || got.Error == "" || got.Details != nil {
		t.Errorf("got %d %+v", rec.Code, got)
	}
}
