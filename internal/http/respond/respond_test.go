package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "DEVELOPER_NOT_FOUND", "Developer not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: want 404 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: got %q", ct)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Errors) != 1 || env.Errors[0].Code != "DEVELOPER_NOT_FOUND" || env.Errors[0].Message != "Developer not found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorsWithoutItems(t *testing.T) {
	rec := httptest.NewRecorder()
	Errors(rec, http.StatusBadRequest)

	if got := rec.Body.String(); got != "{\"errors\":[]}\n" {
		t.Fatalf("body: got %q", got)
	}
}

func TestJSONAndEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, []int{})
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("body: got %q", got)
	}

	rec = httptest.NewRecorder()
	Empty(rec, http.StatusOK)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("empty: got %d %q", rec.Code, rec.Body.String())
	}
}
