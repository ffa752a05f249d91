package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestGetParamColonPrefix(t *testing.T) {
	r := httptest.NewRequest("GET", "/inquiries?:id=42", nil)
	if got := getParam(r, "id"); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
}

func TestGetParamPlainQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/inquiries?id=7", nil)
	if got := getParam(r, "id"); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}

func TestIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/inquiries?:id=15", nil)
	id, ok := intParam(r, "id")
	if !ok || id != 15 {
		t.Fatalf("expected 15, got %d ok=%v", id, ok)
	}

	r = httptest.NewRequest("GET", "/inquiries?:id=abc", nil)
	if _, ok := intParam(r, "id"); ok {
		t.Fatal("non-numeric parameter must not parse")
	}

	r = httptest.NewRequest("GET", "/inquiries", nil)
	if _, ok := intParam(r, "id"); ok {
		t.Fatal("missing parameter must not parse")
	}
}

func TestWriteJSONEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, 200, "OK", map[string]int{"id": 1})

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Message != "OK" || body.Data == nil || body.Errors != nil {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, 400, "Validation failed", "title is required")

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Message != "Validation failed" || len(body.Errors) != 1 || body.Data != nil {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}
