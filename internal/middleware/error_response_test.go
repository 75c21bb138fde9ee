package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/personstore/internal/model"
)

// TestWriteErrorResponse は統一エラーフォーマットでレスポンスが書き込まれることを検証する。
func TestWriteErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorResponse(w, http.StatusNotFound, model.NewPersonNotFoundError(1))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body ErrorResponseBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body.Code != model.ErrCodePersonNotFound {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodePersonNotFound)
	}
	if body.Category != "person" {
		t.Errorf("category = %q, want person", body.Category)
	}
	if body.Action == "" {
		t.Error("expected non-empty action")
	}
}

// TestWriteInternalServerError は内部エラーの統一レスポンスを検証する。
func TestWriteInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteInternalServerError(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	var body ErrorResponseBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body.Code)
	}
	if body.Category != "system" {
		t.Errorf("category = %q, want system", body.Category)
	}
}
