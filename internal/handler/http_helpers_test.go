package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "pdf-text-pipeline/pkg/errors"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusTeapot, "nope")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type application/json, got %s", ct)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"nope"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusCreated, map[string]int{"n": 1})

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"n":1}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteServiceErrorMapsStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("missing"), http.StatusNotFound},
		{"upstream", apperrors.NewUpstreamError("remote down", nil), http.StatusBadGateway},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, &noopLogger{}, tt.err)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
