package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-text-pipeline/internal/service"
)

func newPDFRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "sample.pdf")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pdf/words", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestPDFHandlerMissingFile(t *testing.T) {
	h := NewPDFHandler(service.NewPDFExtractor(&noopLogger{}), nil, &noopLogger{})

	req := newPDFRequest(t, "wrong-field", []byte("%PDF-1.4"))
	rr := httptest.NewRecorder()
	h.Words(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestPDFHandlerEmptyUpload(t *testing.T) {
	h := NewPDFHandler(service.NewPDFExtractor(&noopLogger{}), nil, &noopLogger{})

	req := newPDFRequest(t, "file", nil)
	rr := httptest.NewRecorder()
	h.Words(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestPDFHandlerGarbageUpload(t *testing.T) {
	h := NewPDFHandler(service.NewPDFExtractor(&noopLogger{}), nil, &noopLogger{})

	req := newPDFRequest(t, "file", []byte("this is not a pdf"))
	rr := httptest.NewRecorder()
	h.Words(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
