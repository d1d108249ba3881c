package handler

import (
	"net/http"

	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/service"
)

// TextHandler handles raw-text normalization requests.
type TextHandler struct {
	logger domain.Logger
}

// NewTextHandler creates a new text handler
func NewTextHandler(logger domain.Logger) *TextHandler {
	return &TextHandler{logger: logger}
}

// Normalize de-hyphenates and whitespace-normalizes the posted text.
func (h *TextHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req domain.TextRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, domain.NormalizeResponse{
		Text: service.Dehyphenate(req.Text),
	})
}

// Words runs the full word pipeline over the posted text.
func (h *TextHandler) Words(w http.ResponseWriter, r *http.Request) {
	var req domain.TextRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	words := service.Words(req.Text)
	resp := domain.WordsResponse{NWords: len(words), Words: words}
	if len(resp.Words) > service.MaxWords {
		resp.Words = resp.Words[:service.MaxWords]
	}
	writeJSON(w, http.StatusOK, resp)
}
