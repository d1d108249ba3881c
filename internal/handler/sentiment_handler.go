package handler

import (
	"net/http"

	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/service"
)

// SentimentHandler handles sentiment scoring requests.
type SentimentHandler struct {
	analyzer *service.SentimentAnalyzer
	logger   domain.Logger
}

// NewSentimentHandler creates a new sentiment handler
func NewSentimentHandler(analyzer *service.SentimentAnalyzer, logger domain.Logger) *SentimentHandler {
	return &SentimentHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Score returns the quantized sentiment label for the posted text.
func (h *SentimentHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req domain.TextRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, domain.SentimentResponse{
		Score: h.analyzer.Score(req.Text),
	})
}
