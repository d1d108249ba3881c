package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/service"

	"github.com/google/uuid"
)

// PDFHandler handles PDF upload and word extraction requests.
type PDFHandler struct {
	extractor *service.PDFExtractor
	archive   domain.ExtractionRepository
	logger    domain.Logger
}

// NewPDFHandler creates a new PDF handler. archive may be nil when no
// extraction store is configured.
func NewPDFHandler(extractor *service.PDFExtractor, archive domain.ExtractionRepository, logger domain.Logger) *PDFHandler {
	return &PDFHandler{
		extractor: extractor,
		archive:   archive,
		logger:    logger,
	}
}

// Words accepts a multipart PDF upload under the "file" field and returns
// the cleaned word list.
func (h *PDFHandler) Words(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if len(pdfBytes) == 0 {
		writeError(w, http.StatusBadRequest, "empty upload")
		return
	}

	result, err := h.extractor.ExtractWords(pdfBytes)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("PDF processed",
		"filename", header.Filename,
		"pages", result.Metadata.PageCount,
		"words", result.NWords,
	)

	if h.archive != nil {
		// Archival is best effort; the response doesn't wait on it.
		record := &domain.ExtractionRecord{
			ID:        uuid.NewString(),
			Filename:  header.Filename,
			WordCount: result.NWords,
			PageCount: result.Metadata.PageCount,
			CreatedAt: time.Now().UTC(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.archive.Save(ctx, record); err != nil {
				h.logger.Warn("Failed to archive extraction", "error", err, "id", record.ID)
			}
		}()
	}

	writeJSON(w, http.StatusOK, result)
}
