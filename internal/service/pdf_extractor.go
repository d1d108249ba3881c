package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/metrics"
	apperrors "pdf-text-pipeline/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// pageTimeout guards against malformed pages that hang MuPDF.
const pageTimeout = 30 * time.Second

// PDFExtractor extracts cleaned word lists from PDF documents.
type PDFExtractor struct {
	logger domain.Logger
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// ExtractWords opens a PDF from bytes, extracts the text of every page and
// runs the word pipeline over it. Pages that fail or time out contribute no
// words but do not fail the document.
func (e *PDFExtractor) ExtractWords(pdfBytes []byte) (*domain.PDFWordsResult, error) {
	if len(pdfBytes) == 0 {
		return nil, apperrors.NewValidationError("empty upload")
	}

	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, apperrors.NewValidationError("could not open PDF", err.Error())
	}
	defer doc.Close()

	meta := domain.PDFMetadata{PageCount: doc.NumPage()}
	docMeta := doc.Metadata()
	if title, ok := docMeta["title"]; ok {
		meta.Title = strings.TrimSpace(title)
	}
	if author, ok := docMeta["author"]; ok {
		meta.Author = strings.TrimSpace(author)
	}

	var parts []string
	for pageNum := 0; pageNum < meta.PageCount; pageNum++ {
		text, err := e.pageText(doc, pageNum)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", meta.PageCount, "error", err)
			continue
		}
		parts = append(parts, text)
		metrics.PagesExtracted.Inc()
	}

	words := Words(strings.Join(parts, "\n"))
	result := &domain.PDFWordsResult{
		NWords:   len(words),
		Words:    words,
		Metadata: meta,
	}
	if len(result.Words) > MaxWords {
		result.Words = result.Words[:MaxWords]
	}
	return result, nil
}

// ExtractWordsFromReader is a convenience wrapper over ExtractWords.
func (e *PDFExtractor) ExtractWordsFromReader(reader io.Reader) (*domain.PDFWordsResult, error) {
	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to read upload", err)
	}
	return e.ExtractWords(pdfBytes)
}

// pageText extracts one page with a timeout around the MuPDF call.
func (e *PDFExtractor) pageText(doc *fitz.Document, pageNum int) (string, error) {
	type pageResult struct {
		text string
		err  error
	}
	resultCh := make(chan pageResult, 1)

	go func() {
		t, err := doc.Text(pageNum)
		resultCh <- pageResult{text: t, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.text, res.err
	case <-time.After(pageTimeout):
		go func() { <-resultCh }() // drain so the goroutine can exit
		return "", fmt.Errorf("page extraction timed out after %v", pageTimeout)
	}
}
