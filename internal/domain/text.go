package domain

// TextRequest is the payload for the text endpoints.
type TextRequest struct {
	Text string `json:"text"`
}

// NormalizeResponse carries de-hyphenated, whitespace-normalized text.
type NormalizeResponse struct {
	Text string `json:"text"`
}

// WordsResponse carries the cleaned word list of a document or text body.
// Words is capped; NWords is the total before capping.
type WordsResponse struct {
	NWords int      `json:"n_words"`
	Words  []string `json:"words"`
}

// PDFMetadata contains document metadata extracted alongside the text.
type PDFMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	PageCount int    `json:"page_count"`
}

// PDFWordsResult is the outcome of extracting and cleaning a PDF.
type PDFWordsResult struct {
	NWords   int         `json:"n_words"`
	Words    []string    `json:"words"`
	Metadata PDFMetadata `json:"metadata"`
}
