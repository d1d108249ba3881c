package domain

import "time"

// ExtractionRecord is the archive row stored per processed document.
type ExtractionRecord struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	WordCount int       `json:"word_count"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
}
