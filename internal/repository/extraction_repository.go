package repository

import (
	"context"
	"fmt"

	"pdf-text-pipeline/internal/domain"
)

const extractionsTable = "extractions"

// SupabaseExtractionRepository persists one archive row per processed
// document.
type SupabaseExtractionRepository struct {
	client *SupabaseClient
	logger domain.Logger
}

// NewSupabaseExtractionRepository creates a new extraction repository
func NewSupabaseExtractionRepository(client *SupabaseClient, logger domain.Logger) *SupabaseExtractionRepository {
	return &SupabaseExtractionRepository{
		client: client,
		logger: logger,
	}
}

// Save inserts the extraction record.
func (r *SupabaseExtractionRepository) Save(ctx context.Context, record *domain.ExtractionRecord) error {
	client := r.client.Client()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From(extractionsTable).Insert(record, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert extraction record: %w", err)
	}

	r.logger.Debug("Extraction record saved", "id", record.ID, "filename", record.Filename)
	return nil
}
