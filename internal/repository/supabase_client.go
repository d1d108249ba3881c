package repository

import (
	"fmt"

	"pdf-text-pipeline/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient wraps the Supabase connection used by the extraction
// archive.
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client wrapper
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Initialize establishes the connection. Fails when URL or key is missing.
func (s *SupabaseClient) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized", "url", supabaseURL)
	return nil
}

// Client returns the underlying typed client, or nil before Initialize.
func (s *SupabaseClient) Client() *supabase.Client {
	return s.client
}
