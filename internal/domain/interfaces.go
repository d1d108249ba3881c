package domain

import "context"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetAllowedOrigins() []string

	GetOpenAIKey() string
	GetOpenAIModel() string

	GetWikidataSearchURL() string
	GetWikidataSPARQLURL() string
	GetWikidataUserAgent() string

	GetSupabaseURL() string
	GetSupabaseKey() string
}

// ChatModel is the minimal surface of an LLM chat backend the entity
// extractor needs.
type ChatModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WikidataRepository defines the lookups the person service performs against
// Wikidata. Implementations are expected to be polite clients (identifying
// User-Agent, rate limiting).
type WikidataRepository interface {
	SearchEntities(ctx context.Context, name, language string, limit int) ([]SearchCandidate, error)
	EnrichCandidates(ctx context.Context, qids []string) ([]CandidateFeatures, error)
	Birthdays(ctx context.Context, qid string) ([]string, error)
	Students(ctx context.Context, qid string) ([]LinkedItem, error)
	PoliticalParties(ctx context.Context, qid string) ([]LinkedItem, error)
	Supervisors(ctx context.Context, qid string) ([]LinkedItem, error)
}

// ExtractionRepository persists a record per processed document.
type ExtractionRepository interface {
	Save(ctx context.Context, record *ExtractionRecord) error
}
