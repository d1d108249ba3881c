package config

import (
	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/repository"
	"pdf-text-pipeline/internal/service"
	"pdf-text-pipeline/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	PDFExtractor      *service.PDFExtractor
	SentimentAnalyzer *service.SentimentAnalyzer
	EntityService     *service.EntityService
	PersonService     *service.PersonService

	// ExtractionRepository is nil unless Supabase is configured.
	ExtractionRepository domain.ExtractionRepository
}

// NewContainer wires the application dependencies.
func NewContainer() (*Container, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	appLogger := logger.New(cfg.GetLogLevel())

	wikidataClient := repository.NewWikidataClient(cfg, appLogger)

	// The chat model is optional; without a key the entities endpoint
	// reports the missing backend per request.
	var chatModel domain.ChatModel
	if cfg.GetOpenAIKey() != "" {
		model, err := repository.NewOpenAIChatModel(cfg, appLogger)
		if err != nil {
			return nil, err
		}
		chatModel = model
	} else {
		appLogger.Warn("OPENAI_API_KEY not set; entity extraction disabled")
	}

	// The extraction archive is optional as well.
	var extractionRepo domain.ExtractionRepository
	if cfg.GetSupabaseURL() != "" && cfg.GetSupabaseKey() != "" {
		supabaseClient := repository.NewSupabaseClient(cfg, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			return nil, err
		}
		extractionRepo = repository.NewSupabaseExtractionRepository(supabaseClient, appLogger)
	} else {
		appLogger.Info("Supabase not configured; extraction archive disabled")
	}

	return &Container{
		Config:               cfg,
		Logger:               appLogger,
		PDFExtractor:         service.NewPDFExtractor(appLogger),
		SentimentAnalyzer:    service.NewSentimentAnalyzer(appLogger),
		EntityService:        service.NewEntityService(chatModel, appLogger),
		PersonService:        service.NewPersonService(wikidataClient, appLogger),
		ExtractionRepository: extractionRepo,
	}, nil
}
