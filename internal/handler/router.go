package handler

import (
	"net/http"

	"pdf-text-pipeline/internal/config"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()
	router.Use(ObservabilityMiddleware(container.Logger))
	router.Use(MaxBodyMiddleware(container.Config.GetMaxFileSize()))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-text-pipeline"}`))
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Initialize handlers
	textHandler := NewTextHandler(container.Logger)
	pdfHandler := NewPDFHandler(container.PDFExtractor, container.ExtractionRepository, container.Logger)
	sentimentHandler := NewSentimentHandler(container.SentimentAnalyzer, container.Logger)
	entityHandler := NewEntityHandler(container.EntityService, container.Logger)
	personHandler := NewPersonHandler(container.PersonService, container.Logger)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/text/normalize", textHandler.Normalize).Methods("POST")
	api.HandleFunc("/text/words", textHandler.Words).Methods("POST")

	api.HandleFunc("/pdf/words", pdfHandler.Words).Methods("POST")

	api.HandleFunc("/sentiment", sentimentHandler.Score).Methods("POST")

	api.HandleFunc("/entities", entityHandler.Extract).Methods("POST")

	api.HandleFunc("/persons/birthday", personHandler.Birthday).Methods("POST")
	api.HandleFunc("/persons/students", personHandler.Students).Methods("POST")
	api.HandleFunc("/persons/political-party", personHandler.PoliticalParty).Methods("POST")
	api.HandleFunc("/persons/supervisor", personHandler.Supervisors).Methods("POST")
	api.HandleFunc("/persons/all", personHandler.All).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: container.Config.GetAllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
