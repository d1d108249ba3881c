package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"pdf-text-pipeline/internal/domain"

	"gopkg.in/yaml.v3"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	LogLevel    string
	MaxFileSize int64
	// AllowedOrigins for CORS; "*" by default.
	AllowedOrigins []string

	OpenAIKey   string
	OpenAIModel string

	WikidataSearchURL string
	WikidataSPARQLURL string
	WikidataUserAgent string

	SupabaseURL string
	SupabaseKey string
}

// fileConfig is the optional YAML configuration file shape. Environment
// variables override anything set here.
type fileConfig struct {
	ServerPort        string   `yaml:"server_port"`
	LogLevel          string   `yaml:"log_level"`
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	OpenAIModel       string   `yaml:"openai_model"`
	WikidataSearchURL string   `yaml:"wikidata_search_url"`
	WikidataSPARQLURL string   `yaml:"wikidata_sparql_url"`
	WikidataUserAgent string   `yaml:"wikidata_user_agent"`
}

// NewConfig builds the configuration from the optional CONFIG_FILE YAML and
// environment variables, with env taking precedence.
func NewConfig() (domain.Config, error) {
	cfg := &AppConfig{
		// The container convention binds the service to port 8000.
		ServerPort:        "8000",
		LogLevel:          "info",
		MaxFileSize:       50 * 1024 * 1024, // 50MB
		AllowedOrigins:    []string{"*"},
		OpenAIModel:       "gpt-4o-mini",
		WikidataUserAgent: "pdf-text-pipeline/1.0 (text extraction pipeline)",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()

	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ServerPort != "" {
		c.ServerPort = fc.ServerPort
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.MaxFileSize > 0 {
		c.MaxFileSize = fc.MaxFileSize
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.OpenAIModel != "" {
		c.OpenAIModel = fc.OpenAIModel
	}
	if fc.WikidataSearchURL != "" {
		c.WikidataSearchURL = fc.WikidataSearchURL
	}
	if fc.WikidataSPARQLURL != "" {
		c.WikidataSPARQLURL = fc.WikidataSPARQLURL
	}
	if fc.WikidataUserAgent != "" {
		c.WikidataUserAgent = fc.WikidataUserAgent
	}
	return nil
}

func (c *AppConfig) loadEnv() {
	// Cloud Run and similar PaaS provide the listening port via PORT; keep
	// SERVER_PORT for local/dev compatibility.
	c.ServerPort = getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", c.ServerPort))
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.MaxFileSize = getEnvInt64OrDefault("MAX_FILE_SIZE", c.MaxFileSize)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			c.AllowedOrigins = cleaned
		}
	}

	c.OpenAIKey = getEnvOrDefault("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", c.OpenAIModel)

	c.WikidataSearchURL = getEnvOrDefault("WIKIDATA_SEARCH_URL", c.WikidataSearchURL)
	c.WikidataSPARQLURL = getEnvOrDefault("WIKIDATA_SPARQL_URL", c.WikidataSPARQLURL)
	c.WikidataUserAgent = getEnvOrDefault("WIKIDATA_USER_AGENT", c.WikidataUserAgent)

	c.SupabaseURL = getEnvOrDefault("SUPABASE_URL", c.SupabaseURL)
	c.SupabaseKey = getEnvOrDefault("SUPABASE_ANON_KEY", c.SupabaseKey)
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetAllowedOrigins returns the CORS origin whitelist
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetOpenAIKey returns the OpenAI API key
func (c *AppConfig) GetOpenAIKey() string {
	return c.OpenAIKey
}

// GetOpenAIModel returns the chat model name
func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

// GetWikidataSearchURL returns the wbsearchentities endpoint override
func (c *AppConfig) GetWikidataSearchURL() string {
	return c.WikidataSearchURL
}

// GetWikidataSPARQLURL returns the SPARQL endpoint override
func (c *AppConfig) GetWikidataSPARQLURL() string {
	return c.WikidataSPARQLURL
}

// GetWikidataUserAgent returns the identifying User-Agent for Wikidata calls
func (c *AppConfig) GetWikidataUserAgent() string {
	return c.WikidataUserAgent
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
