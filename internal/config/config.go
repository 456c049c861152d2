package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port    string
	BaseURL string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Session configuration. The secret is a base64 encoded 32 byte key
	// used to encrypt cookie values.
	SessionSecret string

	// Full text search catalogs (Postgres text search configurations)
	SearchCatalogs []string

	// Directories
	ThumbnailsDirectory string
	StaticDirectory     string
	LocaleDirectory     string

	// Internationalization
	SupportedLanguages []string

	// Mail configuration
	PostmarkToken string
	MailFrom      string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "3000"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:3000"),
		DBType:              getEnv("DB_TYPE", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBDatabase:          getEnv("DB_DATABASE", ""),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:   getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		SearchCatalogs:      getEnvAsList("SEARCH_CATALOGS", "english"),
		ThumbnailsDirectory: getEnv("THUMBNAILS_DIRECTORY", "var/thumbnails"),
		StaticDirectory:     getEnv("STATIC_DIRECTORY", "static"),
		LocaleDirectory:     getEnv("LOCALE_DIRECTORY", "locale"),
		SupportedLanguages:  getEnvAsList("SUPPORTED_LANGUAGES", "en"),
		PostmarkToken:       getEnv("POSTMARK_TOKEN", ""),
		MailFrom:            getEnv("MAIL_FROM", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if len(cfg.SearchCatalogs) == 0 {
		return nil, fmt.Errorf("SEARCH_CATALOGS must name at least one text search configuration")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList gets a comma separated environment variable as a string slice
func getEnvAsList(key, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			values = append(values, p)
		}
	}
	return values
}
