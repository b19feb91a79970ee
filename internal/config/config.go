package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string

	OllamaHost     string
	EmbedModelName string
	LLMModelName   string

	// EmbeddingDim must match the output dimension of the embedding model
	// (nomic-embed-text produces 768). If it changes, the papers table must
	// be recreated so the vector column width matches.
	EmbeddingDim int

	TopK    int
	APIPort string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels so the server can be started from cmd/api.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresDB:       getEnv("POSTGRES_DB", "arxiv_rag"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		EmbedModelName:   getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
		LLMModelName:     getEnv("OLLAMA_LLM_MODEL", "llama3.2:3b"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	port, err := parseIntEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, err
	}
	cfg.PostgresPort = port

	// EMBEDDING_DIM is required: a wrong value silently breaks retrieval
	// because stored vectors and query vectors stop being comparable.
	dimStr := getEnv("EMBEDDING_DIM", "")
	if dimStr == "" {
		return nil, fmt.Errorf("EMBEDDING_DIM is required")
	}
	dim, err := strconv.Atoi(dimStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_DIM must be a valid integer: %w", err)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIM must be greater than 0")
	}
	cfg.EmbeddingDim = dim

	topK, err := parseIntEnv("TOP_K_RESULTS", 5)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, fmt.Errorf("TOP_K_RESULTS must be greater than 0")
	}
	cfg.TopK = topK

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	return cfg, nil
}

// PostgresURL returns the connection string for the papers database.
func (c *Config) PostgresURL() string {
	auth := c.PostgresUser
	if c.PostgresPassword != "" {
		auth += ":" + c.PostgresPassword
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", auth, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an integer environment variable with a default.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// parseLogLevel converts a level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
