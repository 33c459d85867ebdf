package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL    string
	LogLevel       string
	Debug          bool
	ServiceName    string
	Environment    string
	Hostname       string
	ServerPort     string
	WorkerCount    int
	BatchSize      int
	AllowedOrigins []string
	APIKeys        []string

	EmbeddingProvider string
	GeminiAPIKey      string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	EmbeddingModelID  string
	EmbeddingTaskType string

	ChunkSize    int
	ChunkOverlap int
}

func LoadConfig() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	provider := os.Getenv("EMBEDDING_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	openaiAPIKey := os.Getenv("OPENAI_API_KEY")
	switch provider {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required when EMBEDDING_PROVIDER=gemini")
		}
	case "openai", "openrouter":
		if openaiAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required when EMBEDDING_PROVIDER=" + provider)
		}
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = splitAndTrim(ao)
	}

	return &Config{
		DatabaseURL:    databaseURL,
		LogLevel:       envOr("LOG_LEVEL", "info"),
		Debug:          os.Getenv("DEBUG") == "true",
		ServiceName:    envOr("SERVICE_NAME", "embedding-gateway"),
		Environment:    envOr("ENVIRONMENT", "development"),
		Hostname:       envOr("HOSTNAME", "embedding-gateway"),
		ServerPort:     envOr("SERVER_PORT", "8080"),
		WorkerCount:    envInt("WORKER_COUNT", 10),
		BatchSize:      envInt("BATCH_SIZE", 100),
		AllowedOrigins: allowedOrigins,
		APIKeys:        splitAndTrim(os.Getenv("API_KEYS")),

		EmbeddingProvider: provider,
		GeminiAPIKey:      geminiAPIKey,
		OpenAIAPIKey:      openaiAPIKey,
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		EmbeddingModelID:  os.Getenv("EMBEDDING_MODEL_ID"),
		EmbeddingTaskType: os.Getenv("EMBEDDING_TASK_TYPE"),

		ChunkSize:    envInt("CHUNK_SIZE", 1000),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 200),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// splitAndTrim splits a comma-separated env value, dropping empty entries.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
