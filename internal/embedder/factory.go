package embedder

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Conversly/embedding-gateway/internal/config"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// New builds the Provider selected by cfg.EmbeddingProvider. taskType
// overrides the configured task type for this instance; pass "" to use
// cfg.EmbeddingTaskType (which itself falls back to the provider default).
// Ingestion constructs a document-task embedder this way while search keeps
// the query-task one.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, taskType string) (Provider, error) {
	if taskType == "" {
		taskType = cfg.EmbeddingTaskType
	}

	switch cfg.EmbeddingProvider {
	case "", "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("API key required for Gemini provider")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return NewGeminiEmbedder(client, logger, GeminiConfig{
			ModelID:  cfg.EmbeddingModelID,
			TaskType: taskType,
		}), nil

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("API key required for OpenAI provider")
		}
		return NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModelID, logger), nil

	case "openrouter":
		// OpenRouter speaks the OpenAI embeddings API.
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("API key required for OpenRouter provider")
		}
		baseURL := cfg.OpenAIBaseURL
		if baseURL == "" {
			baseURL = openRouterBaseURL
		}
		return NewOpenAIEmbedder(cfg.OpenAIAPIKey, baseURL, cfg.EmbeddingModelID, logger), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider %q; valid providers: gemini, openai, openrouter", cfg.EmbeddingProvider)
	}
}
