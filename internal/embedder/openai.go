package embedder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const defaultOpenAIModel = "text-embedding-3-small"

// OpenAIEmbedder generates embeddings through the OpenAI embeddings API.
// Also serves OpenRouter and other OpenAI-compatible endpoints via baseURL.
type OpenAIEmbedder struct {
	client  openai.Client
	logger  *zap.Logger
	modelID string
}

var _ Provider = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder creates an OpenAI-backed provider. baseURL is optional
// and defaults to the OpenAI API.
func NewOpenAIEmbedder(apiKey, baseURL, modelID string, logger *zap.Logger) *OpenAIEmbedder {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(baseURL, "/")))
	}
	if modelID == "" {
		modelID = defaultOpenAIModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIEmbedder{
		client:  openai.NewClient(opts...),
		logger:  logger,
		modelID: modelID,
	}
}

func (o *OpenAIEmbedder) CreateEmbeddings(ctx context.Context, texts []string, model string) (*Response, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided")
	}

	resolved := model
	if resolved == "" {
		resolved = o.modelID
	}

	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(resolved),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		o.logger.Error("OpenAI embedding failed", zap.Error(err), zap.Int("texts", len(texts)))
		return nil, fmt.Errorf("OpenAI embedding failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("OpenAI embedding failed: %w", errors.New("no embedding data in response"))
	}

	vectors := make([][]float32, 0, len(resp.Data))
	for _, d := range resp.Data {
		if len(d.Embedding) == 0 {
			continue
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors = append(vectors, vec)
	}

	return &Response{
		Embeddings: vectors,
		Usage: &Usage{
			PromptTokens: int(resp.Usage.PromptTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (o *OpenAIEmbedder) Info() Info {
	return Info{Name: "openai"}
}
