package embedder

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultGeminiModel    = "gemini-embedding-exp-03-07"
	defaultGeminiTaskType = TaskTypeCodeRetrievalQuery
)

// ErrNoEmbeddings is returned when the Gemini API responds without an
// embeddings field.
var ErrNoEmbeddings = errors.New("no embeddings returned from Gemini API")

// embedContentClient is the narrow slice of the genai SDK this embedder
// needs: the batch embedContent operation and nothing else (no completions,
// no token counting). Tests substitute a fake so nothing leaves the process.
type embedContentClient interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type genaiEmbedClient struct {
	client *genai.Client
}

func (c genaiEmbedClient) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	return c.client.Models.EmbedContent(ctx, model, contents, config)
}

// GeminiConfig holds the construction-time settings for the Gemini embedder.
// Zero values fall back to the code-retrieval defaults.
type GeminiConfig struct {
	ModelID  string // default "gemini-embedding-exp-03-07"
	TaskType string // default "CODE_RETRIEVAL_QUERY"; fixed per embedder, not per call
}

// GeminiEmbedder generates embeddings through Gemini's batch embedContent API.
// Configuration is resolved once at construction and never mutated; the
// embedder holds no other state, so concurrent calls are independent requests.
type GeminiEmbedder struct {
	client   embedContentClient
	logger   *zap.Logger
	modelID  string
	taskType string
}

var _ Provider = (*GeminiEmbedder)(nil)

// NewGeminiEmbedder wires the embedder to an existing genai client.
// No network I/O happens here.
func NewGeminiEmbedder(client *genai.Client, logger *zap.Logger, cfg GeminiConfig) *GeminiEmbedder {
	return newGeminiEmbedder(genaiEmbedClient{client: client}, logger, cfg)
}

func newGeminiEmbedder(client embedContentClient, logger *zap.Logger, cfg GeminiConfig) *GeminiEmbedder {
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = defaultGeminiModel
	}
	taskType := cfg.TaskType
	if taskType == "" {
		taskType = defaultGeminiTaskType
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiEmbedder{
		client:   client,
		logger:   logger,
		modelID:  modelID,
		taskType: taskType,
	}
}

// CreateEmbeddings embeds all texts in a single provider request. An empty
// model falls back to the configured default. Failures are logged and
// returned with a "Gemini embedding failed" prefix; the cause chain is
// preserved so callers can still errors.Is against sentinels.
func (g *GeminiEmbedder) CreateEmbeddings(ctx context.Context, texts []string, model string) (*Response, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided")
	}

	resp, err := g.generateEmbeddings(ctx, texts, model)
	if err != nil {
		g.logger.Error("Gemini embedding failed",
			zap.Error(err),
			zap.Int("texts", len(texts)))
		return nil, fmt.Errorf("Gemini embedding failed: %w", err)
	}
	return resp, nil
}

func (g *GeminiEmbedder) generateEmbeddings(ctx context.Context, texts []string, model string) (*Response, error) {
	resolved := model
	if resolved == "" {
		resolved = g.modelID
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := g.client.EmbedContent(ctx, resolved, contents, &genai.EmbedContentConfig{
		TaskType: g.taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini embeddings error: %w", err)
	}
	if resp == nil || resp.Embeddings == nil {
		return nil, fmt.Errorf("Gemini embeddings error: %w", ErrNoEmbeddings)
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	tokens := 0
	dropped := 0
	for _, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			dropped++
			continue
		}
		vectors = append(vectors, e.Values)
		if e.Statistics != nil {
			tokens += int(e.Statistics.TokenCount)
		}
	}
	if dropped > 0 {
		// Output no longer aligns with input order once entries are dropped.
		g.logger.Warn("Gemini returned empty vectors; dropping them",
			zap.Int("dropped", dropped),
			zap.Int("texts", len(texts)),
			zap.String("model", resolved))
	}

	out := &Response{Embeddings: vectors}
	if tokens > 0 {
		out.Usage = &Usage{PromptTokens: tokens, TotalTokens: tokens}
	}
	return out, nil
}

// Info identifies this provider in the embedder registry.
func (g *GeminiEmbedder) Info() Info {
	return Info{Name: "gemini"}
}
