package embedder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

// fakeEmbedClient records the request the embedder builds and returns a
// canned response or error.
type fakeEmbedClient struct {
	resp *genai.EmbedContentResponse
	err  error

	calls    int
	model    string
	taskType string
	texts    []string
}

func (f *fakeEmbedClient) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.calls++
	f.model = model
	if config != nil {
		f.taskType = config.TaskType
	}
	f.texts = nil
	for _, c := range contents {
		for _, p := range c.Parts {
			f.texts = append(f.texts, p.Text)
		}
	}
	return f.resp, f.err
}

func embeddingsResponse(vectors ...[]float32) *genai.EmbedContentResponse {
	resp := &genai.EmbedContentResponse{Embeddings: []*genai.ContentEmbedding{}}
	for _, v := range vectors {
		resp.Embeddings = append(resp.Embeddings, &genai.ContentEmbedding{Values: v})
	}
	return resp
}

func TestCreateEmbeddingsSuccess(t *testing.T) {
	client := &fakeEmbedClient{
		resp: embeddingsResponse([]float32{0.1, 0.2}, []float32{0.3, 0.4}),
	}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	resp, err := g.CreateEmbeddings(context.Background(), []string{"foo", "bar"}, "")
	if err != nil {
		t.Fatalf("CreateEmbeddings: %v", err)
	}
	if len(resp.Embeddings) != 2 {
		t.Fatalf("got %d embeddings, want 2", len(resp.Embeddings))
	}
	if resp.Embeddings[0][0] != 0.1 || resp.Embeddings[1][0] != 0.3 {
		t.Errorf("embeddings out of order: %v", resp.Embeddings)
	}
	if resp.Usage != nil {
		t.Errorf("Usage = %+v, want nil when backend reports no statistics", resp.Usage)
	}
	if client.calls != 1 {
		t.Errorf("provider called %d times, want exactly 1", client.calls)
	}
	if len(client.texts) != 2 || client.texts[0] != "foo" || client.texts[1] != "bar" {
		t.Errorf("request texts = %v", client.texts)
	}
}

func TestCreateEmbeddingsSingleCallForLargeInput(t *testing.T) {
	client := &fakeEmbedClient{
		resp: embeddingsResponse([]float32{1}, []float32{2}, []float32{3}, []float32{4}, []float32{5}),
	}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	texts := []string{"a", "b", "c", "d", "e"}
	if _, err := g.CreateEmbeddings(context.Background(), texts, ""); err != nil {
		t.Fatalf("CreateEmbeddings: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("provider called %d times for %d texts, want 1", client.calls, len(texts))
	}
}

func TestCreateEmbeddingsDropsEmptyVectors(t *testing.T) {
	resp := embeddingsResponse([]float32{0.1, 0.2})
	resp.Embeddings = append(resp.Embeddings, nil)
	resp.Embeddings = append(resp.Embeddings, &genai.ContentEmbedding{Values: nil})
	client := &fakeEmbedClient{resp: resp}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	out, err := g.CreateEmbeddings(context.Background(), []string{"foo", "bar", "baz"}, "")
	if err != nil {
		t.Fatalf("CreateEmbeddings should succeed when at least one vector is valid: %v", err)
	}
	if len(out.Embeddings) != 1 {
		t.Fatalf("got %d embeddings, want 1 after dropping empties", len(out.Embeddings))
	}
	if len(out.Embeddings) > 3 {
		t.Errorf("output longer than input")
	}
}

func TestCreateEmbeddingsNoEmbeddingsField(t *testing.T) {
	client := &fakeEmbedClient{resp: &genai.EmbedContentResponse{}}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	_, err := g.CreateEmbeddings(context.Background(), []string{"foo"}, "")
	if err == nil {
		t.Fatal("expected error when response has no embeddings field")
	}
	if !errors.Is(err, ErrNoEmbeddings) {
		t.Errorf("cause chain lost: %v", err)
	}
	if !strings.Contains(err.Error(), "no embeddings returned") {
		t.Errorf("message %q missing 'no embeddings returned'", err.Error())
	}
	if !strings.Contains(err.Error(), "Gemini embedding failed:") {
		t.Errorf("message %q missing outer prefix", err.Error())
	}
}

func TestCreateEmbeddingsWrapsProviderError(t *testing.T) {
	cause := errors.New("rate limited")
	client := &fakeEmbedClient{err: cause}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	_, err := g.CreateEmbeddings(context.Background(), []string{"foo"}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Gemini embedding failed:") {
		t.Errorf("message %q missing outer prefix", msg)
	}
	if !strings.Contains(msg, "Gemini embeddings error: rate limited") {
		t.Errorf("message %q missing inner prefix and cause text", msg)
	}
	if !errors.Is(err, cause) {
		t.Errorf("original error not in chain: %v", err)
	}
}

func TestCreateEmbeddingsEmptyInput(t *testing.T) {
	client := &fakeEmbedClient{resp: embeddingsResponse()}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	if _, err := g.CreateEmbeddings(context.Background(), nil, ""); err == nil {
		t.Fatal("expected error for empty input")
	}
	if client.calls != 0 {
		t.Errorf("provider should not be called for empty input")
	}
}

func TestModelResolution(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		override   string
		want       string
	}{
		{"hardcoded default", "", "", "gemini-embedding-exp-03-07"},
		{"configured default", "text-embedding-004", "", "text-embedding-004"},
		{"per-call override wins", "text-embedding-004", "gemini-embedding-001", "gemini-embedding-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeEmbedClient{resp: embeddingsResponse([]float32{1})}
			g := newGeminiEmbedder(client, nil, GeminiConfig{ModelID: tt.configured})

			if _, err := g.CreateEmbeddings(context.Background(), []string{"foo"}, tt.override); err != nil {
				t.Fatalf("CreateEmbeddings: %v", err)
			}
			if client.model != tt.want {
				t.Errorf("model = %q, want %q", client.model, tt.want)
			}
		})
	}
}

func TestTaskTypeResolution(t *testing.T) {
	client := &fakeEmbedClient{resp: embeddingsResponse([]float32{1})}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})
	if _, err := g.CreateEmbeddings(context.Background(), []string{"foo"}, ""); err != nil {
		t.Fatalf("CreateEmbeddings: %v", err)
	}
	if client.taskType != "CODE_RETRIEVAL_QUERY" {
		t.Errorf("taskType = %q, want CODE_RETRIEVAL_QUERY", client.taskType)
	}

	client = &fakeEmbedClient{resp: embeddingsResponse([]float32{1})}
	g = newGeminiEmbedder(client, nil, GeminiConfig{TaskType: TaskTypeRetrievalDocument})
	if _, err := g.CreateEmbeddings(context.Background(), []string{"foo"}, "some-model"); err != nil {
		t.Fatalf("CreateEmbeddings: %v", err)
	}
	if client.taskType != "RETRIEVAL_DOCUMENT" {
		t.Errorf("taskType = %q, want RETRIEVAL_DOCUMENT (model override must not touch it)", client.taskType)
	}
}

func TestUsageFromStatistics(t *testing.T) {
	resp := embeddingsResponse([]float32{1}, []float32{2})
	resp.Embeddings[0].Statistics = &genai.ContentEmbeddingStatistics{TokenCount: 3}
	resp.Embeddings[1].Statistics = &genai.ContentEmbeddingStatistics{TokenCount: 4}
	client := &fakeEmbedClient{resp: resp}
	g := newGeminiEmbedder(client, nil, GeminiConfig{})

	out, err := g.CreateEmbeddings(context.Background(), []string{"foo", "bar"}, "")
	if err != nil {
		t.Fatalf("CreateEmbeddings: %v", err)
	}
	if out.Usage == nil || out.Usage.PromptTokens != 7 || out.Usage.TotalTokens != 7 {
		t.Errorf("Usage = %+v, want 7/7", out.Usage)
	}
}

func TestInfoIsConstant(t *testing.T) {
	client := &fakeEmbedClient{err: errors.New("boom")}
	g := newGeminiEmbedder(client, nil, GeminiConfig{ModelID: "custom", TaskType: "RETRIEVAL_QUERY"})

	if got := g.Info(); got.Name != "gemini" {
		t.Errorf("Info().Name = %q, want gemini", got.Name)
	}
	// Identity is unaffected by prior failures.
	_, _ = g.CreateEmbeddings(context.Background(), []string{"foo"}, "")
	if got := g.Info(); got.Name != "gemini" {
		t.Errorf("Info().Name = %q after failed call, want gemini", got.Name)
	}
}
