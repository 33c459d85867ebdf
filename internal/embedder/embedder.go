// Package embedder turns batches of text into embedding vectors via
// third-party providers.
package embedder

import "context"

// Task types understood by retrieval-oriented embedding models.
const (
	TaskTypeCodeRetrievalQuery = "CODE_RETRIEVAL_QUERY"
	TaskTypeRetrievalQuery     = "RETRIEVAL_QUERY"
	TaskTypeRetrievalDocument  = "RETRIEVAL_DOCUMENT"
)

// Info is the static identity descriptor a provider exposes for
// registry/discovery purposes.
type Info struct {
	Name string `json:"name"`
}

// Usage carries the provider's token accounting, when it reports any.
type Usage struct {
	PromptTokens int `json:"promptTokens"`
	TotalTokens  int `json:"totalTokens"`
}

// Response holds the vectors produced by one CreateEmbeddings call.
//
// Providers drop entries whose vectors come back missing or empty, so
// len(Embeddings) may be smaller than the number of input texts and callers
// must not index the result positionally against their input when that
// happens. Pipelines that require alignment should treat a shorter result
// as an error (see the ingest service).
type Response struct {
	Embeddings [][]float32 `json:"embeddings"`
	Usage      *Usage      `json:"usage,omitempty"`
}

// Provider is the embedding capability exposed to the rest of the service.
// An empty model selects the provider's configured default. Info never
// fails and is constant for the provider's lifetime.
type Provider interface {
	CreateEmbeddings(ctx context.Context, texts []string, model string) (*Response, error)
	Info() Info
}
