package embeddings

import (
	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/types"
)

// Request carries the texts to embed and an optional per-call model override.
type Request struct {
	Texts []string `json:"texts" binding:"required,min=1"`
	Model string   `json:"model,omitempty"`
}

// Response returns the vectors in provider order. Entries the provider
// dropped (empty vectors) are absent, so the count may be below len(Texts).
type Response struct {
	types.BaseResponse
	Embeddings [][]float32     `json:"embeddings"`
	Usage      *embedder.Usage `json:"usage,omitempty"`
}

// InfoResponse is the provider identity descriptor.
type InfoResponse struct {
	Name string `json:"name"`
}
