package embeddings

import (
	"context"
	"fmt"

	"github.com/Conversly/embedding-gateway/internal/embedder"
)

type Service struct {
	provider embedder.Provider
}

func NewService(provider embedder.Provider) *Service {
	return &Service{provider: provider}
}

// CreateEmbeddings delegates to the configured provider.
func (s *Service) CreateEmbeddings(ctx context.Context, req *Request) (*embedder.Response, error) {
	if req == nil || len(req.Texts) == 0 {
		return nil, fmt.Errorf("texts are required")
	}
	return s.provider.CreateEmbeddings(ctx, req.Texts, req.Model)
}

func (s *Service) Info() embedder.Info {
	return s.provider.Info()
}
