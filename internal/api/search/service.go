package search

import (
	"context"
	"fmt"

	"github.com/Conversly/embedding-gateway/internal/rag"
)

const defaultTopK = 5

type Service struct {
	retriever rag.Retriever
}

func NewService(retriever rag.Retriever) *Service {
	return &Service{retriever: retriever}
}

func (s *Service) Search(ctx context.Context, req *Request) ([]Result, error) {
	if req == nil || req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	docs, err := s.retriever.Retrieve(ctx, req.Query, topK)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		results = append(results, Result{
			DocumentID: doc.DocumentID,
			Source:     doc.Source,
			Content:    doc.Content,
			Score:      doc.Score,
		})
	}
	return results, nil
}
