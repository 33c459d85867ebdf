package rag

import (
	"context"
	"fmt"

	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
)

// Document represents a retrieved chunk/source
type Document struct {
	DocumentID string
	Source     string
	Content    string
	Score      float64
}

// Retriever abstracts retrieval of documents relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]Document, error)
}

// PgVectorRetriever embeds the query and runs a cosine nearest-neighbour
// search against the chunks table.
type PgVectorRetriever struct {
	db       *loaders.PostgresClient
	embedder embedder.Provider
}

var _ Retriever = (*PgVectorRetriever)(nil)

func NewPgVectorRetriever(db *loaders.PostgresClient, emb embedder.Provider) *PgVectorRetriever {
	return &PgVectorRetriever{db: db, embedder: emb}
}

func (r *PgVectorRetriever) Retrieve(ctx context.Context, query string, topK int) ([]Document, error) {
	resp, err := r.embedder.CreateEmbeddings(ctx, []string{query}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("query produced no embedding")
	}

	results, err := r.db.SearchChunks(ctx, resp.Embeddings[0], topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	docs := make([]Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, Document{
			DocumentID: res.DocumentID,
			Source:     res.Source,
			Content:    res.Content,
			// Cosine distance in [0,2]; flip to a similarity score.
			Score: 1 - res.Distance,
		})
	}
	return docs, nil
}
