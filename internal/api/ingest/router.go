package ingest

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Conversly/embedding-gateway/internal/chunker"
	"github.com/Conversly/embedding-gateway/internal/config"
	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
)

func RegisterRoutes(ctx context.Context, api *gin.RouterGroup, db *loaders.PostgresClient, emb embedder.Provider, ch *chunker.Chunker, cfg *config.Config) error {
	svc, err := NewService(ctx, db, emb, ch, cfg)
	if err != nil {
		return fmt.Errorf("failed to create ingest service: %w", err)
	}
	ctrl := NewController(svc)
	api.POST("/ingest", ctrl.Ingest)
	api.POST("/ingest/file", ctrl.IngestFile)
	return nil
}
