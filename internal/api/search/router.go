package search

import (
	"github.com/gin-gonic/gin"

	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
	"github.com/Conversly/embedding-gateway/internal/rag"
)

func RegisterRoutes(api *gin.RouterGroup, db *loaders.PostgresClient, emb embedder.Provider) {
	retriever := rag.NewPgVectorRetriever(db, emb)
	svc := NewService(retriever)
	ctrl := NewController(svc)
	api.POST("/search", ctrl.Search)
}
