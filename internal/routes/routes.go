package routes

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Conversly/embedding-gateway/internal/api/embeddings"
	"github.com/Conversly/embedding-gateway/internal/api/ingest"
	"github.com/Conversly/embedding-gateway/internal/api/search"
	"github.com/Conversly/embedding-gateway/internal/chunker"
	"github.com/Conversly/embedding-gateway/internal/config"
	"github.com/Conversly/embedding-gateway/internal/controllers"
	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
	"github.com/Conversly/embedding-gateway/internal/middleware"
)

// Dependencies carries everything the route tree needs.
type Dependencies struct {
	DB          *loaders.PostgresClient
	Config      *config.Config
	QueryEmb    embedder.Provider
	DocumentEmb embedder.Provider
	Chunker     *chunker.Chunker
}

// SetupRoutes configures all application routes
func SetupRoutes(ctx context.Context, router *gin.Engine, deps *Dependencies) error {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))
	router.Use(middleware.RequestID())

	SetupHealthRoutes(router, deps.DB)

	api := router.Group("/api/v1")
	api.Use(middleware.APIKeyAuth(deps.Config.APIKeys))

	systemCtrl := controllers.NewSystemController(deps.Config, deps.QueryEmb)
	api.GET("/status", systemCtrl.Status)
	api.GET("/info", systemCtrl.Info)

	embeddings.RegisterRoutes(api, deps.QueryEmb)
	search.RegisterRoutes(api, deps.DB, deps.QueryEmb)
	if err := ingest.RegisterRoutes(ctx, api, deps.DB, deps.DocumentEmb, deps.Chunker, deps.Config); err != nil {
		return err
	}

	Setup404Handler(router)
	return nil
}
