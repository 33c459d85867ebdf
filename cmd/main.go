package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Conversly/embedding-gateway/internal/chunker"
	"github.com/Conversly/embedding-gateway/internal/config"
	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
	"github.com/Conversly/embedding-gateway/internal/routes"
	"github.com/Conversly/embedding-gateway/internal/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Warning: Error loading .env file", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup := utils.InitLogger(cfg)
	defer cleanup()

	utils.Zlog.Info("Starting application",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("provider", cfg.EmbeddingProvider),
		zap.String("port", cfg.ServerPort))

	db, err := loaders.NewPostgresClient(cfg.DatabaseURL, cfg.WorkerCount, cfg.BatchSize)
	if err != nil {
		utils.Zlog.Error("Failed to create database client", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			utils.Zlog.Error("Error closing database connection", zap.Error(err))
		}
	}()

	ctx := context.Background()

	// Queries keep the configured task type; ingestion embeds with the
	// document task type so stored vectors match the retrieval setup.
	queryEmb, err := embedder.New(ctx, cfg, utils.Zlog, "")
	if err != nil {
		utils.Zlog.Error("Failed to create query embedder", zap.Error(err))
		os.Exit(1)
	}
	docEmb, err := embedder.New(ctx, cfg, utils.Zlog, embedder.TaskTypeRetrievalDocument)
	if err != nil {
		utils.Zlog.Error("Failed to create document embedder", zap.Error(err))
		os.Exit(1)
	}

	ch, err := chunker.New(ctx, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		utils.Zlog.Error("Failed to create chunker", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	deps := &routes.Dependencies{
		DB:          db,
		Config:      cfg,
		QueryEmb:    queryEmb,
		DocumentEmb: docEmb,
		Chunker:     ch,
	}
	if err := routes.SetupRoutes(ctx, router, deps); err != nil {
		utils.Zlog.Error("Failed to set up routes", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	utils.Zlog.Info("Server exited")
}
