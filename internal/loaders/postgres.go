package loaders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"go.uber.org/zap"

	"github.com/Conversly/embedding-gateway/internal/utils"
)

type PostgresClient struct {
	dsn  string
	pool *pgxpool.Pool
}

// ChunkRecord is one embedded chunk ready for storage.
type ChunkRecord struct {
	DocumentID string
	Source     string
	ChunkIndex int
	Content    string
	Vector     []float32
}

// SearchResult is a chunk retrieved by vector similarity.
type SearchResult struct {
	DocumentID string
	Source     string
	Content    string
	Distance   float64
}

func NewPostgresClient(dsn string, workerCount, batchSize int) (*PostgresClient, error) {
	client := &PostgresClient{dsn: dsn}

	pool, err := client.createConnectionPool(workerCount, batchSize)
	if err != nil {
		return nil, err
	}
	client.pool = pool

	utils.Zlog.Info("Connected to PostgreSQL with connection pool")
	return client, nil
}

func (c *PostgresClient) createConnectionPool(workerCount, batchSize int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}

	cfg.MaxConns = int32(workerCount) + 2
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = 60 * time.Minute
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		// Extension may already exist or the role may lack permission.
		utils.Zlog.Warn("Failed to enable pgvector extension", zap.Error(err))
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	if err := pgxvec.RegisterTypes(ctx, conn.Conn()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to register pgvector types: %w", err)
	}

	if err := c.ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func (c *PostgresClient) ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	// Untyped vector column: dimension depends on the configured embedding
	// model, and mixing dimensions in one table is rejected at insert time
	// by pgvector anyway.
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS chunks (
			id UUID PRIMARY KEY,
			document_id UUID NOT NULL,
			source TEXT NOT NULL,
			chunk_index INT NOT NULL,
			content TEXT NOT NULL,
			vector vector NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure chunks table: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

func (c *PostgresClient) GetPool() *pgxpool.Pool {
	return c.pool
}

// BatchInsertChunks inserts embedded chunks, skipping rows that fail rather
// than aborting the whole batch. Errors only when nothing was inserted.
func (c *PostgresClient) BatchInsertChunks(ctx context.Context, chunks []ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	query := `
		INSERT INTO chunks (id, document_id, source, chunk_index, content, vector)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	successCount := 0
	for _, chunk := range chunks {
		_, err := c.pool.Exec(ctx, query,
			uuid.NewString(),
			chunk.DocumentID,
			chunk.Source,
			chunk.ChunkIndex,
			chunk.Content,
			pgvector.NewVector(chunk.Vector),
		)
		if err != nil {
			utils.Zlog.Error("Failed to insert chunk",
				zap.Error(err),
				zap.String("document_id", chunk.DocumentID),
				zap.Int("chunk_index", chunk.ChunkIndex))
			continue
		}
		successCount++
	}

	if successCount == 0 {
		return fmt.Errorf("failed to insert any chunks")
	}

	utils.Zlog.Info("Inserted chunks",
		zap.Int("inserted", successCount),
		zap.Int("total", len(chunks)))
	return nil
}

// SearchChunks returns the topK chunks nearest to vector by cosine distance.
func (c *PostgresClient) SearchChunks(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	query := `
		SELECT document_id, source, content, vector <=> $1 AS distance
		FROM chunks
		ORDER BY vector <=> $1
		LIMIT $2
	`

	rows, err := c.pool.Query(ctx, query, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocumentID, &r.Source, &r.Content, &r.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan chunk row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chunk rows: %w", err)
	}

	return results, nil
}
