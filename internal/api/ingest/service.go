package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/loader/url"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Conversly/embedding-gateway/internal/chunker"
	"github.com/Conversly/embedding-gateway/internal/config"
	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
	"github.com/Conversly/embedding-gateway/internal/types"
	"github.com/Conversly/embedding-gateway/internal/utils"
)

// chunkStore is the slice of the Postgres client the pipeline writes through.
type chunkStore interface {
	BatchInsertChunks(ctx context.Context, chunks []loaders.ChunkRecord) error
}

type Service struct {
	store     chunkStore
	embedder  embedder.Provider
	chunker   *chunker.Chunker
	urlLoader document.Loader
	pdfParser parser.Parser
	batchSize int
}

// NewService wires the ingestion pipeline. The embedder should be configured
// with the document task type; queries use a separate instance.
func NewService(ctx context.Context, store chunkStore, emb embedder.Provider, ch *chunker.Chunker, cfg *config.Config) (*Service, error) {
	urlLoader, err := url.NewLoader(ctx, &url.LoaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create url loader: %w", err)
	}
	pdfParser, err := pdf.NewPDFParser(ctx, &pdf.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf parser: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &Service{
		store:     store,
		embedder:  emb,
		chunker:   ch,
		urlLoader: urlLoader,
		pdfParser: pdfParser,
		batchSize: batchSize,
	}, nil
}

// Ingest loads every requested source, chunks it, embeds the chunks and
// stores the vectors. Per-source failures are logged and skipped; the call
// fails only if nothing could be ingested.
func (s *Service) Ingest(ctx context.Context, req *Request) (*types.IngestStats, error) {
	if req == nil || (len(req.URLs) == 0 && len(req.Texts) == 0) {
		return nil, fmt.Errorf("no sources provided")
	}

	stats := &types.IngestStats{}

	for _, text := range req.Texts {
		source := text.Source
		if source == "" {
			source = "inline"
		}
		docs := []*schema.Document{{ID: uuid.NewString(), Content: text.Content}}
		if err := s.ingestDocuments(ctx, source, docs, stats); err != nil {
			utils.Zlog.Error("Failed to ingest text", zap.Error(err), zap.String("source", source))
			continue
		}
		stats.Documents++
	}

	for _, link := range req.URLs {
		docs, err := s.urlLoader.Load(ctx, document.Source{URI: link})
		if err != nil {
			utils.Zlog.Error("Failed to load URL", zap.Error(err), zap.String("url", link))
			continue
		}
		if err := s.ingestDocuments(ctx, link, docs, stats); err != nil {
			utils.Zlog.Error("Failed to ingest URL", zap.Error(err), zap.String("url", link))
			continue
		}
		stats.Documents++
	}

	if stats.Documents == 0 {
		return nil, fmt.Errorf("failed to ingest any sources")
	}
	return stats, nil
}

// IngestFile indexes an uploaded file. PDFs go through the pdf parser,
// anything else is treated as plain text.
func (s *Service) IngestFile(ctx context.Context, filename string, r io.Reader) (*types.IngestStats, error) {
	var docs []*schema.Document

	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		parsed, err := s.pdfParser.Parse(ctx, r, parser.WithURI(filename))
		if err != nil {
			return nil, fmt.Errorf("failed to parse pdf %s: %w", filename, err)
		}
		docs = parsed
	} else {
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		docs = []*schema.Document{{ID: uuid.NewString(), Content: string(content)}}
	}

	stats := &types.IngestStats{}
	if err := s.ingestDocuments(ctx, filename, docs, stats); err != nil {
		return nil, err
	}
	stats.Documents = 1
	return stats, nil
}

func (s *Service) ingestDocuments(ctx context.Context, source string, docs []*schema.Document, stats *types.IngestStats) error {
	chunks, err := s.chunker.Split(ctx, docs, source)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no content in %s", source)
	}
	stats.Chunks += len(chunks)

	documentID := uuid.NewString()

	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		resp, err := s.embedder.CreateEmbeddings(ctx, texts, "")
		if err != nil {
			return err
		}
		// The provider silently drops empty vectors; storage requires
		// chunk/vector alignment, so a short result is an error here.
		if len(resp.Embeddings) != len(texts) {
			return fmt.Errorf("embedding count mismatch for %s: got %d vectors for %d chunks", source, len(resp.Embeddings), len(texts))
		}

		records := make([]loaders.ChunkRecord, len(batch))
		for i := range batch {
			records[i] = loaders.ChunkRecord{
				DocumentID: documentID,
				Source:     source,
				ChunkIndex: start + i,
				Content:    batch[i].Content,
				Vector:     resp.Embeddings[i],
			}
		}
		if err := s.store.BatchInsertChunks(ctx, records); err != nil {
			return err
		}
		stats.Embedded += len(records)
	}

	return nil
}
