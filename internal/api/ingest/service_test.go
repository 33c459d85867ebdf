package ingest

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Conversly/embedding-gateway/internal/chunker"
	"github.com/Conversly/embedding-gateway/internal/config"
	"github.com/Conversly/embedding-gateway/internal/embedder"
	"github.com/Conversly/embedding-gateway/internal/loaders"
	"github.com/Conversly/embedding-gateway/internal/utils"
)

type stubStore struct {
	records []loaders.ChunkRecord
	batches int
}

func (s *stubStore) BatchInsertChunks(ctx context.Context, chunks []loaders.ChunkRecord) error {
	s.batches++
	s.records = append(s.records, chunks...)
	return nil
}

// stubEmbedder returns one small vector per input text; when short is set it
// drops the last vector to simulate provider-side filtering.
type stubEmbedder struct {
	short bool
	calls int
}

func (s *stubEmbedder) CreateEmbeddings(ctx context.Context, texts []string, model string) (*embedder.Response, error) {
	s.calls++
	n := len(texts)
	if s.short && n > 0 {
		n--
	}
	vectors := make([][]float32, n)
	for i := range vectors {
		vectors[i] = []float32{float32(i)}
	}
	return &embedder.Response{Embeddings: vectors}, nil
}

func (s *stubEmbedder) Info() embedder.Info {
	return embedder.Info{Name: "stub"}
}

func newTestService(t *testing.T, store chunkStore, emb embedder.Provider) *Service {
	t.Helper()
	utils.Zlog = zap.NewNop()
	ctx := context.Background()

	ch, err := chunker.New(ctx, 80, 10)
	if err != nil {
		t.Fatalf("chunker.New: %v", err)
	}
	svc, err := NewService(ctx, store, emb, ch, &config.Config{BatchSize: 2})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestIngestTexts(t *testing.T) {
	store := &stubStore{}
	emb := &stubEmbedder{}
	svc := newTestService(t, store, emb)

	req := &Request{Texts: []TextInput{
		{Content: strings.Repeat("a sentence about vectors. ", 20), Source: "notes.txt"},
	}}
	stats, err := svc.Ingest(context.Background(), req)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if stats.Documents != 1 {
		t.Errorf("Documents = %d, want 1", stats.Documents)
	}
	if stats.Chunks < 2 {
		t.Errorf("Chunks = %d, want several", stats.Chunks)
	}
	if stats.Embedded != stats.Chunks {
		t.Errorf("Embedded = %d, Chunks = %d; all chunks should be stored", stats.Embedded, stats.Chunks)
	}
	if len(store.records) != stats.Embedded {
		t.Errorf("stored %d records, stats say %d", len(store.records), stats.Embedded)
	}
	for i, rec := range store.records {
		if rec.Source != "notes.txt" {
			t.Errorf("record %d source = %q", i, rec.Source)
		}
		if rec.ChunkIndex != i {
			t.Errorf("record %d index = %d", i, rec.ChunkIndex)
		}
	}
	// Batch size 2: more than one provider call for several chunks.
	if stats.Chunks > 2 && emb.calls < 2 {
		t.Errorf("calls = %d for %d chunks with batch size 2", emb.calls, stats.Chunks)
	}
}

func TestIngestRejectsMisalignedEmbeddings(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, &stubEmbedder{short: true})

	req := &Request{Texts: []TextInput{{Content: "short doc", Source: "a.txt"}}}
	if _, err := svc.Ingest(context.Background(), req); err == nil {
		t.Fatal("expected error when provider drops vectors")
	}
	if len(store.records) != 0 {
		t.Errorf("misaligned batch must not be stored, got %d records", len(store.records))
	}
}

func TestIngestNoSources(t *testing.T) {
	svc := newTestService(t, &stubStore{}, &stubEmbedder{})
	if _, err := svc.Ingest(context.Background(), &Request{}); err == nil {
		t.Fatal("expected error for empty request")
	}
}

func TestIngestFilePlainText(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, &stubEmbedder{})

	stats, err := svc.IngestFile(context.Background(), "readme.txt", strings.NewReader("hello embedding world"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if stats.Documents != 1 || stats.Embedded == 0 {
		t.Errorf("stats = %+v", stats)
	}
}
