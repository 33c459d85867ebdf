package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestSplitPlainText(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, 50, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	content := strings.Repeat("some sentence about embeddings. ", 20)
	chunks, err := c.Split(ctx, []*schema.Document{{ID: "doc-1", Content: content}}, "notes.txt")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several for %d chars with chunk size 50", len(chunks), len(content))
	}
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestSplitSmallDocumentStaysWhole(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, 1000, 200)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	chunks, err := c.Split(ctx, []*schema.Document{{Content: "tiny document"}}, "tiny.txt")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if !strings.Contains(chunks[0].Content, "tiny document") {
		t.Errorf("chunk content = %q", chunks[0].Content)
	}
}

func TestSplitMarkdownByHeaders(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, 1000, 200)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	content := "# Install\n\nRun the installer.\n\n# Usage\n\nCall the endpoint.\n"
	chunks, err := c.Split(ctx, []*schema.Document{{Content: content}}, "README.md")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want one per header section", len(chunks))
	}
}

func TestSplitEmptyInput(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, 1000, 200)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	chunks, err := c.Split(ctx, nil, "whatever")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("got %d chunks for empty input", len(chunks))
	}
}
