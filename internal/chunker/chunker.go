// Package chunker splits loaded documents into embedding-sized chunks.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/markdown"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
)

// Chunker wraps the eino splitters behind one splitting entry point.
// Markdown sources are split on headers first so section boundaries survive,
// everything else goes straight through the recursive splitter.
type Chunker struct {
	recursive document.Transformer
	markdown  document.Transformer
}

func New(ctx context.Context, chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 200
	}

	rec, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   chunkSize,
		OverlapSize: chunkOverlap,
		Separators:  []string{"\n\n", "\n", " "},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recursive splitter: %w", err)
	}

	md, err := markdown.NewHeaderSplitter(ctx, &markdown.HeaderConfig{
		Headers: map[string]string{
			"#":   "h1",
			"##":  "h2",
			"###": "h3",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown splitter: %w", err)
	}

	return &Chunker{recursive: rec, markdown: md}, nil
}

// Split chunks docs for embedding. source decides the strategy; pass the
// document URI or filename.
func (c *Chunker) Split(ctx context.Context, docs []*schema.Document, source string) ([]*schema.Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	if isMarkdown(source) {
		sections, err := c.markdown.Transform(ctx, docs)
		if err != nil {
			return nil, fmt.Errorf("markdown split failed for %s: %w", source, err)
		}
		docs = sections
	}

	chunks, err := c.recursive.Transform(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("recursive split failed for %s: %w", source, err)
	}

	// Splitters can emit whitespace-only fragments at boundaries.
	out := make([]*schema.Document, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) == "" {
			continue
		}
		out = append(out, chunk)
	}
	return out, nil
}

func isMarkdown(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
