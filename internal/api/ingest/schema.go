package ingest

import "github.com/Conversly/embedding-gateway/internal/types"

// TextInput is a raw snippet submitted for indexing.
type TextInput struct {
	Content string `json:"content" binding:"required"`
	Source  string `json:"source,omitempty"`
}

// Request lists the sources to load, chunk, embed and store.
type Request struct {
	URLs  []string    `json:"urls,omitempty"`
	Texts []TextInput `json:"texts,omitempty"`
}

type Response struct {
	types.BaseResponse
	Stats types.IngestStats `json:"stats"`
}
