package search

import "github.com/Conversly/embedding-gateway/internal/types"

type Request struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k,omitempty"`
}

type Result struct {
	DocumentID string  `json:"document_id"`
	Source     string  `json:"source"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
}

type Response struct {
	types.BaseResponse
	Results []Result `json:"results"`
}
