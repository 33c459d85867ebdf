package types

// BaseResponse is the common ack envelope for API responses.
type BaseResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
	Embedded  int `json:"embedded"`
}
