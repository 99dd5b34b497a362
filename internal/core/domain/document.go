package domain

import "time"

type DocumentStatus string

const (
	StatusSubmitted DocumentStatus = "submitted"
	StatusScreening DocumentStatus = "screening"
	StatusAdmitted  DocumentStatus = "admitted"
	StatusRejected  DocumentStatus = "rejected"
	StatusFailed    DocumentStatus = "failed"
)

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`

	Label         string  `json:"label,omitempty"`
	Score         float64 `json:"score,omitempty"`
	Escalated     bool    `json:"escalated,omitempty"`
	Justification string  `json:"justification,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Feedback is a user rating of a gate decision, kept for offline
// review of threshold tuning.
type Feedback struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
