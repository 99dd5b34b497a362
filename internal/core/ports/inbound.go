package ports

import (
	"context"
	"io"

	"github.com/legalaid/docgate/internal/core/domain"
)

// DocumentGate is the inbound contract for the admission decision:
// one text in, one verdict out.
type DocumentGate interface {
	Evaluate(ctx context.Context, text string) (domain.Verdict, error)
}

// DocumentSubmitter is the inbound contract for document upload
// orchestration.
type DocumentSubmitter interface {
	Submit(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentScreener is the inbound contract for asynchronous screening
// of a stored document.
type DocumentScreener interface {
	ScreenByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// FeedbackRecorder stores a user rating of a decision.
type FeedbackRecorder interface {
	Record(ctx context.Context, documentID string, rating int, comment string) (*domain.Feedback, error)
}
