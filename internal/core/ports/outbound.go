package ports

import (
	"context"
	"io"

	"github.com/legalaid/docgate/internal/core/domain"
)

// ZeroShotClassifier delegates to an external zero-shot text
// classification capability. The returned pairs are ordered by
// descending confidence; ties are resolved by the caller.
type ZeroShotClassifier interface {
	Classify(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]domain.LabelScore, error)
}

// Judge wraps the generative reviewer consulted for gray-zone scores.
// It returns true only when the generated response carries an
// affirmative token; a degenerate response is false, a transport
// failure is an error.
type Judge interface {
	Verdict(ctx context.Context, excerpt string) (bool, error)
}

// DocumentRepository persists and reads submitted document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveVerdict(ctx context.Context, id string, verdict domain.Verdict) error
}

// FeedbackRepository stores user ratings of gate decisions.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb *domain.Feedback) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes submission events.
type MessageQueue interface {
	PublishDocumentSubmitted(ctx context.Context, documentID string) error
	SubscribeDocumentSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}
