package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/legalaid/docgate/internal/core/domain"
	"github.com/legalaid/docgate/internal/core/ports"
)

// RecordFeedbackUseCase stores a user rating of a gate decision.
type RecordFeedbackUseCase struct {
	documents ports.DocumentRepository
	feedback  ports.FeedbackRepository
}

func NewRecordFeedbackUseCase(
	documents ports.DocumentRepository,
	feedback ports.FeedbackRepository,
) *RecordFeedbackUseCase {
	return &RecordFeedbackUseCase{
		documents: documents,
		feedback:  feedback,
	}
}

func (uc *RecordFeedbackUseCase) Record(ctx context.Context, documentID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "record feedback", errors.New("rating must be between 1 and 5"))
	}
	if _, err := uc.documents.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch rated document: %w", err)
	}

	fb := &domain.Feedback{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.feedback.CreateFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback record: %w", err)
	}
	return fb, nil
}
