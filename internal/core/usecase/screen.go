package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalaid/docgate/internal/core/domain"
	"github.com/legalaid/docgate/internal/core/ports"
)

// ScreenDocumentUseCase runs the admission gate over a stored
// document: extract text, evaluate, persist the verdict. Adapter
// failures leave the document in the failed state rather than guessing
// a verdict.
type ScreenDocumentUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	gate      ports.DocumentGate
}

func NewScreenDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	gate ports.DocumentGate,
) *ScreenDocumentUseCase {
	return &ScreenDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		gate:      gate,
	}
}

func (uc *ScreenDocumentUseCase) ScreenByID(ctx context.Context, documentID string) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusScreening, ""); err != nil {
		return fmt.Errorf("set status=screening: %w", err)
	}

	verdict, err := uc.screen(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveVerdict(ctx, documentID, verdict); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save verdict: %w", err)
	}

	status := domain.StatusRejected
	if verdict.Accepted {
		status = domain.StatusAdmitted
	}
	if err := uc.repo.UpdateStatus(ctx, documentID, status, ""); err != nil {
		return fmt.Errorf("set status=%s: %w", status, err)
	}

	return nil
}

func (uc *ScreenDocumentUseCase) screen(ctx context.Context, documentID string) (domain.Verdict, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return domain.Verdict{}, domain.WrapError(domain.ErrEmptyInput, "extract text", errors.New("no extractable text"))
	}

	verdict, err := uc.gate.Evaluate(ctx, text)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("evaluate document: %w", err)
	}
	return verdict, nil
}

func (uc *ScreenDocumentUseCase) markFailed(ctx context.Context, documentID string, screenErr error) error {
	if screenErr == nil {
		return nil
	}
	return uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, screenErr.Error())
}
