package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/legalaid/docgate/internal/core/domain"
	"github.com/legalaid/docgate/internal/core/ports"
)

const hypothesisTemplate = "This document is a {}."

// SignalSource produces the lexical evidence pair for an excerpt.
type SignalSource interface {
	Scan(excerpt domain.Excerpt) (signal, penalty float64)
}

// GateParams carries the threshold bands and excerpt budgets of the
// decision policy. Accept deliberately requires a stricter bar than
// reject: an ambiguous non-legal-looking document is cheaper to bounce
// than to let into the downstream pipeline.
type GateParams struct {
	Taxonomy           domain.Taxonomy
	ConfidenceWeight   float64
	HighAccept         float64
	HighReject         float64
	LowReject          float64
	ExcerptBudget      int
	JudgeExcerptBudget int
}

func DefaultGateParams() GateParams {
	return GateParams{
		Taxonomy:           domain.DefaultTaxonomy(),
		ConfidenceWeight:   0.5,
		HighAccept:         0.7,
		HighReject:         0.6,
		LowReject:          0.4,
		ExcerptBudget:      1024,
		JudgeExcerptBudget: 500,
	}
}

func (p GateParams) normalize() GateParams {
	out := p
	def := DefaultGateParams()

	if len(out.Taxonomy.Accept) == 0 || len(out.Taxonomy.Reject) == 0 {
		out.Taxonomy = def.Taxonomy
	}
	if out.ConfidenceWeight <= 0 || out.ConfidenceWeight > 1 {
		out.ConfidenceWeight = def.ConfidenceWeight
	}
	if out.HighAccept <= 0 {
		out.HighAccept = def.HighAccept
	}
	if out.HighReject <= 0 || out.HighReject > out.HighAccept {
		out.HighReject = def.HighReject
	}
	if out.LowReject <= 0 || out.LowReject >= out.HighReject {
		out.LowReject = def.LowReject
	}
	if out.ExcerptBudget <= 0 {
		out.ExcerptBudget = def.ExcerptBudget
	}
	if out.JudgeExcerptBudget <= 0 || out.JudgeExcerptBudget > out.ExcerptBudget {
		out.JudgeExcerptBudget = def.JudgeExcerptBudget
	}
	return out
}

// EvaluateUseCase is the gatekeeper decision engine. It fuses lexical
// and semantic evidence, applies the threshold bands in fixed priority
// order and consults the generative reviewer only for gray-zone
// scores. It holds no state between calls.
type EvaluateUseCase struct {
	scanner    SignalSource
	classifier ports.ZeroShotClassifier
	judge      ports.Judge
	fusion     FusionPolicy
	params     GateParams
}

func NewEvaluateUseCase(
	scanner SignalSource,
	classifier ports.ZeroShotClassifier,
	judge ports.Judge,
	params GateParams,
) *EvaluateUseCase {
	params = params.normalize()
	return &EvaluateUseCase{
		scanner:    scanner,
		classifier: classifier,
		judge:      judge,
		fusion:     NewFusionPolicy(params.ConfidenceWeight),
		params:     params,
	}
}

func (uc *EvaluateUseCase) Evaluate(ctx context.Context, text string) (domain.Verdict, error) {
	excerpt, err := domain.NewExcerpt(text, uc.params.ExcerptBudget)
	if err != nil {
		return domain.Verdict{}, err
	}

	signal, penalty, result, err := uc.collectEvidence(ctx, excerpt)
	if err != nil {
		return domain.Verdict{}, err
	}

	top, ok := topLabel(result, uc.params.Taxonomy)
	if !ok {
		return domain.Verdict{}, domain.WrapError(
			domain.ErrClassifierUnavailable,
			"classify excerpt",
			fmt.Errorf("empty classification result"),
		)
	}

	fused := uc.fusion.Fuse(signal, penalty, top, uc.params.Taxonomy)
	return uc.decide(ctx, excerpt, fused)
}

// collectEvidence runs the lexical scanner and the external classifier
// concurrently; neither depends on the other.
func (uc *EvaluateUseCase) collectEvidence(ctx context.Context, excerpt domain.Excerpt) (signal, penalty float64, result []domain.LabelScore, err error) {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		signal, penalty = uc.scanner.Scan(excerpt)
		return nil
	})
	group.Go(func() error {
		classified, classifyErr := uc.classifier.Classify(
			groupCtx,
			string(excerpt),
			uc.params.Taxonomy.Labels(),
			hypothesisTemplate,
		)
		if classifyErr != nil {
			return fmt.Errorf("classify excerpt: %w", classifyErr)
		}
		result = classified
		return nil
	})

	if err := group.Wait(); err != nil {
		return 0, 0, nil, err
	}
	return signal, penalty, result, nil
}

// decide applies the threshold bands in priority order. High-confidence
// cases never pay for the generative reviewer.
func (uc *EvaluateUseCase) decide(ctx context.Context, excerpt domain.Excerpt, fused domain.FusedScore) (domain.Verdict, error) {
	switch {
	case fused.Score >= uc.params.HighAccept && fused.AcceptLabel:
		return domain.Verdict{
			Accepted:      true,
			Label:         fused.TopLabel,
			Score:         fused.Score,
			Justification: fmt.Sprintf("Accepted: the top label is %q with a fused score of %.2f.", fused.TopLabel, fused.Score),
		}, nil

	case fused.Score >= uc.params.HighReject && !fused.AcceptLabel:
		return domain.Verdict{
			Label:         fused.TopLabel,
			Score:         fused.Score,
			Justification: fmt.Sprintf("Rejected: the top label is %q with a fused score of %.2f.", fused.TopLabel, fused.Score),
		}, nil

	case fused.Score <= uc.params.LowReject:
		return domain.Verdict{
			Label:         fused.TopLabel,
			Score:         fused.Score,
			Justification: fmt.Sprintf("Rejected: the fused score %.2f is below the admission floor (top label %q).", fused.Score, fused.TopLabel),
		}, nil
	}

	return uc.escalate(ctx, excerpt, fused)
}

func (uc *EvaluateUseCase) escalate(ctx context.Context, excerpt domain.Excerpt, fused domain.FusedScore) (domain.Verdict, error) {
	affirmative, err := uc.judge.Verdict(ctx, string(excerpt.Shorten(uc.params.JudgeExcerptBudget)))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("consult judge: %w", err)
	}

	verdict := domain.Verdict{
		Accepted:  affirmative,
		Label:     fused.TopLabel,
		Score:     fused.Score,
		Escalated: true,
	}
	if affirmative {
		verdict.Justification = fmt.Sprintf("Accepted: the reviewer model confirmed a legal document after an inconclusive fused score of %.2f (top label %q).", fused.Score, fused.TopLabel)
	} else {
		verdict.Justification = fmt.Sprintf("Rejected: the reviewer model did not confirm a legal document after an inconclusive fused score of %.2f (top label %q).", fused.Score, fused.TopLabel)
	}
	return verdict, nil
}
