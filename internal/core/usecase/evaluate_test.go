package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/legalaid/docgate/internal/core/domain"
)

type scannerStub struct {
	signal  float64
	penalty float64
}

func (s *scannerStub) Scan(domain.Excerpt) (float64, float64) { return s.signal, s.penalty }

type classifierStub struct {
	result    []domain.LabelScore
	err       error
	gotText   string
	gotLabels []string
}

func (c *classifierStub) Classify(_ context.Context, text string, labels []string, _ string) ([]domain.LabelScore, error) {
	c.gotText = text
	c.gotLabels = labels
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type judgeStub struct {
	affirmative bool
	err         error
	called      bool
	gotExcerpt  string
}

func (j *judgeStub) Verdict(_ context.Context, excerpt string) (bool, error) {
	j.called = true
	j.gotExcerpt = excerpt
	if j.err != nil {
		return false, j.err
	}
	return j.affirmative, nil
}

func newGate(scanner SignalSource, classifier *classifierStub, judge *judgeStub) *EvaluateUseCase {
	return NewEvaluateUseCase(scanner, classifier, judge, DefaultGateParams())
}

const contractText = `
CONFIDENTIALITY AGREEMENT
This Confidentiality Agreement (the "Agreement") is entered into as of January 1, 2024, by and between
TechCorp Inc. ("Disclosing Party") and John Doe ("Receiving Party").
WHEREAS, the Disclosing Party possesses certain proprietary information subject to the governing law of Delaware;
NOW, THEREFORE, in consideration of the mutual covenants contained herein, and excepting force majeure events,
the parties agree as follows.
`

func TestEvaluateAcceptsContractWithoutJudge(t *testing.T) {
	scanner := newScanner(t)
	classifier := &classifierStub{result: []domain.LabelScore{{Label: "legal contract", Confidence: 0.85}}}
	judge := &judgeStub{}

	verdict, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), contractText)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !verdict.Accepted || verdict.Escalated {
		t.Fatalf("expected direct accept, got %+v", verdict)
	}
	if verdict.Label != "legal contract" {
		t.Fatalf("expected legal contract label, got %q", verdict.Label)
	}
	if judge.called {
		t.Fatalf("high-confidence accept must not consult the judge")
	}
	if len(classifier.gotLabels) != len(domain.DefaultTaxonomy().Labels()) {
		t.Fatalf("classifier must receive the full taxonomy, got %v", classifier.gotLabels)
	}
}

func TestEvaluateRejectsConfidentNonLegalLabel(t *testing.T) {
	scanner := &scannerStub{signal: 0.35, penalty: 0.1}
	classifier := &classifierStub{result: []domain.LabelScore{{Label: "resume", Confidence: 0.7}}}
	judge := &judgeStub{}

	verdict, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), "Work experience and education.")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	// fused = 0.35 + 0.7*0.5 - 0.1 = 0.6, at the reject bar
	if verdict.Accepted || verdict.Escalated {
		t.Fatalf("expected direct reject, got %+v", verdict)
	}
	if math.Abs(verdict.Score-0.6) > 1e-9 {
		t.Fatalf("expected fused score 0.6, got %v", verdict.Score)
	}
	if judge.called {
		t.Fatalf("confident reject must not consult the judge")
	}
}

func TestEvaluateRejectsLowScoreInvoice(t *testing.T) {
	scanner := newScanner(t)
	classifier := &classifierStub{result: []domain.LabelScore{{Label: "invoice or billing statement", Confidence: 0.6}}}
	judge := &judgeStub{}

	const invoiceText = `INVOICE #10234
Date: 01/01/2024
Bill To: Jane Smith
TERMS: Net 30.
Description: Web Development Services.
Total: $5,000.00
Please remit payment to the account below.`

	verdict, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), invoiceText)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if verdict.Accepted || verdict.Escalated {
		t.Fatalf("expected reject below the admission floor, got %+v", verdict)
	}
	if verdict.Score > 0.4 {
		t.Fatalf("invoice text should land at or below the floor, got %v", verdict.Score)
	}
	if judge.called {
		t.Fatalf("floor reject must not consult the judge")
	}
}

func TestEvaluateEscalatesGrayZoneToJudge(t *testing.T) {
	for _, affirmative := range []bool{true, false} {
		scanner := &scannerStub{signal: 0.2}
		classifier := &classifierStub{result: []domain.LabelScore{{Label: "news article", Confidence: 0.6}}}
		judge := &judgeStub{affirmative: affirmative}

		verdict, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), "A court ruled on a contract dispute today.")
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if !judge.called || !verdict.Escalated {
			t.Fatalf("gray zone must consult the judge, got %+v", verdict)
		}
		if verdict.Accepted != affirmative {
			t.Fatalf("verdict must follow the judge: affirmative=%v got %+v", affirmative, verdict)
		}
	}
}

func TestEvaluateJudgeExcerptIsShorter(t *testing.T) {
	long := make([]rune, 0, 2048)
	for len(long) < 2048 {
		long = append(long, []rune("contract dispute judge agreement ")...)
	}

	scanner := &scannerStub{signal: 0.5}
	classifier := &classifierStub{result: []domain.LabelScore{{Label: "news article", Confidence: 0}}}
	judge := &judgeStub{}

	if _, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), string(long)); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got := len([]rune(judge.gotExcerpt)); got > 500 {
		t.Fatalf("judge excerpt must respect the tighter budget, got %d runes", got)
	}
	if got := len([]rune(classifier.gotText)); got > 1024 {
		t.Fatalf("classification excerpt must respect its budget, got %d runes", got)
	}
}

func TestEvaluatePropagatesClassifierError(t *testing.T) {
	scanner := &scannerStub{}
	classifier := &classifierStub{err: domain.WrapError(domain.ErrClassifierUnavailable, "classify", errors.New("boom"))}
	judge := &judgeStub{}

	_, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), "some text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("expected classifier kind, got %v", err)
	}
	if judge.called {
		t.Fatalf("failed classification must not reach the judge")
	}
}

func TestEvaluatePropagatesJudgeError(t *testing.T) {
	scanner := &scannerStub{signal: 0.2}
	classifier := &classifierStub{result: []domain.LabelScore{{Label: "news article", Confidence: 0.6}}}
	judge := &judgeStub{err: domain.WrapError(domain.ErrJudgeUnavailable, "judge", errors.New("down"))}

	_, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), "borderline text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrJudgeUnavailable) {
		t.Fatalf("expected judge kind, got %v", err)
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	gate := newGate(&scannerStub{}, &classifierStub{}, &judgeStub{})
	_, err := gate.Evaluate(context.Background(), "   \n\t ")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrEmptyInput) {
		t.Fatalf("expected empty-input kind, got %v", err)
	}
}

func TestEvaluateEmptyClassificationResult(t *testing.T) {
	gate := newGate(&scannerStub{}, &classifierStub{result: nil}, &judgeStub{})
	_, err := gate.Evaluate(context.Background(), "some text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("expected classifier kind for empty result, got %v", err)
	}
}

// Escalation fires exactly inside the open gray band for non-accept
// labels; accept labels below the accept bar but past the reject bar
// also fall through to the judge.
func TestEvaluateBandCoverage(t *testing.T) {
	cases := []struct {
		name         string
		signal       float64
		label        string
		wantAccepted bool
		wantJudge    bool
	}{
		{name: "floor_boundary_rejects", signal: 0.40, label: "news article", wantAccepted: false, wantJudge: false},
		{name: "just_above_floor_escalates", signal: 0.41, label: "news article", wantAccepted: true, wantJudge: true},
		{name: "just_below_reject_bar_escalates", signal: 0.59, label: "news article", wantAccepted: true, wantJudge: true},
		{name: "reject_bar_rejects", signal: 0.60, label: "news article", wantAccepted: false, wantJudge: false},
		{name: "accept_label_below_accept_bar_escalates", signal: 0.69, label: "legal contract", wantAccepted: true, wantJudge: true},
		{name: "accept_bar_accepts", signal: 0.70, label: "legal contract", wantAccepted: true, wantJudge: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scanner := &scannerStub{signal: tc.signal}
			classifier := &classifierStub{result: []domain.LabelScore{{Label: tc.label, Confidence: 0}}}
			judge := &judgeStub{affirmative: true}

			verdict, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), "text")
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if judge.called != tc.wantJudge {
				t.Fatalf("judge called = %v, want %v (verdict %+v)", judge.called, tc.wantJudge, verdict)
			}
			if verdict.Accepted != tc.wantAccepted {
				t.Fatalf("accepted = %v, want %v (verdict %+v)", verdict.Accepted, tc.wantAccepted, verdict)
			}
		})
	}
}

func TestEvaluateJudgeDenialNeverAccepts(t *testing.T) {
	scanner := &scannerStub{signal: 0.5}
	classifier := &classifierStub{result: []domain.LabelScore{{Label: "legal contract", Confidence: 0}}}
	judge := &judgeStub{affirmative: false}

	verdict, err := newGate(scanner, classifier, judge).Evaluate(context.Background(), "text")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if verdict.Accepted {
		t.Fatalf("judge denial must reject, got %+v", verdict)
	}
}
