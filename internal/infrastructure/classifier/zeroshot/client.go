// Package zeroshot wraps an external zero-shot text classification
// service (a transformers-style inference endpoint). The adapter
// absorbs the service's response-shape variance and always hands the
// core an ordered []domain.LabelScore.
package zeroshot

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/legalaid/docgate/internal/core/domain"
	"github.com/legalaid/docgate/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Option func(*Client)

func WithResilienceExecutor(executor *resilience.Executor) Option {
	return func(c *Client) { c.executor = executor }
}

func New(baseURL, model string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template,omitempty"`
	MultiLabel         bool     `json:"multi_label"`
}

func (c *Client) Classify(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]domain.LabelScore, error) {
	request := classifyRequest{
		Inputs: text,
		Parameters: classifyParameters{
			CandidateLabels:    labels,
			HypothesisTemplate: hypothesisTemplate,
			MultiLabel:         true,
		},
	}

	var raw classifyResponse
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/models/"+c.model, request, &raw, "classify")
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "classifier.classify", call, classifyClassifierError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrClassifierUnavailable, "zero-shot classify", err)
	}

	result, err := raw.labelScores()
	if err != nil {
		return nil, domain.WrapError(domain.ErrClassifierUnavailable, "zero-shot classify", err)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	return result, nil
}

// classifyResponse tolerates both shapes the service is known to
// return: an object with parallel labels/scores arrays, or a flat list
// of {label, score} pairs.
type classifyResponse struct {
	object struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	list []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
}

func (r *classifyResponse) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return jsonUnmarshal(data, &r.list)
	}
	return jsonUnmarshal(data, &r.object)
}

func (r *classifyResponse) labelScores() ([]domain.LabelScore, error) {
	if len(r.list) > 0 {
		out := make([]domain.LabelScore, 0, len(r.list))
		for _, pair := range r.list {
			out = append(out, domain.LabelScore{Label: pair.Label, Confidence: clamp01(pair.Score)})
		}
		return out, nil
	}

	if len(r.object.Labels) != len(r.object.Scores) {
		return nil, fmt.Errorf("labels/scores length mismatch: %d/%d", len(r.object.Labels), len(r.object.Scores))
	}
	if len(r.object.Labels) == 0 {
		return nil, fmt.Errorf("empty classification response")
	}

	out := make([]domain.LabelScore, 0, len(r.object.Labels))
	for i, label := range r.object.Labels {
		out = append(out, domain.LabelScore{Label: label, Confidence: clamp01(r.object.Scores[i])})
	}
	return out, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
