package domain

import (
	"errors"
	"strings"
)

// Excerpt is the bounded prefix of a submitted text that all gate
// scoring operates on. It is never empty when the source text has
// non-whitespace content.
type Excerpt string

func NewExcerpt(text string, budget int) (Excerpt, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", WrapError(ErrEmptyInput, "build excerpt", errors.New("text has no content"))
	}
	if budget > 0 {
		runes := []rune(trimmed)
		if len(runes) > budget {
			trimmed = string(runes[:budget])
		}
	}
	return Excerpt(trimmed), nil
}

// Shorten returns a tighter prefix of the excerpt, used for the
// reviewer prompt which carries a smaller character budget.
func (e Excerpt) Shorten(budget int) Excerpt {
	runes := []rune(string(e))
	if budget <= 0 || len(runes) <= budget {
		return e
	}
	return Excerpt(runes[:budget])
}

// Taxonomy is the ordered candidate label set for zero-shot
// classification, partitioned into labels that admit a document and
// labels that reject it. A label belongs to exactly one partition.
type Taxonomy struct {
	Accept []string
	Reject []string
}

func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Accept: []string{
			"legal contract",
			"legal agreement or deed",
			"court ruling or case law",
			"statute or regulation",
		},
		Reject: []string{
			"resume",
			"invoice or billing statement",
			"news article",
			"personal letter or memo",
			"general web article",
		},
	}
}

// Labels returns all candidate labels in stable taxonomy order,
// accept partition first. This order is also the tie-break order when
// the classifier returns equal confidences.
func (t Taxonomy) Labels() []string {
	labels := make([]string, 0, len(t.Accept)+len(t.Reject))
	labels = append(labels, t.Accept...)
	labels = append(labels, t.Reject...)
	return labels
}

func (t Taxonomy) IsAccept(label string) bool {
	for _, l := range t.Accept {
		if l == label {
			return true
		}
	}
	return false
}

// Rank returns the position of label in taxonomy order, or a value
// past the end for unknown labels.
func (t Taxonomy) Rank(label string) int {
	for i, l := range t.Labels() {
		if l == label {
			return i
		}
	}
	return len(t.Accept) + len(t.Reject)
}

// LabelScore is one (label, confidence) pair from the external
// zero-shot classifier. Confidence is in [0, 1]; values need not sum
// to 1 across labels.
type LabelScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// FusedScore combines lexical signal, negative-pattern penalty and the
// weighted top semantic confidence into the single scalar the decision
// policy runs on.
type FusedScore struct {
	Score       float64 `json:"score"`
	TopLabel    string  `json:"top_label"`
	AcceptLabel bool    `json:"accept_label"`
}

// Verdict is the terminal outcome of one gate evaluation.
type Verdict struct {
	Accepted      bool    `json:"accepted"`
	Label         string  `json:"label"`
	Score         float64 `json:"score"`
	Escalated     bool    `json:"escalated"`
	Justification string  `json:"justification"`
}

func (v Verdict) Outcome() string {
	if v.Accepted {
		return "accepted"
	}
	return "rejected"
}
