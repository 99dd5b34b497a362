package usecase

import "github.com/legalaid/docgate/internal/core/domain"

// FusionPolicy folds lexical signal, negative penalty and the weighted
// top semantic confidence into one scalar. The confidence weight stays
// below 1 so the classifier's top score can never decide admission on
// its own.
type FusionPolicy struct {
	ConfidenceWeight float64
}

func NewFusionPolicy(confidenceWeight float64) FusionPolicy {
	if confidenceWeight <= 0 || confidenceWeight > 1 {
		confidenceWeight = 0.5
	}
	return FusionPolicy{ConfidenceWeight: confidenceWeight}
}

func (p FusionPolicy) Fuse(signal, penalty float64, top domain.LabelScore, taxonomy domain.Taxonomy) domain.FusedScore {
	return domain.FusedScore{
		Score:       signal + top.Confidence*p.ConfidenceWeight - penalty,
		TopLabel:    top.Label,
		AcceptLabel: taxonomy.IsAccept(top.Label),
	}
}

// topLabel picks the highest-confidence pair. Equal confidences are
// broken by taxonomy order so the outcome never depends on incidental
// response ordering.
func topLabel(result []domain.LabelScore, taxonomy domain.Taxonomy) (domain.LabelScore, bool) {
	if len(result) == 0 {
		return domain.LabelScore{}, false
	}
	top := result[0]
	for _, ls := range result[1:] {
		switch {
		case ls.Confidence > top.Confidence:
			top = ls
		case ls.Confidence == top.Confidence && taxonomy.Rank(ls.Label) < taxonomy.Rank(top.Label):
			top = ls
		}
	}
	return top, true
}
