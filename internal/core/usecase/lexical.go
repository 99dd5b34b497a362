package usecase

import (
	"fmt"
	"regexp"

	"github.com/legalaid/docgate/internal/core/domain"
)

const (
	positiveIncrement = 0.1
	positiveCeiling   = 0.4
	negativeStep      = 0.1
	negativeCeiling   = 0.3
)

// Formal legal-register boilerplate. Each distinct pattern that
// matches at least once contributes one fixed increment; repeats of
// the same pattern never add more.
var defaultPositivePatterns = []string{
	`\bwhereas\b`,
	`\bforce majeure\b`,
	`governing law|governed by the laws of`,
	`indemnif(y|ies|ied|ication)`,
	`hereinafter referred to as|hereinafter,? the`,
	`\bin witness whereof\b`,
	`now,? therefore`,
	`\bby and between\b`,
	`this (agreement|contract|deed|lease) (is entered into|is made)`,
	`(confidentiality|non-disclosure|lease|employment|service|purchase) agreement`,
	`mutual covenants`,
	`\bpursuant to\b`,
	`shall be settled by arbitration`,
	`the ["\x60\x{201c}](agreement|parties|disclosing party|receiving party|company)["\x60\x{201d}]`,
}

// Non-legal registers, grouped by document category. One matching
// category adds one penalty step no matter how many of its phrases hit.
var defaultNegativePatterns = map[string][]string{
	"resume": {
		`curriculum vitae`,
		`work experience`,
		`career objective`,
		`references available upon request`,
		`\beducation\b[\s:]*$`,
		`\b(b\.?s\.?|m\.?s\.?|b\.?a\.?)\s+(in\s+)?[a-z]+\s+(science|arts|engineering)\b`,
	},
	"invoice": {
		`invoice\s*(#|no\.?|number)`,
		`\bbill to\b`,
		`net\s+(15|30|60|90)`,
		`amount due`,
		`remit payment`,
		`total due`,
	},
	"correspondence": {
		`^dear\s+[a-z]`,
		`(best|kind|warm) regards`,
		`sincerely yours`,
		`thank you for your (email|letter|message)`,
	},
	"memo": {
		`\bmemorandum\b`,
		`internal memo`,
		`^(to|from|subject)\s*:`,
	},
	"web_article": {
		`click here`,
		`read more`,
		`subscribe (to|now)`,
		`share this article`,
		`(published|posted) (on|by)`,
	},
}

// LexicalScanner scores an excerpt against fixed phrase tables. It is
// deterministic and side-effect free: purely lexical, no stemming.
type LexicalScanner struct {
	positive []*regexp.Regexp
	negative map[string][]*regexp.Regexp
}

// NewLexicalScanner compiles the built-in tables plus optional extra
// patterns from the rules file. All matching is case-insensitive and
// multiline-anchored.
func NewLexicalScanner(extraPositive []string, extraNegative map[string][]string) (*LexicalScanner, error) {
	s := &LexicalScanner{
		negative: make(map[string][]*regexp.Regexp, len(defaultNegativePatterns)),
	}

	for _, expr := range append(append([]string{}, defaultPositivePatterns...), extraPositive...) {
		re, err := compileSignal(expr)
		if err != nil {
			return nil, err
		}
		s.positive = append(s.positive, re)
	}

	for category, exprs := range defaultNegativePatterns {
		for _, expr := range exprs {
			re, err := compileSignal(expr)
			if err != nil {
				return nil, err
			}
			s.negative[category] = append(s.negative[category], re)
		}
	}
	for category, exprs := range extraNegative {
		for _, expr := range exprs {
			re, err := compileSignal(expr)
			if err != nil {
				return nil, err
			}
			s.negative[category] = append(s.negative[category], re)
		}
	}

	return s, nil
}

func compileSignal(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?im)` + expr)
	if err != nil {
		return nil, fmt.Errorf("compile signal pattern %q: %w", expr, err)
	}
	return re, nil
}

// Scan evaluates every pattern once against the excerpt and returns
// the clamped positive signal and negative penalty.
func (s *LexicalScanner) Scan(excerpt domain.Excerpt) (signal, penalty float64) {
	text := string(excerpt)

	for _, re := range s.positive {
		if !re.MatchString(text) {
			continue
		}
		signal += positiveIncrement
		if signal >= positiveCeiling {
			signal = positiveCeiling
			break
		}
	}

	for _, res := range s.negative {
		for _, re := range res {
			if re.MatchString(text) {
				penalty += negativeStep
				break
			}
		}
		if penalty >= negativeCeiling {
			penalty = negativeCeiling
			break
		}
	}

	return signal, penalty
}
