package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GateRules is the optional YAML override file for the lexical tables
// and the label taxonomy. Extra patterns are appended to the built-in
// tables; the taxonomy replaces the default only when both partitions
// are present, so a half-edited file cannot leave a label without a
// partition.
type GateRules struct {
	PositivePatterns []string            `yaml:"positive_patterns"`
	NegativePatterns map[string][]string `yaml:"negative_patterns"`
	Taxonomy         struct {
		Accept []string `yaml:"accept"`
		Reject []string `yaml:"reject"`
	} `yaml:"taxonomy"`
}

// LoadGateRules reads the rules file. An empty path yields empty rules.
func LoadGateRules(path string) (GateRules, error) {
	var rules GateRules
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read gate rules: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return rules, fmt.Errorf("parse gate rules: %w", err)
	}

	if (len(rules.Taxonomy.Accept) == 0) != (len(rules.Taxonomy.Reject) == 0) {
		return GateRules{}, fmt.Errorf("gate rules taxonomy must define both accept and reject labels")
	}
	return rules, nil
}

// HasTaxonomy reports whether the file carries a full replacement
// taxonomy.
func (r GateRules) HasTaxonomy() bool {
	return len(r.Taxonomy.Accept) > 0 && len(r.Taxonomy.Reject) > 0
}
