package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected default api port: %s", cfg.APIPort)
	}
	if cfg.ExcerptBudget != 1024 || cfg.JudgeExcerptBudget != 500 {
		t.Fatalf("unexpected excerpt budgets: %d/%d", cfg.ExcerptBudget, cfg.JudgeExcerptBudget)
	}
	if cfg.HighAccept != 0.7 || cfg.HighReject != 0.6 || cfg.LowReject != 0.4 {
		t.Fatalf("unexpected thresholds: %v/%v/%v", cfg.HighAccept, cfg.HighReject, cfg.LowReject)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GATE_HIGH_ACCEPT", "0.8")
	t.Setenv("GATE_EXCERPT_BUDGET", "2048")
	t.Setenv("GATE_CONFIDENCE_WEIGHT", "not-a-number")

	cfg := Load()
	if cfg.HighAccept != 0.8 {
		t.Fatalf("expected overridden threshold, got %v", cfg.HighAccept)
	}
	if cfg.ExcerptBudget != 2048 {
		t.Fatalf("expected overridden budget, got %d", cfg.ExcerptBudget)
	}
	if cfg.ConfidenceWeight != 0.5 {
		t.Fatalf("unparseable value must fall back, got %v", cfg.ConfidenceWeight)
	}
}
