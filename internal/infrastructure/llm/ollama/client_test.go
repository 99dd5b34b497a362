package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/legalaid/docgate/internal/core/domain"
)

func judgeServer(t *testing.T, response string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if capture != nil {
			*capture, _ = payload["prompt"].(string)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": response})
	}))
}

func TestJudgePromptCarriesTaxonomyAndExcerpt(t *testing.T) {
	var capturedPrompt string
	server := judgeServer(t, "yes", &capturedPrompt)
	defer server.Close()

	judge := NewJudge(New(server.URL, "judge-model"), domain.DefaultTaxonomy())
	affirmative, err := judge.Verdict(context.Background(), "WHEREAS the parties agree")
	if err != nil {
		t.Fatalf("Verdict() error = %v", err)
	}
	if !affirmative {
		t.Fatalf("expected affirmative verdict")
	}
	for _, want := range []string{"legal contract", "resume", "WHEREAS the parties agree", "yes or no"} {
		if !strings.Contains(capturedPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, capturedPrompt)
		}
	}
}

func TestJudgeAffirmativeScanIsCaseInsensitive(t *testing.T) {
	cases := map[string]bool{
		"YES":                          true,
		"Yes, this is a contract.":     true,
		"  yes  ":                      true,
		"No.":                          false,
		"This is not a legal document": false,
		"":                             false,
	}
	for response, want := range cases {
		server := judgeServer(t, response, nil)
		judge := NewJudge(New(server.URL, "judge-model"), domain.DefaultTaxonomy())
		got, err := judge.Verdict(context.Background(), "text")
		server.Close()
		if err != nil {
			t.Fatalf("Verdict(%q) error = %v", response, err)
		}
		if got != want {
			t.Fatalf("Verdict(%q) = %v, want %v", response, got, want)
		}
	}
}

func TestJudgeWrapsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	judge := NewJudge(New(server.URL, "judge-model"), domain.DefaultTaxonomy())
	_, err := judge.Verdict(context.Background(), "text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrJudgeUnavailable) {
		t.Fatalf("expected judge kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}
