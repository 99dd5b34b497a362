package ollama

import (
	"fmt"
	"strings"

	"github.com/legalaid/docgate/internal/core/domain"
)

func buildJudgePrompt(excerpt string, taxonomy domain.Taxonomy) string {
	return fmt.Sprintf(`You are screening documents for a legal-analysis pipeline.
A legal document is one of: %s.
It is NOT one of: %s.

Is the following text from a legal document? Answer with a single word: yes or no.

Text:
%s
`,
		strings.Join(taxonomy.Accept, ", "),
		strings.Join(taxonomy.Reject, ", "),
		excerpt,
	)
}
