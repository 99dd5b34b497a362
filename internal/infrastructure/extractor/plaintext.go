package extractor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/legalaid/docgate/internal/core/domain"
)

func decodePlaintext(filename string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.WrapError(
			domain.ErrInvalidInput,
			"decode plaintext",
			fmt.Errorf("unsupported binary format: %s", filename),
		)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", domain.WrapError(domain.ErrEmptyInput, "decode plaintext", errors.New("no text content"))
	}
	return text, nil
}
