package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyInput       = errors.New("empty input")
	ErrTemporary        = errors.New("temporary failure")

	// ErrClassifierUnavailable marks failures of the external zero-shot
	// classifier. The gate never fabricates a verdict around it.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrJudgeUnavailable marks transport failures of the generative
	// reviewer consulted for gray-zone scores.
	ErrJudgeUnavailable = errors.New("judge unavailable")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
