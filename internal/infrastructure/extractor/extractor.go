// Package extractor turns stored documents into plain text for the
// gate. The concrete decoder is picked from the declared mime type
// with the file extension as fallback.
package extractor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/legalaid/docgate/internal/core/domain"
	"github.com/legalaid/docgate/internal/core/ports"
)

type kind string

const (
	kindPlaintext kind = "plaintext"
	kindPDF       kind = "pdf"
	kindXLSX      kind = "xlsx"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func New(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	switch kindFor(doc.Filename, doc.MimeType) {
	case kindPDF:
		return decodePDF(raw)
	case kindXLSX:
		return decodeXLSX(raw)
	default:
		return decodePlaintext(doc.Filename, raw)
	}
}

func kindFor(filename, mimeType string) kind {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])) {
	case "application/pdf":
		return kindPDF
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return kindXLSX
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return kindPDF
	case ".xlsx":
		return kindXLSX
	default:
		return kindPlaintext
	}
}
