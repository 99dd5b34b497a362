package localfs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/legalaid/docgate/internal/core/domain"
)

func TestSaveThenOpenRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := storage.Save(ctx, "doc-1_contract.txt", strings.NewReader("WHEREAS")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reader, err := storage.Open(ctx, "doc-1_contract.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read stored document: %v", err)
	}
	if string(raw) != "WHEREAS" {
		t.Fatalf("unexpected content %q", raw)
	}
}

func TestOpenMissingKey(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := storage.Open(context.Background(), "absent.txt"); !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTraversalKeysAreFlattened(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := storage.Save(ctx, "../../etc/doc-2_escape.txt", strings.NewReader("data")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := storage.Open(ctx, "doc-2_escape.txt"); err != nil {
		t.Fatalf("flattened key not readable: %v", err)
	}

	if err := storage.Save(ctx, "..", strings.NewReader("data")); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bare traversal key, got %v", err)
	}
}
