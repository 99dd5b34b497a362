package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/legalaid/docgate/internal/core/domain"
)

type storageFake struct {
	saved map[string][]byte
	err   error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[key] = raw
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishDocumentSubmitted(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *queueFake) SubscribeDocumentSubmitted(context.Context, func(context.Context, string) error) error {
	return nil
}

type createRepoFake struct {
	repoFake
	created []*domain.Document
	err     error
}

func (f *createRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, doc)
	return nil
}

func TestSubmitStoresRecordsAndPublishes(t *testing.T) {
	repo := &createRepoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewSubmitDocumentUseCase(repo, storage, queue)

	doc, err := uc.Submit(context.Background(), "lease agreement.pdf", "application/pdf", bytes.NewBufferString("%PDF"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if doc.Status != domain.StatusSubmitted {
		t.Fatalf("expected submitted status, got %s", doc.Status)
	}
	if len(repo.created) != 1 || len(queue.published) != 1 {
		t.Fatalf("expected one record and one event, got %d/%d", len(repo.created), len(queue.published))
	}
	if queue.published[0] != doc.ID {
		t.Fatalf("published id %q does not match document %q", queue.published[0], doc.ID)
	}
	if !strings.HasSuffix(doc.StoragePath, "lease_agreement.pdf") {
		t.Fatalf("unexpected storage key: %s", doc.StoragePath)
	}
	if _, ok := storage.saved[doc.StoragePath]; !ok {
		t.Fatalf("payload not stored under %s", doc.StoragePath)
	}
}

func TestSubmitFailsWhenQueueFails(t *testing.T) {
	uc := NewSubmitDocumentUseCase(&createRepoFake{}, &storageFake{}, &queueFake{err: errors.New("nats down")})
	if _, err := uc.Submit(context.Background(), "a.txt", "text/plain", bytes.NewBufferString("x")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"  weird name!.pdf": "__weird_name_.pdf",
		"../../etc/passwd":  "passwd",
		"":                  "document.bin",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
