package service

import (
	"bytes"
	"context"
	"fmt"
	"go-recruit-app/internal/storage"
	"io"
)

// salaryGuideBase is the fixed base name of the single salary-guide document
// slot; only the extension varies between uploads.
const salaryGuideBase = "employee_doc"

// DocumentServicer defines the interface for the salary-guide document slot.
type DocumentServicer interface {
	ReplaceSalaryGuide(ctx context.Context, ext string, r io.Reader) error
	SalaryGuide(ctx context.Context) (io.ReadCloser, string, error)
}

// DocumentService manages the salary-guide slot in file storage. The slot is
// a shared mutable resource with no lock; concurrent replacements race with
// last-write-wins.
type DocumentService struct {
	store storage.Store
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(store storage.Store) *DocumentService {
	return &DocumentService{store: store}
}

// ReplaceSalaryGuide removes any stale variant of the document and uploads
// the new one. If the plain upload fails (e.g. a concurrent replacement
// re-created the object between remove and upload), it is retried once with
// the overwrite policy before the error is surfaced as fatal to the action.
func (s *DocumentService) ReplaceSalaryGuide(ctx context.Context, ext string, r io.Reader) error {
	// The reader may need to be replayed on retry.
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read salary guide upload: %w", err)
	}

	files, err := s.store.List(ctx, salaryGuideBase)
	if err != nil {
		return fmt.Errorf("failed to list salary guide documents: %w", err)
	}
	stale := make([]string, 0, len(files))
	for _, f := range files {
		stale = append(stale, f.Path)
	}
	if len(stale) > 0 {
		if err := s.store.Remove(ctx, stale); err != nil {
			return fmt.Errorf("failed to remove stale salary guide: %w", err)
		}
	}

	path := salaryGuideBase + ext
	if _, err := s.store.Upload(ctx, path, bytes.NewReader(buf), false); err != nil {
		if _, err := s.store.Upload(ctx, path, bytes.NewReader(buf), true); err != nil {
			return fmt.Errorf("failed to upload salary guide: %w", err)
		}
	}
	return nil
}

// SalaryGuide opens the current document for download. A missing document is
// not an error; the reader is nil.
func (s *DocumentService) SalaryGuide(ctx context.Context) (io.ReadCloser, string, error) {
	files, err := s.store.List(ctx, salaryGuideBase)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list salary guide documents: %w", err)
	}
	if len(files) == 0 {
		return nil, "", nil
	}
	rc, err := s.store.Open(ctx, files[0].Path)
	if err != nil {
		return nil, "", err
	}
	return rc, files[0].Path, nil
}
