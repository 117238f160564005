package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"docview/internal/extract"
	"docview/internal/model"
	"docview/internal/storage"
)

var (
	// ErrNotFound means the named file is not in the storage directory.
	ErrNotFound = errors.New("file not found")
	// ErrUnsupportedFormat means the file extension has no extractor.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrNoText means extraction succeeded but produced only whitespace.
	ErrNoText = errors.New("no readable text found")
	// ErrNotEditable means the file is not a .txt file and cannot be updated.
	ErrNotEditable = errors.New("file is not editable")
)

// ExtractionError reports a parse failure during download-variant extraction.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// Placeholder texts rendered on the preview page when extraction yields no
// usable content or fails.
const (
	placeholderUnsupported = "[Unsupported file format for preview.]"
	placeholderNoContent   = "[No readable content found.]"
	placeholderEmptyDocx   = "[This DOCX file appears empty or unsupported.]"
)

// DocumentService defines the use cases for the file management workflow.
type DocumentService interface {
	// List returns the current storage directory entries, sorted by name.
	List(ctx context.Context) ([]model.FileInfo, error)

	// Upload writes the content under the given filename, overwriting any
	// existing file of the same name.
	Upload(ctx context.Context, r io.Reader, filename string) error

	// Preview extracts display text and images for the view page. Returns
	// ErrNotFound for missing files; extraction problems never surface as
	// errors, they become placeholder content.
	Preview(ctx context.Context, filename string) (*model.Preview, error)

	// ExtractText runs the download-variant extraction. Returns ErrNotFound,
	// ErrUnsupportedFormat, ErrNoText, or *ExtractionError as distinct
	// outcomes.
	ExtractText(ctx context.Context, filename string) (string, error)

	// Update replaces a .txt file's content with the trimmed new content.
	// Returns ErrNotEditable for any other extension without writing.
	Update(ctx context.Context, filename, content string) error

	// Delete removes the file and its image folder if present. Deleting an
	// absent file is not an error.
	Delete(ctx context.Context, filename string) error
}

// documentService is a concrete implementation of DocumentService backed by
// a storage directory.
type documentService struct {
	store storage.Storage
	log   *zap.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, log *zap.Logger) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{store: store, log: log}
}

func (s *documentService) List(ctx context.Context) ([]model.FileInfo, error) {
	return s.store.List(ctx)
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename string) error {
	if r == nil {
		return errors.New("reader is nil")
	}
	if _, err := s.store.Save(ctx, filename, r); err != nil {
		return err
	}
	return nil
}

func (s *documentService) Preview(ctx context.Context, filename string) (*model.Preview, error) {
	if !s.store.Exists(filename) {
		return nil, ErrNotFound
	}
	data, err := s.store.ReadAll(ctx, filename)
	if err != nil {
		return nil, err
	}

	res := extract.Preview(filename, data, s.store)
	p := &model.Preview{Filename: filename, Content: res.Text, Images: res.Images}

	switch res.Outcome {
	case extract.OutcomeUnsupported:
		p.Content = placeholderUnsupported
	case extract.OutcomeEmpty:
		if res.Format == "docx" {
			p.Content = placeholderEmptyDocx
		} else {
			p.Content = placeholderNoContent
		}
	case extract.OutcomeFailed:
		s.log.Warn("extraction failed",
			zap.String("filename", filename),
			zap.String("format", res.Format),
			zap.String("reason", res.Reason))
		p.Content = fmt.Sprintf("[Error reading file: %s]", res.Reason)
	}
	return p, nil
}

func (s *documentService) ExtractText(ctx context.Context, filename string) (string, error) {
	if !s.store.Exists(filename) {
		return "", ErrNotFound
	}
	data, err := s.store.ReadAll(ctx, filename)
	if err != nil {
		return "", err
	}

	res := extract.PlainText(filename, data)
	switch res.Outcome {
	case extract.OutcomeUnsupported:
		return "", ErrUnsupportedFormat
	case extract.OutcomeEmpty:
		return "", ErrNoText
	case extract.OutcomeFailed:
		s.log.Warn("extraction failed",
			zap.String("filename", filename),
			zap.String("format", res.Format),
			zap.String("reason", res.Reason))
		return "", &ExtractionError{Reason: res.Reason}
	}
	return res.Text, nil
}

func (s *documentService) Update(ctx context.Context, filename, content string) error {
	if extract.Ext(filename) != "txt" {
		return ErrNotEditable
	}
	return s.store.WriteText(ctx, filename, strings.TrimSpace(content))
}

func (s *documentService) Delete(ctx context.Context, filename string) error {
	if err := s.store.Delete(ctx, filename); err != nil {
		return err
	}
	// The image folder name is derived from the owning file's name.
	return s.store.RemoveDir(ctx, filename+"_images")
}
