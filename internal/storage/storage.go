package storage

import (
	"context"
	"errors"
	"io"

	"docview/internal/model"
)

// Package storage contains the upload-directory abstraction. The local
// filesystem is the sole persistence layer: the directory listing at request
// time is the single source of truth for which files exist.

// ErrInvalidName is returned for names that are empty or would escape the
// storage root (path separators, dot segments).
var ErrInvalidName = errors.New("invalid file name")

// Storage is the contract over a single root folder holding uploaded files
// and per-file image subfolders.
//
// No operation is transactional; concurrent writes to the same name race and
// the last writer wins.
type Storage interface {
	// List returns the current directory entries sorted lexicographically by
	// name. Image helper folders are not filtered out.
	List(ctx context.Context) ([]model.FileInfo, error)
	// Save creates or overwrites the named file from r and returns the number
	// of bytes written.
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	// ReadAll returns the named file's bytes.
	ReadAll(ctx context.Context, name string) ([]byte, error)
	// WriteText replaces the named file's content with the given text.
	WriteText(ctx context.Context, name string, content string) error
	// Delete removes the named file. Deleting an absent file is not an error.
	Delete(ctx context.Context, name string) error
	// RemoveDir removes the named subfolder recursively. Removing an absent
	// folder is not an error.
	RemoveDir(ctx context.Context, name string) error
	// SaveImage writes an image under <root>/<folder>/<name>, creating the
	// folder if absent, and returns the servable /uploads path.
	SaveImage(folder, name string, data []byte) (string, error)
	// Exists reports whether the named file is present.
	Exists(name string) bool
	// Ping verifies the storage root is an accessible directory.
	Ping(ctx context.Context) error
	// Root returns the root folder path.
	Root() string
}
