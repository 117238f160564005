package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"docview/internal/model"
)

// localStorage implements Storage on a local directory. It holds no state
// beyond the root path; every call reads live filesystem state.
type localStorage struct {
	root string
}

// NewLocal creates the root directory if absent and returns a Storage over it.
func NewLocal(root string) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStorage{root: root}, nil
}

// cleanName rejects names that are empty or would resolve outside the root.
// Overwrite semantics are otherwise preserved: a valid name maps directly to
// <root>/<name> with no uniqueness enforcement.
func cleanName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

func (s *localStorage) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *localStorage) List(ctx context.Context) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list storage root: %w", err)
	}
	// os.ReadDir already sorts by name ascending.
	files := make([]model.FileInfo, 0, len(entries))
	for _, e := range entries {
		fi := model.FileInfo{Name: e.Name(), IsDir: e.IsDir()}
		if info, err := e.Info(); err == nil {
			fi.Size = info.Size()
			fi.ModTime = info.ModTime()
		}
		files = append(files, fi)
	}
	return files, nil
}

func (s *localStorage) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := cleanName(name); err != nil {
		return 0, err
	}
	f, err := os.Create(s.path(name))
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("write %s: %w", name, err)
	}
	return n, nil
}

func (s *localStorage) ReadAll(ctx context.Context, name string) ([]byte, error) {
	if err := cleanName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *localStorage) WriteText(ctx context.Context, name string, content string) error {
	if err := cleanName(name); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *localStorage) Delete(ctx context.Context, name string) error {
	if err := cleanName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (s *localStorage) RemoveDir(ctx context.Context, name string) error {
	if err := cleanName(name); err != nil {
		return err
	}
	if err := os.RemoveAll(s.path(name)); err != nil {
		return fmt.Errorf("remove dir %s: %w", name, err)
	}
	return nil
}

func (s *localStorage) SaveImage(folder, name string, data []byte) (string, error) {
	if err := cleanName(folder); err != nil {
		return "", err
	}
	if err := cleanName(name); err != nil {
		return "", err
	}
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir %s: %w", folder, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	return path.Join("/uploads", folder, name), nil
}

func (s *localStorage) Exists(name string) bool {
	if err := cleanName(name); err != nil {
		return false
	}
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *localStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("stat storage root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root %s is not a directory", s.root)
	}
	return nil
}

func (s *localStorage) Root() string {
	return s.root
}
