package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrExists is returned by Upload when the target object already exists and
// overwrite was not requested.
var ErrExists = errors.New("object already exists")

// FileInfo describes a stored object.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Store is the file storage collaborator: CV uploads and the salary-guide
// document slot live behind it.
type Store interface {
	// Upload writes the object at path and returns the stored path.
	// Without overwrite, an existing object fails with ErrExists.
	Upload(ctx context.Context, path string, r io.Reader, overwrite bool) (string, error)
	// List returns objects whose path starts with prefix.
	List(ctx context.Context, prefix string) ([]FileInfo, error)
	// Remove deletes the given objects. Missing objects are not an error.
	Remove(ctx context.Context, paths []string) error
	// Open returns a reader for the object at path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// DiskStore implements Store on a local directory standing in for the hosted
// cv-files bucket.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at the given directory, creating
// it if necessary.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// resolve maps an object path onto the root directory, rejecting anything
// that would escape it.
func (s *DiskStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + path)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Upload writes an object to disk.
func (s *DiskStore) Upload(ctx context.Context, path string, r io.Reader, overwrite bool) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", ErrExists
		}
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return path, nil
}

// List returns stored objects matching the prefix, sorted by path.
func (s *DiskStore) List(ctx context.Context, prefix string) ([]FileInfo, error) {
	var out []FileInfo
	err := filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !strings.HasPrefix(rel, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, FileInfo{Path: rel, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Remove deletes objects; paths that no longer exist are ignored.
func (s *DiskStore) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		full, err := s.resolve(path)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove object %q: %w", path, err)
		}
	}
	return nil
}

// Open returns a reader for a stored object.
func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %q: %w", path, err)
	}
	return f, nil
}
