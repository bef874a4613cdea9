// Package source provides access to the files being checked.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotDirectory is returned when a source root is not a directory.
	ErrNotDirectory = errors.New("source: root is not a directory")
	// ErrOutsideRoot is returned for paths escaping the source root.
	ErrOutsideRoot = errors.New("source: path outside root")
)

// Source is a tree of files addressed by paths relative to Root.
type Source interface {
	// Root returns the root path of the source.
	Root() string
	// Open opens the file at the relative path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Close releases the resources held by the source.
	Close() error
}

// LocalSource is a directory on the local filesystem.
type LocalSource struct {
	root string
}

// NewLocalSource creates a source rooted at dir.
func NewLocalSource(dir string) (*LocalSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return &LocalSource{root: filepath.Clean(dir)}, nil
}

func (s *LocalSource) Root() string {
	return s.root
}

// Path returns the filesystem path of a relative path.
func (s *LocalSource) Path(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalSource) Open(ctx context.Context, rel string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.Path(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalSource) Close() error {
	return nil
}

// ReadFile reads a file from src using a path relative to src.Root().
func ReadFile(ctx context.Context, src Source, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := src.Open(ctx, rel)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", rel, err)
	}

	return content, nil
}
