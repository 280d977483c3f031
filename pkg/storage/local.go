package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// ReadDir returns the immediate children of a directory
func (l *Local) ReadDir(ctx context.Context, path string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(l.rootPath, path)

	// os.ReadDir sorts by name; reading the handle directly keeps the OS order
	dir, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	defer dir.Close()

	dirEntries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]FileInfo, 0, len(dirEntries))
	for _, d := range dirEntries {
		entry := FileInfo{
			Name:         d.Name(),
			Path:         filepath.Join(fullPath, d.Name()),
			RelativePath: filepath.Join(path, d.Name()),
		}

		info, err := d.Info()
		if err != nil {
			entry.StatErr = err
			entries = append(entries, entry)
			continue
		}

		entry.Size = info.Size()
		entry.ModTime = info.ModTime()
		entry.Kind = kindOf(info.Mode())
		entries = append(entries, entry)
	}

	return entries, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, path)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	relPath, err := filepath.Rel(l.rootPath, fullPath)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Name:         info.Name(),
		Path:         fullPath,
		RelativePath: relPath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Kind:         kindOf(info.Mode()),
	}, nil
}

// SetModTime changes the modification time of a file or directory
func (l *Local) SetModTime(ctx context.Context, path string, mtime time.Time) error {
	fullPath := filepath.Join(l.rootPath, path)

	// A zero access time leaves atime unchanged
	if err := os.Chtimes(fullPath, time.Time{}, mtime); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}

	return nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func kindOf(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	default:
		return KindOther
	}
}
