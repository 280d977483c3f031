package storage

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported is returned when a backend cannot change timestamps
var ErrUnsupported = errors.New("operation not supported by backend")

// EntryKind classifies a directory entry
type EntryKind int

const (
	// KindOther covers symlinks, devices, sockets and anything else the walker ignores
	KindOther EntryKind = iota
	KindFile
	KindDir
)

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	Name         string
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	Kind         EntryKind

	// StatErr is set when the entry was listed but its metadata could not be read.
	// ModTime and Kind are meaningless in that case.
	StatErr error
}

// IsDir reports whether the entry is a directory
func (fi *FileInfo) IsDir() bool {
	return fi.Kind == KindDir
}

// Backend defines the metadata primitives the stamper needs.
// Paths are relative to the backend root; "." is the root itself.
type Backend interface {
	// ReadDir lists the immediate children of a directory in the order the
	// underlying filesystem yields them
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)

	// Stat returns metadata for a single path
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// SetModTime changes the modification time of path, leaving access time alone
	SetModTime(ctx context.Context, path string, mtime time.Time) error

	// Root returns the absolute root path of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
