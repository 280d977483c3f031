package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Billy is a storage backend on top of a go-billy filesystem.
// Listing order is whatever the billy implementation returns (sorted by name for osfs).
type Billy struct {
	fs billy.Filesystem
}

// NewBilly wraps an existing billy filesystem. The root of fs is the traversal root.
func NewBilly(fs billy.Filesystem) (*Billy, error) {
	info, err := fs.Stat(".")
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", fs.Root())
	}
	return &Billy{fs: fs}, nil
}

// NewBillyOS creates a billy backend rooted at a directory of the local filesystem
func NewBillyOS(rootPath string) (*Billy, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	return NewBilly(osfs.New(absPath))
}

// ReadDir returns the immediate children of a directory.
// billy reports entries as already-stat'ed os.FileInfo values, so an entry
// whose lstat fails makes the whole listing fail; StatErr is never set here
// and such a directory is skipped as unlistable instead.
func (b *Billy) ReadDir(ctx context.Context, dir string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := b.fs.ReadDir(toSlash(dir))
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", dir, err)
	}

	entries := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		rel := filepath.Join(dir, info.Name())
		entries = append(entries, FileInfo{
			Name:         info.Name(),
			Path:         b.fs.Join(b.fs.Root(), toSlash(rel)),
			RelativePath: rel,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			Kind:         kindOf(info.Mode()),
		})
	}

	return entries, nil
}

// Stat returns file metadata
func (b *Billy) Stat(ctx context.Context, name string) (*FileInfo, error) {
	info, err := b.fs.Stat(toSlash(name))
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", name, err)
	}

	return &FileInfo{
		Name:         info.Name(),
		Path:         b.fs.Join(b.fs.Root(), toSlash(name)),
		RelativePath: filepath.Clean(name),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Kind:         kindOf(info.Mode()),
	}, nil
}

// SetModTime changes the modification time when the filesystem supports billy.Change
func (b *Billy) SetModTime(ctx context.Context, name string, mtime time.Time) error {
	change, ok := b.fs.(billy.Change)
	if !ok {
		return fmt.Errorf("billy: chtimes %q: %w", name, ErrUnsupported)
	}

	if err := change.Chtimes(toSlash(name), time.Time{}, mtime); err != nil {
		return fmt.Errorf("billy: chtimes %q: %w", name, err)
	}

	return nil
}

// Root returns the root of the underlying filesystem
func (b *Billy) Root() string {
	return b.fs.Root()
}

// Close releases resources (no-op for billy filesystems)
func (b *Billy) Close() error {
	return nil
}

func toSlash(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
