package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "dirstamp-storage-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		local, err := NewLocal(tempDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		if local == nil {
			t.Fatal("NewLocal() returned nil")
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want absolute path", local.Root())
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		if err == nil {
			t.Fatal("NewLocal() should fail for non-existent path")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("NewLocal() error = %v, want wrapped os.ErrNotExist", err)
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "dirstamp-file-*")
		if err != nil {
			t.Fatalf("failed to create temp file: %v", err)
		}
		tempFile.Close()
		defer os.Remove(tempFile.Name())

		_, err = NewLocal(tempFile.Name())
		if err == nil {
			t.Error("NewLocal() should fail for file path (not directory)")
		}
	})

	t.Run("RelativePath", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "dirstamp-storage-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		oldWd, _ := os.Getwd()
		os.Chdir(filepath.Dir(tempDir))
		defer os.Chdir(oldWd)

		relPath := filepath.Base(tempDir)
		local, err := NewLocal(relPath)
		if err != nil {
			t.Fatalf("NewLocal() should work with relative path: %v", err)
		}
		defer local.Close()
	})
}

// TestLocalReadDir tests listing immediate children
func TestLocalReadDir(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string][]byte{
		"file1.txt":        []byte("content1"),
		"file2.txt":        []byte("content2"),
		"subdir/file3.txt": []byte("content3"),
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("RootIsNotRecursive", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, ".")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}

		if len(entries) != 3 {
			t.Fatalf("ReadDir() returned %d entries, want 3", len(entries))
		}

		fileCount, dirCount := 0, 0
		for _, e := range entries {
			switch e.Kind {
			case KindFile:
				fileCount++
			case KindDir:
				dirCount++
			}
			if e.StatErr != nil {
				t.Errorf("unexpected StatErr for %s: %v", e.Name, e.StatErr)
			}
			if e.ModTime.IsZero() {
				t.Errorf("ModTime should not be zero for %s", e.Name)
			}
		}
		if fileCount != 2 || dirCount != 1 {
			t.Errorf("got %d files, %d dirs; want 2 files, 1 dir", fileCount, dirCount)
		}
	})

	t.Run("Subdir", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, "subdir")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}

		if len(entries) != 1 {
			t.Fatalf("ReadDir() returned %d entries, want 1", len(entries))
		}
		if entries[0].RelativePath != filepath.Join("subdir", "file3.txt") {
			t.Errorf("RelativePath = %s", entries[0].RelativePath)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := local.ReadDir(ctx, "missing"); err == nil {
			t.Error("ReadDir() should fail for a missing directory")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := local.ReadDir(ctx, ".")
		if err == nil {
			t.Error("ReadDir() should return error on cancelled context")
		}
	})
}

// TestLocalSymlinkIsOther checks that links are not classified as files or directories
func TestLocalSymlinkIsOther(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tempDir, "target"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := os.Symlink(filepath.Join(tempDir, "target"), filepath.Join(tempDir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	entries, err := local.ReadDir(context.Background(), ".")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	for _, e := range entries {
		if e.Name == "link" && e.Kind != KindOther {
			t.Errorf("symlink Kind = %v, want KindOther", e.Kind)
		}
	}
}

// TestLocalStat tests the Stat method
func TestLocalStat(t *testing.T) {
	tempDir := t.TempDir()

	content := []byte("test content")
	if err := os.WriteFile(filepath.Join(tempDir, "stat.txt"), content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ExistingFile", func(t *testing.T) {
		info, err := local.Stat(ctx, "stat.txt")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.IsDir() {
			t.Error("IsDir = true, want false")
		}
		if info.RelativePath != "stat.txt" {
			t.Errorf("RelativePath = %s, want stat.txt", info.RelativePath)
		}
	})

	t.Run("Root", func(t *testing.T) {
		info, err := local.Stat(ctx, ".")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.IsDir() {
			t.Error("IsDir = false, want true")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := local.Stat(ctx, "nonexistent.txt")
		if err == nil {
			t.Error("Stat() should fail for non-existent file")
		}
	})
}

// TestLocalSetModTime tests changing directory timestamps
func TestLocalSetModTime(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tempDir, "dir"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	t.Run("Directory", func(t *testing.T) {
		want := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		if err := local.SetModTime(ctx, "dir", want); err != nil {
			t.Fatalf("SetModTime() error = %v", err)
		}

		info, err := os.Stat(filepath.Join(tempDir, "dir"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.ModTime().Equal(want) {
			t.Errorf("ModTime = %v, want %v", info.ModTime(), want)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		err := local.SetModTime(ctx, "missing", time.Now())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("SetModTime() error = %v, want wrapped os.ErrNotExist", err)
		}
	})
}

// TestOpen tests backend selection
func TestOpen(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"", false},
		{KindOS, false},
		{KindBilly, false},
		{"s3", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			backend, err := Open(tt.kind, tempDir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
			if backend != nil {
				backend.Close()
			}
		})
	}
}

// TestBackendInterface verifies both backends implement Backend
func TestBackendInterface(t *testing.T) {
	var _ Backend = (*Local)(nil)
	var _ Backend = (*Billy)(nil)
}
