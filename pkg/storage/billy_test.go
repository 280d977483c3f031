package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

func newBillyTree(t *testing.T) (string, *Billy) {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "top.txt"), []byte("top"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	b, err := NewBillyOS(root)
	if err != nil {
		t.Fatalf("NewBillyOS failed: %v", err)
	}
	return root, b
}

func TestNewBilly(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		if _, err := NewBilly(osfs.New(t.TempDir())); err != nil {
			t.Fatalf("NewBilly failed: %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := NewBillyOS(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("NewBillyOS should fail for a missing root")
		}
	})
}

func TestBillyReadDir(t *testing.T) {
	_, b := newBillyTree(t)
	ctx := context.Background()

	entries, err := b.ReadDir(ctx, ".")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ReadDir returned %d entries, want 2", len(entries))
	}

	kinds := map[string]EntryKind{}
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	if kinds["docs"] != KindDir {
		t.Errorf("docs kind = %v, want KindDir", kinds["docs"])
	}
	if kinds["top.txt"] != KindFile {
		t.Errorf("top.txt kind = %v, want KindFile", kinds["top.txt"])
	}

	nested, err := b.ReadDir(ctx, "docs")
	if err != nil {
		t.Fatalf("ReadDir(docs) failed: %v", err)
	}
	if len(nested) != 1 || nested[0].RelativePath != filepath.Join("docs", "a.txt") {
		t.Errorf("ReadDir(docs) = %+v", nested)
	}
}

func TestBillyStat(t *testing.T) {
	_, b := newBillyTree(t)

	info, err := b.Stat(context.Background(), "docs")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("expected directory, got %v", info.Kind)
	}
	if info.RelativePath != "docs" {
		t.Errorf("RelativePath = %s, want docs", info.RelativePath)
	}
}

func TestBillySetModTime(t *testing.T) {
	root, b := newBillyTree(t)
	if _, ok := b.fs.(billy.Change); !ok {
		err := b.SetModTime(context.Background(), "docs", time.Now())
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("SetModTime error = %v, want ErrUnsupported", err)
		}
		return
	}

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := b.SetModTime(context.Background(), "docs", want); err != nil {
		t.Fatalf("SetModTime failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "docs"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.ModTime().Equal(want) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), want)
	}
}
