package iris

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindFilesToReadSkipsHiddenAndVendorDirs(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("a.go", "package a")
	mustWrite(".hidden/b.go", "package b")
	mustWrite("vendor/c.go", "package c")
	mustWrite("pkg/d.go", "package d")
	mustWrite("README.md", "not go")

	files, err := findFilesToRead(root)
	if err != nil {
		t.Fatalf("findFilesToRead: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 .go files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Base(filepath.Dir(f)) == ".hidden" || filepath.Base(filepath.Dir(f)) == "vendor" {
			t.Fatalf("unexpected file from skipped dir: %s", f)
		}
	}
}

func TestFindFilesToReadCapsAtMax(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < maxFilesToRead+5; i++ {
		path := filepath.Join(root, "f"+string(rune('a'+i))+".go")
		if err := os.WriteFile(path, []byte("package p"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := findFilesToRead(root)
	if err != nil {
		t.Fatalf("findFilesToRead: %v", err)
	}
	if len(files) != maxFilesToRead {
		t.Fatalf("expected cap of %d files, got %d", maxFilesToRead, len(files))
	}
}

func TestChecksumMissingFileReturnsEmpty(t *testing.T) {
	sum, err := checksum(filepath.Join(t.TempDir(), "missing.go"))
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if sum != "" {
		t.Fatalf("expected empty checksum for missing file, got %q", sum)
	}
}

func TestChecksumIsStableForSameContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.go")
	if err := os.WriteFile(path, []byte("package p\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := checksum(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := checksum(path)
	if err != nil {
		t.Fatal(err)
	}
	if a != b || a == "" {
		t.Fatalf("expected stable non-empty checksum, got %q and %q", a, b)
	}
}
