package iris

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyChangesAcceptsValidGo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.go")
	if err := os.WriteFile(path, []byte("package p\n\nfunc F() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !verifyChanges(path) {
		t.Fatal("expected valid go file to pass verification")
	}
}

func TestVerifyChangesRejectsBrokenGo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.go")
	if err := os.WriteFile(path, []byte("not valid go {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if verifyChanges(path) {
		t.Fatal("expected broken go file to fail verification")
	}
}

func TestVerifyChangesPassesThroughNonGoFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("anything goes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !verifyChanges(path) {
		t.Fatal("expected non-go file to pass through verification")
	}
}
