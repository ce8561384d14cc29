package pdfstore

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListRecursiveSorted(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.pdf"))
	touch(t, filepath.Join(root, "sub", "a.pdf"))
	touch(t, filepath.Join(root, "sub", "deep", "c.PDF"))
	touch(t, filepath.Join(root, "notes.txt"))

	var s Store
	paths, err := s.List(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		filepath.Join(root, "b.pdf"),
		filepath.Join(root, "sub", "a.pdf"),
		filepath.Join(root, "sub", "deep", "c.PDF"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListEmptyFolder(t *testing.T) {
	var s Store
	paths, err := s.List(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("got %v, want none", paths)
	}
}

func TestListMissingRoot(t *testing.T) {
	var s Store
	if _, err := s.List(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Error("expected error for missing root")
	}
}
