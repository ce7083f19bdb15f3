package library

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "a.PNG"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 images, got %v", paths)
	}
	if filepath.Base(paths[0]) != "a.PNG" || filepath.Base(paths[1]) != "b.png" {
		t.Fatalf("unexpected order: %v", paths)
	}
}

func TestNewSessionRequiresImages(t *testing.T) {
	if _, err := NewSession(t.TempDir()); err == nil {
		t.Fatal("expected error for empty folder")
	}
}

func TestSessionCursorAndSavedState(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.png", "two.png", "three.png"} {
		writePNG(t, filepath.Join(dir, name), 8, 6)
	}
	s, err := NewSession(dir)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Len() != 3 || s.Index() != 0 {
		t.Fatalf("unexpected initial state: len=%d idx=%d", s.Len(), s.Index())
	}
	if s.Prev() {
		t.Fatal("Prev at start should not move")
	}
	if s.Stem() != "one" {
		t.Fatalf("expected stem 'one', got %q", s.Stem())
	}

	s.MarkSaved()
	if !s.Saved() || s.AllSaved() {
		t.Fatalf("unexpected saved state: saved=%v all=%v", s.Saved(), s.AllSaved())
	}

	if !s.Next() || !s.Next() {
		t.Fatal("expected Next to advance twice")
	}
	if s.Next() {
		t.Fatal("Next at end should not move")
	}
	if s.Saved() {
		t.Fatal("third image not saved yet")
	}
	s.MarkSaved()
	if !s.Prev() {
		t.Fatal("expected Prev to move")
	}
	s.MarkSaved()
	if !s.AllSaved() {
		t.Fatalf("expected all saved after %d marks", s.SavedCount())
	}
}

func TestSessionLoadDecodesImage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img.png"), 20, 10)
	s, err := NewSession(dir)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	img, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestLoadRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}
