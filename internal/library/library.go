// Package library scans the input folder and walks the operator through
// its images one at a time.
package library

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// IsImageFile reports whether the filename has a supported image extension.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// List returns the image files directly inside dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load decodes the image at path. WebP files that the registered decoders
// reject get one more chance through the dedicated codec.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err == nil {
		return img, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, ferr := os.Open(path)
		if ferr == nil {
			defer f.Close()
			if img, werr := webp.Decode(f); werr == nil {
				return img, nil
			}
		}
	}
	return nil, fmt.Errorf("decode %s: %w", path, err)
}

// Session is a cursor over the images of one input folder. It remembers
// which images have been saved so the review loop can tell when the whole
// folder is done.
type Session struct {
	paths []string
	idx   int
	saved map[int]bool
}

// NewSession scans dir and positions the cursor on the first image.
func NewSession(dir string) (*Session, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images in %s (expected jpg, png or webp files)", dir)
	}
	return &Session{paths: paths, saved: make(map[int]bool)}, nil
}

// Len returns the number of images in the session.
func (s *Session) Len() int { return len(s.paths) }

// Index returns the zero-based cursor position.
func (s *Session) Index() int { return s.idx }

// Path returns the file path of the current image.
func (s *Session) Path() string { return s.paths[s.idx] }

// Paths returns every image path in review order.
func (s *Session) Paths() []string { return s.paths }

// Stem returns the current image's filename without its extension, used to
// derive the output artifact names.
func (s *Session) Stem() string {
	base := filepath.Base(s.Path())
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load decodes the current image.
func (s *Session) Load() (image.Image, error) { return Load(s.Path()) }

// Next advances the cursor and reports whether it moved.
func (s *Session) Next() bool {
	if s.idx >= len(s.paths)-1 {
		return false
	}
	s.idx++
	return true
}

// Prev moves the cursor back and reports whether it moved.
func (s *Session) Prev() bool {
	if s.idx <= 0 {
		return false
	}
	s.idx--
	return true
}

// MarkSaved records that the current image has been persisted.
func (s *Session) MarkSaved() { s.saved[s.idx] = true }

// Saved reports whether the current image has been persisted.
func (s *Session) Saved() bool { return s.saved[s.idx] }

// SavedCount returns how many images have been persisted.
func (s *Session) SavedCount() int { return len(s.saved) }

// AllSaved reports whether every image in the folder has been persisted.
func (s *Session) AllSaved() bool { return len(s.saved) == len(s.paths) }
