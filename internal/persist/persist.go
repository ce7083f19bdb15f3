// Package persist writes the approved crop and its caption to the output
// folder: a Lanczos-resampled square PNG plus a paired text file.
package persist

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/example/croptag/internal/geometry"
)

// Writer persists approved crops into one output folder.
type Writer struct {
	outDir string
	size   int
}

// NewWriter creates the output folder if needed. size is the side length
// of the saved square images.
func NewWriter(outDir string, size int) (*Writer, error) {
	if size < 1 {
		return nil, fmt.Errorf("persist: output size must be positive, got %d", size)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	return &Writer{outDir: outDir, size: size}, nil
}

// OutDir returns the output folder path.
func (w *Writer) OutDir() string { return w.outDir }

// ImagePath returns where the cropped image for stem is written.
func (w *Writer) ImagePath(stem string) string {
	return filepath.Join(w.outDir, stem+".png")
}

// CaptionPath returns where the caption for stem is written.
func (w *Writer) CaptionPath(stem string) string {
	return filepath.Join(w.outDir, stem+".txt")
}

// Save crops img to box, resamples the result to the configured square
// size and writes <stem>.png and <stem>.txt. It returns the image path.
func (w *Writer) Save(img image.Image, box geometry.Box, stem, captionText string) (string, error) {
	cropped := imaging.Crop(img, box.Rect())
	resized := imaging.Resize(cropped, w.size, w.size, imaging.Lanczos)

	imgPath := w.ImagePath(stem)
	if err := imaging.Save(resized, imgPath); err != nil {
		return "", fmt.Errorf("save %s: %w", imgPath, err)
	}

	txtPath := w.CaptionPath(stem)
	if err := os.WriteFile(txtPath, []byte(captionText+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", txtPath, err)
	}
	return imgPath, nil
}
