// Package geometry maintains the square crop region for the image being
// reviewed. All coordinates are in original-image pixel space; converting
// display pixels into that space is the caller's job.
package geometry

import (
	"fmt"
	"image"
	"math"
)

// DefaultMinSide is the smallest crop side permitted while resizing.
const DefaultMinSide = 10

// Bounds holds the pixel dimensions of the loaded image.
type Bounds struct {
	Width  int
	Height int
}

// Box is an axis-aligned square region in original-image pixels.
type Box struct {
	X0, Y0, X1, Y1 int
}

// Side returns the edge length of the box.
func (b Box) Side() int { return b.X1 - b.X0 }

// Rect converts the box to an image.Rectangle for pixel operations.
func (b Box) Rect() image.Rectangle { return image.Rect(b.X0, b.Y0, b.X1, b.Y1) }

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= float64(b.X0) && x <= float64(b.X1) &&
		y >= float64(b.Y0) && y <= float64(b.Y1)
}

// Corner identifies one of the four resize handles.
type Corner int

const (
	CornerTL Corner = iota
	CornerTR
	CornerBR
	CornerBL
)

func (c Corner) String() string {
	switch c {
	case CornerTL:
		return "top-left"
	case CornerTR:
		return "top-right"
	case CornerBR:
		return "bottom-right"
	case CornerBL:
		return "bottom-left"
	}
	return fmt.Sprintf("corner(%d)", int(c))
}

// CropBox owns the crop square for one image. Every mutation keeps the box
// square, inside the image bounds and at least minSide pixels wide. A new
// image gets a new CropBox; the zero value is not usable.
type CropBox struct {
	bounds  Bounds
	minSide int
	box     Box
}

// Option modifies a CropBox during creation.
type Option func(*CropBox)

// WithMinSide overrides the minimum crop side.
func WithMinSide(n int) Option {
	return func(c *CropBox) {
		if n > 0 {
			c.minSide = n
		}
	}
}

// New seeds a crop box for an image of the given bounds. When a suggestion
// is present it is clamped into bounds and adopted; otherwise the box is a
// square of preferredSide (capped to the image) centered in the image.
// Bounds with a non-positive dimension are a caller error.
func New(bounds Bounds, preferredSide int, suggestion *Box, opts ...Option) (*CropBox, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, fmt.Errorf("geometry: invalid image bounds %dx%d", bounds.Width, bounds.Height)
	}
	c := &CropBox{bounds: bounds, minSide: DefaultMinSide}
	for _, o := range opts {
		o(c)
	}
	if suggestion != nil {
		c.box = c.clampSuggestion(*suggestion)
		return c, nil
	}
	side := preferredSide
	if side < c.minSide {
		side = c.minSide
	}
	side = c.capSide(side)
	padX := (bounds.Width - side) / 2
	padY := (bounds.Height - side) / 2
	c.box = Box{padX, padY, padX + side, padY + side}
	return c, nil
}

// Current returns the box as of the last completed mutation.
func (c *CropBox) Current() Box { return c.box }

// Bounds returns the image dimensions the box is confined to.
func (c *CropBox) Bounds() Bounds { return c.bounds }

// MinSide returns the smallest side the box may shrink to.
func (c *CropBox) MinSide() int { return c.minSide }

// MoveBy translates the current box by the given original-pixel delta and
// clamps its position to the image bounds. The side never changes.
func (c *CropBox) MoveBy(dx, dy float64) Box { return c.MoveFrom(c.box, dx, dy) }

// MoveFrom translates start by (dx, dy) and adopts the result. Drag
// handlers call this with the box snapshotted at press time so repeated
// clamping cannot accumulate drift.
func (c *CropBox) MoveFrom(start Box, dx, dy float64) Box {
	side := start.Side()
	x0 := clampInt(start.X0+roundDelta(dx), 0, c.bounds.Width-side)
	y0 := clampInt(start.Y0+roundDelta(dy), 0, c.bounds.Height-side)
	c.box = Box{x0, y0, x0 + side, y0 + side}
	return c.box
}

// ResizeFromCorner grows or shrinks start by dragging the given corner. The
// single scalar applied to both adjacent edges is whichever of dx, dy has
// the larger magnitude, so a diagonal drag follows the dominant axis. The
// opposite corner stays fixed unless an edge hits the image boundary, in
// which case that edge is pinned and the box re-squared inward; squareness
// and containment win over keeping the anchor corner put.
func (c *CropBox) ResizeFromCorner(corner Corner, dx, dy float64, start Box) Box {
	delta := dx
	if math.Abs(dy) > math.Abs(dx) {
		delta = dy
	}
	d := roundDelta(delta)

	b := start
	switch corner {
	case CornerTL:
		b.X0 += d
		b.Y0 += d
	case CornerTR:
		b.X1 += d
		b.Y0 -= d
	case CornerBR:
		b.X1 += d
		b.Y1 += d
	case CornerBL:
		b.X0 -= d
		b.Y1 += d
	}

	side := b.X1 - b.X0
	if side < c.minSide {
		side = c.minSide
	}
	side = c.capSide(side)

	// Re-square against the anchored corner before clamping to bounds.
	switch corner {
	case CornerTL:
		b.X0, b.Y0 = b.X1-side, b.Y1-side
	case CornerTR:
		b.X1, b.Y0 = b.X0+side, b.Y1-side
	case CornerBR:
		b.X1, b.Y1 = b.X0+side, b.Y0+side
	case CornerBL:
		b.X0, b.Y1 = b.X1-side, b.Y0+side
	}

	// Pin any edge that fell outside the image and shift the opposite edge
	// to keep the box square. side <= min(width, height), so at most one
	// edge per axis can be out of range.
	if b.X0 < 0 {
		b.X0, b.X1 = 0, side
	}
	if b.Y0 < 0 {
		b.Y0, b.Y1 = 0, side
	}
	if b.X1 > c.bounds.Width {
		b.X1, b.X0 = c.bounds.Width, c.bounds.Width-side
	}
	if b.Y1 > c.bounds.Height {
		b.Y1, b.Y0 = c.bounds.Height, c.bounds.Height-side
	}

	c.box = b
	return b
}

// clampSuggestion fits an externally supplied region into the image. The
// suggester is not trusted: the region may be non-square, inverted or out
// of range. The side becomes the larger suggested extent, capped to the
// image; the result is re-centered on the suggestion's center and the whole
// box shifted inward if that pushes an edge out of bounds.
func (c *CropBox) clampSuggestion(s Box) Box {
	w := s.X1 - s.X0
	h := s.Y1 - s.Y0
	side := w
	if h > side {
		side = h
	}
	if side < c.minSide {
		side = c.minSide
	}
	side = c.capSide(side)
	cx := (s.X0 + s.X1) / 2
	cy := (s.Y0 + s.Y1) / 2
	x0 := clampInt(cx-side/2, 0, c.bounds.Width-side)
	y0 := clampInt(cy-side/2, 0, c.bounds.Height-side)
	return Box{x0, y0, x0 + side, y0 + side}
}

func (c *CropBox) capSide(side int) int {
	if side > c.bounds.Width {
		side = c.bounds.Width
	}
	if side > c.bounds.Height {
		side = c.bounds.Height
	}
	return side
}

func roundDelta(d float64) int { return int(math.Round(d)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
