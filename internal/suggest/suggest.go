// Package suggest proposes an initial square crop region for an image,
// typically around a detected face or subject. Suggestions are advisory:
// the crop geometry re-clamps whatever comes back.
package suggest

import (
	"context"
	"image"

	"github.com/example/croptag/internal/geometry"
)

// Suggester proposes a crop region for an image. ok is false when the
// backend found no usable subject; that is not an error.
type Suggester interface {
	Suggest(ctx context.Context, img image.Image, sideMax int) (box geometry.Box, ok bool, err error)
}

// Disabled never suggests. Used when no vision backend is configured.
type Disabled struct{}

// Suggest implements Suggester.
func (Disabled) Suggest(context.Context, image.Image, int) (geometry.Box, bool, error) {
	return geometry.Box{}, false, nil
}

// PadSquare converts a subject bounding box into a square crop centered on
// the subject with pad pixels of breathing room on every side. The side is
// capped at sideMax and at the image dimensions; when centering pushes the
// square out of bounds it is shifted back inside.
func PadSquare(x0, y0, bw, bh, pad, sideMax, width, height int) geometry.Box {
	side := bw
	if bh > side {
		side = bh
	}
	side += 2 * pad
	if side > sideMax {
		side = sideMax
	}
	if side > width {
		side = width
	}
	if side > height {
		side = height
	}

	cx := x0 + bw/2
	cy := y0 + bh/2
	nx0 := cx - side/2
	if nx0 < 0 {
		nx0 = 0
	}
	ny0 := cy - side/2
	if ny0 < 0 {
		ny0 = 0
	}
	nx1 := nx0 + side
	if nx1 > width {
		nx1 = width
	}
	ny1 := ny0 + side
	if ny1 > height {
		ny1 = height
	}

	// If clamped, re-square by shifting the opposite edge.
	return geometry.Box{X0: nx1 - side, Y0: ny1 - side, X1: nx1, Y1: ny1}
}
