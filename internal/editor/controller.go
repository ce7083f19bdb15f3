// Package editor classifies pointer gestures over the crop box and turns
// them into geometry mutations. It is purely reactive: press records
// anchors, drag mutates, release returns to idle.
package editor

import (
	"math"

	"github.com/example/croptag/internal/geometry"
)

// Mode identifies the gesture currently in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMoving
	ModeResizing
)

// DefaultHandleRadius is the corner handle hit radius in display pixels.
// It is deliberately independent of the display scale so handles stay
// grabbable however far the preview is zoomed out.
const DefaultHandleRadius = 6

// Controller translates pointer events in display coordinates into
// mutations of a geometry.CropBox. All drag deltas are computed against
// the pointer position and box snapshot taken at press time.
type Controller struct {
	crop   *geometry.CropBox
	scale  float64
	radius float64

	mode     Mode
	corner   geometry.Corner
	anchorX  float64
	anchorY  float64
	startBox geometry.Box

	onChange func(geometry.Box)
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithHandleRadius overrides the handle hit radius in display pixels.
func WithHandleRadius(r float64) Option {
	return func(c *Controller) {
		if r > 0 {
			c.radius = r
		}
	}
}

// WithChangeListener registers a callback invoked after every successful
// drag mutation, typically to request a repaint.
func WithChangeListener(fn func(geometry.Box)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a Controller for the given crop box. scale is the ratio of
// display pixels to original pixels used to convert pointer coordinates.
func New(crop *geometry.CropBox, scale float64, opts ...Option) *Controller {
	c := &Controller{crop: crop, scale: scale, radius: DefaultHandleRadius}
	if c.scale <= 0 {
		c.scale = 1
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Attach replaces the crop box and display scale, discarding any gesture
// in progress. Called when a new image loads or the preview is rescaled.
func (c *Controller) Attach(crop *geometry.CropBox, scale float64) {
	c.crop = crop
	if scale > 0 {
		c.scale = scale
	}
	c.mode = ModeIdle
}

// Mode returns the current gesture state.
func (c *Controller) Mode() Mode { return c.mode }

// Corner returns the handle being dragged while resizing.
func (c *Controller) Corner() geometry.Corner { return c.corner }

// Scale returns the active display scale.
func (c *Controller) Scale() float64 { return c.scale }

// Press begins a gesture at the given display coordinates. A press on a
// corner handle starts a resize, a press inside the box starts a move and
// anything else is ignored. Handles win when the regions overlap. The box
// itself is not mutated; press only records anchors.
func (c *Controller) Press(x, y float64) bool {
	if c.crop == nil {
		return false
	}
	box := c.crop.Current()
	c.anchorX, c.anchorY = x, y
	c.startBox = box
	if corner, ok := c.hitHandle(box, x, y); ok {
		c.mode = ModeResizing
		c.corner = corner
		return true
	}
	if box.Contains(x/c.scale, y/c.scale) {
		c.mode = ModeMoving
		return true
	}
	c.mode = ModeIdle
	return false
}

// Drag applies the pointer position to the active gesture and reports
// whether the box was mutated. Deltas are always measured from the press
// anchor against the press-time box, never accumulated incrementally.
func (c *Controller) Drag(x, y float64) bool {
	if c.mode == ModeIdle || c.crop == nil {
		return false
	}
	dx := (x - c.anchorX) / c.scale
	dy := (y - c.anchorY) / c.scale
	var box geometry.Box
	switch c.mode {
	case ModeMoving:
		box = c.crop.MoveFrom(c.startBox, dx, dy)
	case ModeResizing:
		box = c.crop.ResizeFromCorner(c.corner, dx, dy, c.startBox)
	}
	if c.onChange != nil {
		c.onChange(box)
	}
	return true
}

// Release ends any gesture. It never mutates the box.
func (c *Controller) Release() { c.mode = ModeIdle }

func (c *Controller) hitHandle(box geometry.Box, x, y float64) (geometry.Corner, bool) {
	handles := [4]struct {
		corner geometry.Corner
		hx, hy float64
	}{
		{geometry.CornerTL, float64(box.X0), float64(box.Y0)},
		{geometry.CornerTR, float64(box.X1), float64(box.Y0)},
		{geometry.CornerBR, float64(box.X1), float64(box.Y1)},
		{geometry.CornerBL, float64(box.X0), float64(box.Y1)},
	}
	for _, h := range handles {
		if math.Abs(x-h.hx*c.scale) <= c.radius && math.Abs(y-h.hy*c.scale) <= c.radius {
			return h.corner, true
		}
	}
	return 0, false
}
