package geometry

import "testing"

func mustNew(t *testing.T, bounds Bounds, side int, suggestion *Box, opts ...Option) *CropBox {
	t.Helper()
	c, err := New(bounds, side, suggestion, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func checkInvariants(t *testing.T, c *CropBox) {
	t.Helper()
	b := c.Current()
	if b.X1-b.X0 != b.Y1-b.Y0 {
		t.Fatalf("box not square: %+v", b)
	}
	if b.X0 < 0 || b.Y0 < 0 || b.X1 > c.Bounds().Width || b.Y1 > c.Bounds().Height {
		t.Fatalf("box outside bounds %+v: %+v", c.Bounds(), b)
	}
	if b.Side() < c.MinSide() {
		t.Fatalf("side %d below minimum %d", b.Side(), c.MinSide())
	}
}

func TestNewRejectsInvalidBounds(t *testing.T) {
	for _, bounds := range []Bounds{{0, 100}, {100, 0}, {-1, 100}, {100, -20}} {
		if _, err := New(bounds, 512, nil); err == nil {
			t.Errorf("expected error for bounds %+v", bounds)
		}
	}
}

func TestNewCentersDefaultBox(t *testing.T) {
	c := mustNew(t, Bounds{1000, 600}, 512, nil)
	want := Box{244, 44, 756, 556}
	if got := c.Current(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	checkInvariants(t, c)
}

func TestNewCapsPreferredSideAtImage(t *testing.T) {
	c := mustNew(t, Bounds{300, 200}, 512, nil)
	if got := c.Current(); got.Side() != 200 {
		t.Fatalf("expected side 200, got %+v", got)
	}
	checkInvariants(t, c)
}

func TestNewTruncatesOddMarginTowardTopLeft(t *testing.T) {
	c := mustNew(t, Bounds{101, 101}, 100, nil)
	want := Box{0, 0, 100, 100}
	if got := c.Current(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNewAdoptsInBoundsSuggestion(t *testing.T) {
	s := &Box{100, 150, 300, 350}
	c := mustNew(t, Bounds{1000, 800}, 512, s)
	if got := c.Current(); got != *s {
		t.Fatalf("expected suggestion %+v adopted, got %+v", *s, got)
	}
}

func TestNewClampsOutOfRangeSuggestion(t *testing.T) {
	// Non-square and past the right/bottom edge. The side becomes the
	// larger extent and the box is shifted back inside, staying as close
	// to the suggested center as the bounds allow.
	s := &Box{900, 700, 1150, 900}
	c := mustNew(t, Bounds{1000, 800}, 512, s)
	got := c.Current()
	want := Box{750, 550, 1000, 800}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	checkInvariants(t, c)
}

func TestNewShrinksOversizedSuggestion(t *testing.T) {
	s := &Box{-200, -200, 1200, 1100}
	c := mustNew(t, Bounds{1000, 800}, 512, s)
	got := c.Current()
	if got.Side() != 800 {
		t.Fatalf("expected side clamped to 800, got %+v", got)
	}
	checkInvariants(t, c)
}

func TestMoveByClampsPosition(t *testing.T) {
	c := mustNew(t, Bounds{1000, 800}, 512, &Box{100, 100, 300, 300})
	got := c.MoveBy(-200, 0)
	want := Box{0, 100, 200, 300}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	checkInvariants(t, c)
}

func TestMoveByZeroIsIdempotent(t *testing.T) {
	c := mustNew(t, Bounds{640, 480}, 256, nil)
	before := c.Current()
	if got := c.MoveBy(0, 0); got != before {
		t.Fatalf("MoveBy(0,0) changed box from %+v to %+v", before, got)
	}
}

func TestMoveFromIgnoresLiveBox(t *testing.T) {
	start := Box{100, 100, 300, 300}
	c := mustNew(t, Bounds{1000, 800}, 512, &start)
	c.MoveBy(50, 50)
	got := c.MoveFrom(start, 10, 10)
	want := Box{110, 110, 310, 310}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResizeFloorsAtMinSide(t *testing.T) {
	start := Box{0, 0, 20, 20}
	c := mustNew(t, Bounds{500, 500}, 512, &start)
	got := c.ResizeFromCorner(CornerBR, -15, -15, start)
	if got.Side() != 10 {
		t.Fatalf("expected side 10, got %+v", got)
	}
	if got != (Box{0, 0, 10, 10}) {
		t.Fatalf("expected anchor corner fixed, got %+v", got)
	}
	checkInvariants(t, c)
}

func TestResizeClampsAtImageEdge(t *testing.T) {
	start := Box{480, 480, 500, 500}
	c := mustNew(t, Bounds{500, 500}, 512, &start)
	got := c.ResizeFromCorner(CornerBR, 50, 50, start)
	if got.X1 != 500 || got.Y1 != 500 {
		t.Fatalf("expected bottom-right pinned at 500, got %+v", got)
	}
	if got.Side() != 70 {
		t.Fatalf("expected side 70 after pin-and-re-square, got %+v", got)
	}
	checkInvariants(t, c)
}

func TestResizeDominantAxisDrivesDelta(t *testing.T) {
	start := Box{100, 100, 200, 200}
	c := mustNew(t, Bounds{500, 500}, 512, &start)
	// dy dominates, so both edges move by 30 even though dx is 5.
	got := c.ResizeFromCorner(CornerBR, 5, 30, start)
	want := Box{100, 100, 230, 230}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResizeEachCornerAnchorsOpposite(t *testing.T) {
	start := Box{100, 100, 200, 200}
	tests := []struct {
		corner Corner
		want   Box
	}{
		{CornerTL, Box{90, 90, 200, 200}},
		{CornerTR, Box{100, 110, 190, 200}},
		{CornerBR, Box{100, 100, 190, 190}},
		{CornerBL, Box{110, 100, 200, 190}},
	}
	for _, tt := range tests {
		c := mustNew(t, Bounds{500, 500}, 512, &start)
		got := c.ResizeFromCorner(tt.corner, -10, -10, start)
		if got != tt.want {
			t.Errorf("%v: expected %+v, got %+v", tt.corner, tt.want, got)
		}
		checkInvariants(t, c)
	}
}

func TestResizeZeroIsIdempotent(t *testing.T) {
	start := Box{120, 80, 320, 280}
	c := mustNew(t, Bounds{640, 480}, 512, &start)
	for _, corner := range []Corner{CornerTL, CornerTR, CornerBR, CornerBL} {
		if got := c.ResizeFromCorner(corner, 0, 0, start); got != start {
			t.Errorf("%v: ResizeFromCorner(0,0) changed box to %+v", corner, got)
		}
	}
}

func TestResizeInvertedDragStaysInBounds(t *testing.T) {
	// Dragging the top-left corner far past the bottom-right inverts the
	// nominal box; the side floors at the minimum and the result must
	// still be square and inside the image.
	start := Box{0, 0, 20, 20}
	c := mustNew(t, Bounds{500, 500}, 512, &start)
	got := c.ResizeFromCorner(CornerTL, 1000, 1000, start)
	if got.Side() != 10 {
		t.Fatalf("expected side floored at 10, got %+v", got)
	}
	checkInvariants(t, c)
}

func TestMutationSequencePreservesInvariants(t *testing.T) {
	c := mustNew(t, Bounds{1000, 800}, 512, nil, WithMinSide(16))
	steps := []struct {
		move   bool
		corner Corner
		dx, dy float64
	}{
		{move: true, dx: -900, dy: 200},
		{corner: CornerBR, dx: 600, dy: 400},
		{move: true, dx: 2000, dy: -2000},
		{corner: CornerTL, dx: 700, dy: 900},
		{corner: CornerBL, dx: -350.5, dy: 99.9},
		{move: true, dx: 0.4, dy: -0.4},
		{corner: CornerTR, dx: -5000, dy: 5000},
	}
	for i, s := range steps {
		start := c.Current()
		if s.move {
			c.MoveBy(s.dx, s.dy)
		} else {
			c.ResizeFromCorner(s.corner, s.dx, s.dy, start)
		}
		b := c.Current()
		if b.X1-b.X0 != b.Y1-b.Y0 || b.X0 < 0 || b.Y0 < 0 || b.X1 > 1000 || b.Y1 > 800 || b.Side() < 16 {
			t.Fatalf("step %d broke invariants: %+v", i, b)
		}
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{10, 20, 110, 120}
	if !b.Contains(10, 20) || !b.Contains(110, 120) || !b.Contains(60, 70) {
		t.Fatal("expected edge and interior points to be contained")
	}
	if b.Contains(9.5, 20) || b.Contains(60, 120.5) {
		t.Fatal("expected outside points to be rejected")
	}
}
