package model

import (
	"math"
	"testing"
)

func TestRectFromCornersNormalizes(t *testing.T) {
	a := Point2D{X: 100, Y: 50}
	b := Point2D{X: 20, Y: 90}
	r := RectFromCorners(a, b)
	if r.X != 20 || r.Y != 50 {
		t.Errorf("expected top-left (20,50), got (%v,%v)", r.X, r.Y)
	}
	if r.Length != 80 || r.Breadth != 40 {
		t.Errorf("expected extents 80x40, got %vx%v", r.Length, r.Breadth)
	}

	// Same rect from the opposite corner order
	r2 := RectFromCorners(b, a)
	if r != r2 {
		t.Errorf("corner order changed result: %+v vs %+v", r, r2)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Length: 10, Breadth: 10}
	b := Rect{X: 5, Y: 5, Length: 10, Breadth: 10}
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Error("expected overlap")
	}

	// Touching edges is not overlap
	c := Rect{X: 10, Y: 0, Length: 10, Breadth: 10}
	if a.Overlaps(c) {
		t.Error("edge-touching rects must not overlap")
	}

	d := Rect{X: 0, Y: 30, Length: 10, Breadth: 10}
	if a.Overlaps(d) {
		t.Error("disjoint rects must not overlap")
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := Rect{X: 10, Y: 10, Length: 20, Breadth: 20}
	if !r.ContainsPoint(Point2D{X: 10, Y: 10}) {
		t.Error("corner should be contained")
	}
	if !r.ContainsPoint(Point2D{X: 30, Y: 30}) {
		t.Error("far corner should be contained")
	}
	if r.ContainsPoint(Point2D{X: 31, Y: 20}) {
		t.Error("outside point should not be contained")
	}
}

func TestScaleRoundTrip(t *testing.T) {
	scales := []Scale{
		{Factor: 1, Resize: 1},
		{Factor: 0.6, Resize: 1},
		{Factor: 0.3179235808186732, Resize: 1.4},
	}
	for _, s := range scales {
		for _, ft := range []float64{0.5, 8.33, 120} {
			px := s.FtToPx(ft)
			back := s.PxToFt(px)
			if math.Abs(back-ft) > 1e-9 {
				t.Errorf("scale %+v: round trip %v -> %v", s, ft, back)
			}
		}
	}
}

func TestScaleFromLine(t *testing.T) {
	// 200px line representing 10 feet -> 120 inches / 200 px = 0.6
	f := ScaleFromLine(Point2D{X: 0, Y: 0}, Point2D{X: 200, Y: 0}, 10, 0)
	if math.Abs(f-0.6) > 1e-12 {
		t.Errorf("expected 0.6, got %v", f)
	}

	// Degenerate line yields 0
	if ScaleFromLine(Point2D{X: 5, Y: 5}, Point2D{X: 5, Y: 5}, 10, 0) != 0 {
		t.Error("expected 0 for zero-length line")
	}
}
