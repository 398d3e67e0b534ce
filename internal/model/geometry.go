package model

import "math"

// Point2D represents a 2D coordinate in pixels.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance to another point.
func (p Point2D) Dist(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle in pixel space, stored as the top-left
// corner plus non-negative extents. Length runs along X, Breadth along Y.
type Rect struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
}

// RectFromCorners builds a normalized Rect from two arbitrary opposite
// corners, regardless of which corner was the gesture start.
func RectFromCorners(a, b Point2D) Rect {
	return Rect{
		X:       math.Min(a.X, b.X),
		Y:       math.Min(a.Y, b.Y),
		Length:  math.Abs(b.X - a.X),
		Breadth: math.Abs(b.Y - a.Y),
	}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Length }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Breadth }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Length/2, Y: r.Y + r.Breadth/2}
}

// Area returns the pixel area of the rectangle.
func (r Rect) Area() float64 { return r.Length * r.Breadth }

// ContainsPoint reports whether the point lies inside the rectangle,
// edges included.
func (r Rect) ContainsPoint(p Point2D) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlaps reports whether two rectangles share interior area. Rectangles
// that merely touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() <= o.X || o.Right() <= r.X ||
		r.Bottom() <= o.Y || o.Bottom() <= r.Y)
}

// Translate returns the rectangle shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Length: r.Length, Breadth: r.Breadth}
}
