package plan

import (
	"fmt"
	"math"
)

// Point is a wall endpoint on the floor plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Segment is the footprint centerline of one wall, from (X1,Y1) to (X2,Y2).
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Seg is shorthand for constructing a Segment.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Start returns the first endpoint.
func (s Segment) Start() Point { return Point{X: s.X1, Y: s.Y1} }

// End returns the second endpoint.
func (s Segment) End() Point { return Point{X: s.X2, Y: s.Y2} }

// Length returns the Euclidean distance between the endpoints.
func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// Angle returns the planar direction of the segment in radians.
func (s Segment) Angle() float64 {
	return math.Atan2(s.Y2-s.Y1, s.X2-s.X1)
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point {
	return Point{X: (s.X1 + s.X2) / 2, Y: (s.Y1 + s.Y2) / 2}
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment {
	return Segment{X1: s.X2, Y1: s.Y2, X2: s.X1, Y2: s.Y1}
}

// IsDegenerate reports whether both endpoints are the same point.
func (s Segment) IsDegenerate() bool {
	return s.X1 == s.X2 && s.Y1 == s.Y2
}

// IsFinite reports whether all four coordinates are finite.
func (s Segment) IsFinite() bool {
	return s.Start().IsFinite() && s.End().IsFinite()
}

func (s Segment) String() string {
	return fmt.Sprintf("[%g %g -> %g %g]", s.X1, s.Y1, s.X2, s.Y2)
}
