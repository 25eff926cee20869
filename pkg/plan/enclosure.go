package plan

import (
	"math"
	"sort"
)

// MinEnclosureSegments is the fewest segments that can bound an area.
const MinEnclosureSegments = 3

// PointKey identifies an endpoint for degree counting. With a zero
// tolerance it holds the raw coordinates; otherwise it holds the indices of
// the tolerance-sized grid cell the point rounds to.
type PointKey struct {
	X, Y float64
}

// KeyOf returns the identity key of p under tolerance tol: the coordinates
// divided by tol and rounded to the nearest integer.
func KeyOf(p Point, tol float64) PointKey {
	if tol <= 0 {
		return PointKey{X: p.X, Y: p.Y}
	}
	return PointKey{X: math.Round(p.X / tol), Y: math.Round(p.Y / tol)}
}

// Degrees counts how many segment endpoints land on each distinct point.
func Degrees(segs []Segment, tol float64) map[PointKey]int {
	counts := make(map[PointKey]int, len(segs)*2)
	for _, s := range segs {
		counts[KeyOf(s.Start(), tol)]++
		counts[KeyOf(s.End(), tol)]++
	}
	return counts
}

// IsEnclosedSpace reports whether segs form closed loops: at least three
// segments, and every endpoint (compared exactly) shared by exactly two
// segments. It checks topology only; self-intersection is not detected.
func IsEnclosedSpace(segs []Segment) bool {
	return IsEnclosedSpaceTol(segs, 0)
}

// IsEnclosedSpaceTol is IsEnclosedSpace with every endpoint snapped to a
// grid of cell size tol (see KeyOf) before comparing. Points closer than tol
// still count as distinct when they round to neighbouring cells. A
// zero-length segment never closes a loop.
func IsEnclosedSpaceTol(segs []Segment, tol float64) bool {
	if len(segs) < MinEnclosureSegments {
		return false
	}
	for _, s := range segs {
		if KeyOf(s.Start(), tol) == KeyOf(s.End(), tol) {
			return false
		}
	}
	for _, n := range Degrees(segs, tol) {
		if n != 2 {
			return false
		}
	}
	return true
}

// OpenPoints returns the points whose degree is not 2, sorted by
// coordinates, with their degree. It is used for diagnostics.
func OpenPoints(segs []Segment, tol float64) []PointDegree {
	var open []PointDegree
	seen := make(map[PointKey]bool)
	degrees := Degrees(segs, tol)
	for _, s := range segs {
		for _, p := range [2]Point{s.Start(), s.End()} {
			k := KeyOf(p, tol)
			if seen[k] || degrees[k] == 2 {
				continue
			}
			seen[k] = true
			open = append(open, PointDegree{Point: p, Degree: degrees[k]})
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].Point.X != open[j].Point.X {
			return open[i].Point.X < open[j].Point.X
		}
		return open[i].Point.Y < open[j].Point.Y
	})
	return open
}

// PointDegree pairs an endpoint with the number of segment ends on it.
type PointDegree struct {
	Point  Point
	Degree int
}
