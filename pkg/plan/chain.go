package plan

import (
	"errors"
	"fmt"
)

// ErrOpenChain is returned by Chain when the segments do not close.
var ErrOpenChain = errors.New("segments do not form closed loops")

type segEnd struct {
	seg   int
	start bool // true when the key is the segment's first endpoint
}

// Chain walks shared endpoints to reconstruct the closed loops formed by
// segs. Segments may appear in any order and either direction. Each loop
// is returned as its ordered vertex list (the first endpoint of each wall
// as traversed), starting with segs' first unvisited segment in its given
// direction, so input that is already a wound chain comes back unchanged.
func Chain(segs []Segment, tol float64) ([][]Point, error) {
	if !IsEnclosedSpaceTol(segs, tol) {
		return nil, ErrOpenChain
	}

	ends := make(map[PointKey][]segEnd, len(segs))
	for i, s := range segs {
		ends[KeyOf(s.Start(), tol)] = append(ends[KeyOf(s.Start(), tol)], segEnd{seg: i, start: true})
		ends[KeyOf(s.End(), tol)] = append(ends[KeyOf(s.End(), tol)], segEnd{seg: i, start: false})
	}

	visited := make([]bool, len(segs))
	var loops [][]Point

	for first := range segs {
		if visited[first] {
			continue
		}
		visited[first] = true
		loop := []Point{segs[first].Start()}
		origin := KeyOf(segs[first].Start(), tol)
		cursor := segs[first].End()

		for KeyOf(cursor, tol) != origin {
			next, ok := nextEnd(ends[KeyOf(cursor, tol)], visited)
			if !ok {
				return nil, fmt.Errorf("plan: chain broken at %s: %w", cursor, ErrOpenChain)
			}
			visited[next.seg] = true
			s := segs[next.seg]
			if !next.start {
				s = s.Reversed()
			}
			loop = append(loop, s.Start())
			cursor = s.End()
		}
		loops = append(loops, loop)
	}

	return loops, nil
}

// nextEnd picks the unvisited segment touching a point.
func nextEnd(candidates []segEnd, visited []bool) (segEnd, bool) {
	for _, c := range candidates {
		if !visited[c.seg] {
			return c, true
		}
	}
	return segEnd{}, false
}
