package plan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []Segment {
	return []Segment{
		Seg(0, 0, 4, 0),
		Seg(4, 0, 4, 4),
		Seg(4, 4, 0, 4),
		Seg(0, 4, 0, 0),
	}
}

func TestIsEnclosedSpaceScenarios(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want bool
	}{
		{"A closed square", square(), true},
		{"B two open segments", []Segment{Seg(0, 0, 4, 0), Seg(4, 0, 4, 4)}, false},
		{"C dangling endpoint", []Segment{Seg(0, 0, 4, 0), Seg(4, 0, 4, 4), Seg(4, 4, 0, 4)}, false},
		{"D duplicated wall", append(square(), Seg(0, 0, 4, 0)), false},
		{"empty", nil, false},
		{"single segment", []Segment{Seg(0, 0, 1, 0)}, false},
		{"triangle", []Segment{Seg(0, 0, 1, 0), Seg(1, 0, 0, 1), Seg(0, 1, 0, 0)}, true},
		{"reversed walls still closed", []Segment{Seg(4, 0, 0, 0), Seg(4, 0, 4, 4), Seg(0, 4, 4, 4), Seg(0, 4, 0, 0)}, true},
		{"T junction", []Segment{Seg(0, 0, 2, 0), Seg(2, 0, 4, 0), Seg(2, 0, 2, 2), Seg(4, 0, 0, 0)}, false},
		{"two disjoint triangles", []Segment{
			Seg(0, 0, 1, 0), Seg(1, 0, 0, 1), Seg(0, 1, 0, 0),
			Seg(5, 5, 6, 5), Seg(6, 5, 5, 6), Seg(5, 6, 5, 5),
		}, true},
		{"near miss is not a match", []Segment{Seg(0, 0, 4, 0), Seg(4, 0, 4, 4), Seg(4, 4, 0, 4), Seg(0, 4, 0, 1e-9)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEnclosedSpace(tt.segs))
		})
	}
}

func TestIsEnclosedSpaceMinimumSize(t *testing.T) {
	// Two coincident segments give every point degree 2 but are still
	// below the minimum count.
	segs := []Segment{Seg(0, 0, 1, 1), Seg(1, 1, 0, 0)}
	for _, n := range Degrees(segs, 0) {
		require.Equal(t, 2, n)
	}
	assert.False(t, IsEnclosedSpace(segs))
}

func TestIsEnclosedSpaceZeroLength(t *testing.T) {
	segs := append(square(), Seg(9, 9, 9, 9))
	assert.False(t, IsEnclosedSpace(segs))
}

func TestIsEnclosedSpacePermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := [][]Segment{
		square(),
		Presets().MustLookup(PresetLShape).Segments,
		Presets().MustLookup(PresetCorridor).Segments,
		append(square(), Seg(0, 0, 4, 0)),
	}
	for _, segs := range inputs {
		want := IsEnclosedSpace(segs)
		for i := 0; i < 20; i++ {
			shuffled := append([]Segment(nil), segs...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, want, IsEnclosedSpace(shuffled))
		}
	}
}

func TestIsEnclosedSpaceTolerance(t *testing.T) {
	segs := []Segment{
		Seg(0, 0, 4, 0),
		Seg(4.0000001, 0, 4, 4),
		Seg(4, 4, 0, 4),
		Seg(0, 4, 0, 0.0000002),
	}
	assert.False(t, IsEnclosedSpaceTol(segs, 0))
	assert.True(t, IsEnclosedSpaceTol(segs, 1e-4))
}

func TestIsEnclosedSpaceToleranceIsAGrid(t *testing.T) {
	// 0.0004999 and 0.0005001 are 2e-7 apart but round to cells 0 and 1.
	segs := []Segment{
		Seg(0.0004999, 0, 4, 0),
		Seg(4, 0, 4, 4),
		Seg(4, 4, 0, 4),
		Seg(0, 4, 0.0005001, 0),
	}
	assert.NotEqual(t, KeyOf(Point{0.0004999, 0}, 1e-3), KeyOf(Point{0.0005001, 0}, 1e-3))
	assert.False(t, IsEnclosedSpaceTol(segs, 1e-3))
	assert.True(t, IsEnclosedSpaceTol(segs, 1e-2))
}

func TestDegreeInvariant(t *testing.T) {
	// Degree-2-everywhere must agree with the enclosure result for every
	// subset of the L-shape walls.
	walls := Presets().MustLookup(PresetLShape).Segments
	for mask := 0; mask < 1<<len(walls); mask++ {
		var subset []Segment
		for i, w := range walls {
			if mask&(1<<i) != 0 {
				subset = append(subset, w)
			}
		}
		allTwo := len(subset) >= MinEnclosureSegments
		for _, n := range Degrees(subset, 0) {
			if n != 2 {
				allTwo = false
			}
		}
		assert.Equal(t, allTwo, IsEnclosedSpace(subset), "mask %b", mask)
	}
}

func TestOpenPoints(t *testing.T) {
	segs := []Segment{Seg(0, 0, 4, 0), Seg(4, 0, 4, 4), Seg(4, 4, 0, 4)}
	open := OpenPoints(segs, 0)
	require.Len(t, open, 2)
	assert.Equal(t, PointDegree{Point: Point{0, 0}, Degree: 1}, open[0])
	assert.Equal(t, PointDegree{Point: Point{0, 4}, Degree: 1}, open[1])

	assert.Empty(t, OpenPoints(square(), 0))
}
