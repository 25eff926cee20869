package tessellate

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/chazu/floorplan/pkg/kernel"
	"github.com/chazu/floorplan/pkg/plan"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/triangulate"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// areaEpsilon is the smallest doubled triangle area treated as non-zero.
const areaEpsilon = 1e-12

// floorOrientation lays an XY polygon flat: -90 degrees about X, then a
// mirror on Z so plan (x, y) lands on world (x, 0, y) under the walls.
var floorOrientation = mgl64.Scale3D(1, 1, -1).Mul4(mgl64.HomogRotate3DX(-math.Pi / 2))

// ErrBadFloor is returned when walls enclose a space whose outline cannot
// be filled, such as a loop that crosses itself.
var ErrBadFloor = errors.New("floor outline is self-intersecting or degenerate")

// Floor is the polygon filling an enclosed plan. Geometry is in world
// space at elevation zero with every triangle facing +Y.
type Floor struct {
	// Loops are the plan-space outlines, closed. Solid loops run
	// counter-clockwise; loops nested inside another loop are holes and
	// run clockwise.
	Loops         []orb.Ring
	Area          float64 // solid area minus holes
	Bounds        orb.Bound
	UVScale       [2]float64 // factors applied to the unit UVs
	Geometry      *kernel.Mesh
	ReceiveShadow bool
}

// Floor builds the floor for segs. When the segments do not enclose a
// space it logs why and returns nil with no error; errors are reserved for
// malformed input and outlines that cannot be filled.
func (b *Builder) Floor(segs []plan.Segment) (*Floor, error) {
	for i, s := range segs {
		if !s.IsFinite() {
			return nil, fmt.Errorf("tessellate: floor segment %d %s: %w", i, s, ErrNonFinite)
		}
	}

	if !plan.IsEnclosedSpaceTol(segs, b.tolerance) {
		log.Printf("tessellate: no floor: %d segments do not enclose a space (open points: %v)",
			len(segs), plan.OpenPoints(segs, b.tolerance))
		return nil, nil
	}

	loops, err := plan.Chain(segs, b.tolerance)
	if err != nil {
		return nil, fmt.Errorf("tessellate: floor: %w", err)
	}

	f := &Floor{ReceiveShadow: true}
	for _, loop := range loops {
		f.Loops = append(f.Loops, toRing(loop))
	}
	for i, ring := range f.Loops {
		area := planar.Area(ring)
		if isHole(f.Loops, i) {
			ring.Reverse()
			area = -area
		}
		f.Area += area
		if i == 0 {
			f.Bounds = ring.Bound()
		} else {
			f.Bounds = f.Bounds.Union(ring.Bound())
		}
	}
	if f.Area <= areaEpsilon {
		return nil, fmt.Errorf("tessellate: floor area %g: %w", f.Area, ErrBadFloor)
	}

	flat, covered, err := fill(f.Loops)
	if err != nil {
		return nil, fmt.Errorf("tessellate: floor: %w", err)
	}
	if math.Abs(covered-f.Area) > 1e-6*math.Max(1, f.Area) {
		return nil, fmt.Errorf("tessellate: floor triangles cover %g of %g: %w", covered, f.Area, ErrBadFloor)
	}

	flat.UVs = unitUVs(flat, f.Bounds)
	f.Geometry = flat.Transform(floorOrientation)
	f.UVScale = b.remapUVs(f.Geometry)

	return f, nil
}

// toRing converts a loop to a closed counter-clockwise orb ring.
func toRing(loop []plan.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(loop)+1)
	for _, p := range loop {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	ring = append(ring, ring[0])
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	return ring
}

// isHole reports whether loop i lies inside an odd number of the other
// loops. Enclosed loops never share points, so testing one vertex decides.
func isHole(rings []orb.Ring, i int) bool {
	depth := 0
	for j, r := range rings {
		if j != i && planar.RingContains(r, rings[i][0]) {
			depth++
		}
	}
	return depth%2 == 1
}

// fill triangulates the rings in the XY plane and returns the area the
// triangles cover. Vertices keep ring order; every triangle is wound
// counter-clockwise so it faces +Z.
func fill(rings []orb.Ring) (m *kernel.Mesh, covered float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, covered, err = nil, 0, fmt.Errorf("%w: %v", ErrBadFloor, r)
		}
	}()

	m = &kernel.Mesh{PartName: "floor"}
	index := make(map[*triangulate.Point]uint32)
	polys := make([][]*triangulate.Point, 0, len(rings))
	for _, ring := range rings {
		pts := make([]*triangulate.Point, 0, len(ring)-1)
		for _, p := range ring[:len(ring)-1] {
			tp := &triangulate.Point{X: p.X(), Y: p.Y()}
			index[tp] = uint32(m.VertexCount())
			m.Vertices = append(m.Vertices, float32(p.X()), float32(p.Y()), 0)
			m.Normals = append(m.Normals, 0, 0, 1)
			pts = append(pts, tp)
		}
		polys = append(polys, pts)
	}

	tris, err := triangulate.Triangulate(polys...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrBadFloor, err)
	}

	for _, t := range tris {
		a, okA := index[t.A]
		b, okB := index[t.B]
		c, okC := index[t.C]
		if !okA || !okB || !okC {
			return nil, 0, fmt.Errorf("%w: triangle uses a point outside the outline", ErrBadFloor)
		}
		turn := (t.B.X-t.A.X)*(t.C.Y-t.A.Y) - (t.B.Y-t.A.Y)*(t.C.X-t.A.X)
		switch {
		case math.Abs(turn) <= areaEpsilon:
			continue
		case turn < 0:
			b, c = c, b
		}
		covered += math.Abs(turn) / 2
		m.Indices = append(m.Indices, a, b, c)
	}
	return m, covered, nil
}

// unitUVs maps every vertex into [0,1]x[0,1] across the plan bounds, the
// default texture mapping of a flat shape.
func unitUVs(m *kernel.Mesh, bound orb.Bound) []float32 {
	w := bound.Max.X() - bound.Min.X()
	d := bound.Max.Y() - bound.Min.Y()
	uvs := make([]float32, 0, m.VertexCount()*2)
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		var u, v float64
		if w > 0 {
			u = (float64(m.Vertices[i]) - bound.Min.X()) / w
		}
		if d > 0 {
			v = (float64(m.Vertices[i+1]) - bound.Min.Y()) / d
		}
		uvs = append(uvs, float32(u), float32(v))
	}
	return uvs
}

// remapUVs scales unit UVs by the mesh's world footprint over the texel
// repeat unit, so one texture tile always covers the same physical area.
// It returns the factors applied.
func (b *Builder) remapUVs(m *kernel.Mesh) [2]float64 {
	min, max := m.Bounds()
	width := max[0] - min[0]
	depth := max[2] - min[2]
	scale := [2]float64{width / b.texelUnit, depth / b.texelUnit}

	for i := 0; i+1 < len(m.UVs); i += 2 {
		m.UVs[i] = float32(float64(m.UVs[i]) * scale[0])
		m.UVs[i+1] = float32(float64(m.UVs[i+1]) * scale[1])
	}
	return scale
}
