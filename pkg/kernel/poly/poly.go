// Package poly implements the kernel.Kernel interface with exact polygonal
// geometry: a box is six quads with flat normals and per-face UVs, the same
// layout WebGL engines use for their box primitives.
package poly

import (
	"fmt"

	"github.com/chazu/floorplan/pkg/kernel"
	"github.com/go-gl/mathgl/mgl64"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PolyKernel)(nil)

// boxSolid is an axis-aligned box centred on the origin.
type boxSolid struct {
	size mgl64.Vec3
}

// BoundingBox returns the axis-aligned bounding box.
func (b *boxSolid) BoundingBox() (min, max [3]float64) {
	h := b.size.Mul(0.5)
	return [3]float64{-h[0], -h[1], -h[2]}, [3]float64{h[0], h[1], h[2]}
}

// face is one side of a box: outward normal n and in-plane axes u, v with
// u x v = n, so corners listed (-u-v, +u-v, +u+v, -u+v) wind outward.
type face struct {
	n, u, v mgl64.Vec3
}

var boxFaces = [6]face{
	{n: mgl64.Vec3{1, 0, 0}, u: mgl64.Vec3{0, 1, 0}, v: mgl64.Vec3{0, 0, 1}},
	{n: mgl64.Vec3{-1, 0, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{0, 1, 0}},
	{n: mgl64.Vec3{0, 1, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{1, 0, 0}},
	{n: mgl64.Vec3{0, -1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, 1}},
	{n: mgl64.Vec3{0, 0, 1}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
	{n: mgl64.Vec3{0, 0, -1}, u: mgl64.Vec3{0, 1, 0}, v: mgl64.Vec3{1, 0, 0}},
}

var quadCorners = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// PolyKernel implements kernel.Kernel with exact meshes.
type PolyKernel struct{}

// New returns a new PolyKernel.
func New() *PolyKernel {
	return &PolyKernel{}
}

// Box creates a box of the given size centred on the origin. Zero sizes are
// allowed and produce a flat or empty box.
func (k *PolyKernel) Box(x, y, z float64) kernel.Solid {
	return &boxSolid{size: mgl64.Vec3{x, y, z}}
}

// ToMesh converts a box to 24 vertices and 12 triangles.
func (k *PolyKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	b, ok := s.(*boxSolid)
	if !ok {
		return nil, fmt.Errorf("poly: unsupported solid %T", s)
	}
	half := b.size.Mul(0.5)

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, 24*3),
		Normals:  make([]float32, 0, 24*3),
		UVs:      make([]float32, 0, 24*2),
		Indices:  make([]uint32, 0, 12*3),
	}

	for fi, f := range boxFaces {
		base := uint32(fi * 4)
		for _, c := range quadCorners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			m.Vertices = append(m.Vertices,
				float32(p[0]*half[0]), float32(p[1]*half[1]), float32(p[2]*half[2]))
			m.Normals = append(m.Normals, float32(f.n[0]), float32(f.n[1]), float32(f.n[2]))
			m.UVs = append(m.UVs, float32((c[0]+1)/2), float32((c[1]+1)/2))
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	return m, nil
}
