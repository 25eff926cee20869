package kernel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, uvs has 2 floats per vertex when
// present, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...], may be empty
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which wall or floor this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// HasUVs reports whether every vertex carries a texture coordinate.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs)/2 == m.VertexCount()
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty
// mesh has zero bounds.
func (m *Mesh) Bounds() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for i := 0; i < 3; i++ {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			v := float64(m.Vertices[i+j])
			min[j] = math.Min(min[j], v)
			max[j] = math.Max(max[j], v)
		}
	}
	return min, max
}

// Transform returns a copy of the mesh with mat applied to every vertex.
// Normals go through the inverse transpose. When mat mirrors space, the
// triangle winding is reversed so faces keep pointing along their normals.
func (m *Mesh) Transform(mat mgl64.Mat4) *Mesh {
	out := &Mesh{
		Vertices: make([]float32, 0, len(m.Vertices)),
		Normals:  make([]float32, 0, len(m.Normals)),
		UVs:      append([]float32(nil), m.UVs...),
		Indices:  append([]uint32(nil), m.Indices...),
		PartName: m.PartName,
	}

	for i := 0; i+2 < len(m.Vertices); i += 3 {
		v := mat.Mul4x1(mgl64.Vec4{
			float64(m.Vertices[i]), float64(m.Vertices[i+1]), float64(m.Vertices[i+2]), 1,
		})
		out.Vertices = append(out.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
	}

	linear := mat.Mat3()
	normalMat := linear.Inv().Transpose()
	for i := 0; i+2 < len(m.Normals); i += 3 {
		n := normalMat.Mul3x1(mgl64.Vec3{
			float64(m.Normals[i]), float64(m.Normals[i+1]), float64(m.Normals[i+2]),
		})
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		out.Normals = append(out.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
	}

	if linear.Det() < 0 {
		for i := 0; i+2 < len(out.Indices); i += 3 {
			out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
		}
	}

	return out
}

// FaceNormal returns the geometric normal of triangle t, following the
// right-hand rule over its index order.
func (m *Mesh) FaceNormal(t int) mgl64.Vec3 {
	vert := func(k int) mgl64.Vec3 {
		i := int(m.Indices[t*3+k]) * 3
		return mgl64.Vec3{float64(m.Vertices[i]), float64(m.Vertices[i+1]), float64(m.Vertices[i+2])}
	}
	a, b, c := vert(0), vert(1), vert(2)
	return b.Sub(a).Cross(c.Sub(a))
}
