package kernel

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			assert.Equal(t, tt.want, m.VertexCount())
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			assert.Equal(t, tt.want, m.TriangleCount())
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	assert.True(t, (&Mesh{}).IsEmpty())
	assert.False(t, (&Mesh{Vertices: []float32{1, 2, 3}}).IsEmpty())
}

func TestMeshHasUVs(t *testing.T) {
	m := &Mesh{Vertices: []float32{0, 0, 0, 1, 0, 0}}
	assert.False(t, m.HasUVs(), "no uvs")
	m.UVs = []float32{0, 0, 1, 0}
	assert.True(t, m.HasUVs(), "one uv per vertex")
	m.UVs = []float32{0, 0}
	assert.False(t, m.HasUVs(), "too few uvs")
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{Vertices: []float32{
		-1, 2, 3,
		4, -5, 6,
		0, 0, -7,
	}}
	min, max := m.Bounds()
	assert.Equal(t, [3]float64{-1, -5, -7}, min)
	assert.Equal(t, [3]float64{4, 2, 6}, max)

	min, max = (&Mesh{}).Bounds()
	assert.Zero(t, min)
	assert.Zero(t, max)
}

// triangle returns a single CCW triangle in the XY plane facing +Z.
func triangle() *Mesh {
	return &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:      []float32{0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
		PartName: "tri",
	}
}

func TestMeshTransformTranslate(t *testing.T) {
	src := triangle()
	out := src.Transform(mgl64.Translate3D(1, 2, 3))

	assert.Equal(t, []float32{2, 2, 3}, out.Vertices[3:6])
	assert.Equal(t, []float32{0, 0, 1}, out.Normals[:3], "translation leaves normals alone")
	assert.Equal(t, "tri", out.PartName)
	assert.Equal(t, float32(1), src.Vertices[3], "Transform must not mutate its receiver")
}

func TestMeshTransformRotate(t *testing.T) {
	out := triangle().Transform(mgl64.HomogRotate3DX(-math.Pi / 2))

	// +Z normal rotates to +Y.
	assert.InDelta(t, 1, out.Normals[1], 1e-6)
	assert.Greater(t, out.FaceNormal(0).Y(), 0.0)
}

func TestMeshTransformMirrorKeepsFacing(t *testing.T) {
	out := triangle().Transform(mgl64.Scale3D(1, -1, 1))

	assert.Equal(t, []uint32{0, 2, 1}, out.Indices, "winding reversed")
	assert.Greater(t, out.FaceNormal(0).Z(), 0.0)
	assert.InDelta(t, 1, out.Normals[2], 1e-6)
}
