package sdfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCells keeps marching cubes fast in tests.
const testCells = 40

func TestBox(t *testing.T) {
	k := New(testCells)
	mesh, err := k.ToMesh(k.Box(4, 3, 0.5))
	require.NoError(t, err)
	require.False(t, mesh.IsEmpty())

	triCount := mesh.TriangleCount()
	assert.NotZero(t, triCount)
	assert.Len(t, mesh.Normals, len(mesh.Vertices))
	assert.Len(t, mesh.Indices, triCount*3)
	assert.False(t, mesh.HasUVs(), "marching cubes meshes carry no uvs")
	t.Logf("box triangle count: %d", triCount)
}

func TestBoxMeshMatchesSolid(t *testing.T) {
	k := New(testCells)
	mesh, err := k.ToMesh(k.Box(4, 3, 0.5))
	require.NoError(t, err)

	// Marching cubes lands within one cell of the true surface.
	cell := 4.0 / testCells
	min, max := mesh.Bounds()
	want := [3]float64{2, 1.5, 0.25}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], max[i], cell, "max[%d]", i)
		assert.InDelta(t, -want[i], min[i], cell, "min[%d]", i)
	}
}

func TestBoundingBox(t *testing.T) {
	min, max := New(0).Box(100, 50, 25).BoundingBox()

	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expectMin[i], min[i], 0.01, "min[%d]", i)
		assert.InDelta(t, expectMax[i], max[i], 0.01, "max[%d]", i)
	}
}

func TestNewDefaultCells(t *testing.T) {
	assert.Equal(t, DefaultMeshCells, New(-1).cells)
}

type foreignSolid struct{}

func (foreignSolid) BoundingBox() (min, max [3]float64) { return }

func TestToMeshRejectsForeignSolid(t *testing.T) {
	_, err := New(testCells).ToMesh(foreignSolid{})
	assert.Error(t, err, "a solid from another kernel")
}

func TestZeroSizeBox(t *testing.T) {
	k := New(testCells)
	for _, size := range [][3]float64{{0, 3, 0.5}, {4, 0, 0.5}, {-1, 3, 0.5}} {
		mesh, err := k.ToMesh(k.Box(size[0], size[1], size[2]))
		require.NoError(t, err, "box %v", size)
		assert.True(t, mesh.IsEmpty(), "box %v", size)
		assert.Zero(t, mesh.TriangleCount(), "box %v", size)
	}

	min, max := k.Box(0, 3, 0.5).BoundingBox()
	assert.Equal(t, [3]float64{0, -1.5, -0.25}, min)
	assert.Equal(t, [3]float64{0, 1.5, 0.25}, max)
}
