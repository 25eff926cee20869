package main

import (
	"context"
	"os"
	"testing"

	"github.com/chazu/floorplan/pkg/config"
	"github.com/chazu/floorplan/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2ESelectPresets exercises the full pipeline for each selection
// trigger: preset -> enclosure check -> walls + gated floor -> scene ->
// frontend mesh data. This is the same path the Wails SelectShape binding
// takes, but without the Wails runtime.
func TestE2ESelectPresets(t *testing.T) {
	tests := []struct {
		shape     string
		walls     int
		floor     bool
		floorTris int
	}{
		{plan.PresetSquare, 4, true, 2},
		{plan.PresetLShape, 6, true, 4},
		{plan.PresetTriangle, 3, true, 1},
		{plan.PresetCorridor, 3, false, 0},
	}

	app := NewApp(nil)
	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			res := app.SelectShape(tt.shape)
			require.Empty(t, res.Errors)
			assert.Equal(t, tt.shape, res.Shape)
			assert.Equal(t, tt.floor, res.Enclosed)

			walls, floors := 0, 0
			for _, m := range res.Meshes {
				switch m.Kind {
				case "wall":
					walls++
					assert.Len(t, m.Indices, 36, m.PartName)
					// Wall centres sit at half height plus at most the jitter.
					y := float64(m.Matrix[13])
					assert.GreaterOrEqual(t, y, 1.5, m.PartName)
					assert.Less(t, y, 1.5+0.001+1e-6, m.PartName)
					assert.True(t, m.CastShadow && m.ReceiveShadow, "%s: walls cast and receive shadows", m.PartName)
				case "floor":
					floors++
					assert.Equal(t, tt.floorTris, len(m.Indices)/3, "floor triangles")
					assert.Len(t, m.UVs, len(m.Vertices)/3*2, "one uv per vertex")
					assert.NotEmpty(t, m.Texture)
					assert.True(t, m.Repeat, "floor texture repeats")
					assert.False(t, m.CastShadow)
					assert.True(t, m.ReceiveShadow)
				default:
					t.Errorf("unexpected mesh kind %q", m.Kind)
				}
			}
			assert.Equal(t, tt.walls, walls)
			wantFloors := 0
			if tt.floor {
				wantFloors = 1
			}
			assert.Equal(t, wantFloors, floors)
		})
	}
}

func TestE2ERepeatedSelectionDoesNotAccumulate(t *testing.T) {
	app := NewApp(nil)
	for i := 0; i < 10; i++ {
		app.SelectShape(plan.PresetLShape)
		res := app.SelectShape(plan.PresetSquare)
		require.Len(t, res.Meshes, 5, "iteration %d", i)
	}
	assert.Len(t, app.Current().Meshes, 5)
}

func TestE2EMeshIDsChangeOnRebuild(t *testing.T) {
	app := NewApp(nil)
	first := app.SelectShape(plan.PresetSquare)
	second := app.SelectShape(plan.PresetSquare)

	seen := make(map[string]bool)
	for _, m := range first.Meshes {
		seen[m.ID] = true
	}
	for _, m := range second.Meshes {
		assert.False(t, seen[m.ID], "mesh %s reused id %s after rebuild", m.PartName, m.ID)
	}
}

func TestE2EStartupSelectsDefault(t *testing.T) {
	app := NewApp(nil)
	require.Empty(t, app.Current().Meshes, "empty scene before startup")
	app.startup(context.Background())

	res := app.Current()
	assert.Equal(t, plan.DefaultPreset, res.Shape)
	assert.Len(t, res.Meshes, 5)
	assert.Equal(t, 50.0, res.Fixtures.GridSize)
	assert.Len(t, res.Fixtures.Lights, 2)
}

func TestE2EShapes(t *testing.T) {
	app := NewApp(nil)
	assert.Equal(t, []ShapeInfo{
		{Name: "square", Size: 4, Enclosed: true, Preset: true},
		{Name: "lshape", Size: 6, Enclosed: true, Preset: true},
		{Name: "triangle", Size: 3, Enclosed: true, Preset: true},
		{Name: "corridor", Size: 3, Enclosed: false, Preset: true},
	}, app.Shapes())
}

// TestE2EStudioExample evaluates the example file shipped with the repo.
func TestE2EStudioExample(t *testing.T) {
	app := NewApp(nil)

	source, err := os.ReadFile("examples/studio.plan")
	require.NoError(t, err)

	result := app.Evaluate(string(source))
	require.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	// Four presets plus four user shapes.
	require.Len(t, result.Shapes, 8)
	user := map[string]ShapeInfo{}
	for _, s := range result.Shapes[4:] {
		assert.False(t, s.Preset, s.Name)
		user[s.Name] = s
	}
	for name, enclosed := range map[string]bool{"studio": true, "bay": true, "hall": false, "closets": true} {
		s, ok := user[name]
		if assert.True(t, ok, "missing shape %q", name) {
			assert.Equal(t, enclosed, s.Enclosed, name)
		}
	}

	// The first shape defined is selected.
	assert.Equal(t, "studio", result.Scene.Shape)
	assert.Len(t, result.Scene.Meshes, 5)

	bay := app.SelectShape("bay")
	assert.Empty(t, bay.Errors)
	assert.Len(t, bay.Meshes, 9)

	closets := app.SelectShape("closets")
	assert.Len(t, closets.Meshes, 9, "8 walls and one floor")
}

func TestE2ESdfxKernel(t *testing.T) {
	cfg := config.Default()
	cfg.Geometry.Kernel = config.KernelSdfx
	cfg.Geometry.MeshCells = 60
	app := NewApp(cfg)

	res := app.SelectShape(plan.PresetTriangle)
	require.Empty(t, res.Errors)
	require.Len(t, res.Meshes, 4)
	for _, m := range res.Meshes {
		assert.NotEmpty(t, m.Indices, m.PartName)
	}
}

func TestE2ESdfxZeroLengthWall(t *testing.T) {
	cfg := config.Default()
	cfg.Geometry.Kernel = config.KernelSdfx
	cfg.Geometry.MeshCells = 40
	app := NewApp(cfg)

	var result EvalResult
	require.NotPanics(t, func() {
		result = app.Evaluate(`(defshape "pt" (wall 0 0 4 0) (wall 4 0 4 4) (wall 4 4 4 4))`)
	})
	require.Empty(t, result.Errors)
	assert.Empty(t, result.Scene.Errors)
	assert.Equal(t, "pt", result.Scene.Shape)
	assert.NotEmpty(t, result.Scene.Warnings, "zero-length wall is reported")

	require.Len(t, result.Scene.Meshes, 3)
	assert.NotEmpty(t, result.Scene.Meshes[0].Indices)
	assert.Empty(t, result.Scene.Meshes[2].Indices, "zero-length wall has no surface")
}
