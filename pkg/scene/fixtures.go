package scene

import (
	"github.com/chazu/floorplan/pkg/config"
	"github.com/go-gl/mathgl/mgl64"
)

// LightKind enumerates the light types the frontend knows how to create.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// Light is a static scene light.
type Light struct {
	Kind       LightKind
	Color      string
	Intensity  float64
	Position   mgl64.Vec3
	CastShadow bool
}

// Grid is the ground reference grid.
type Grid struct {
	Size      float64
	Divisions int
}

// Fixtures are the parts of a scene that never change with the shape.
type Fixtures struct {
	Grid   Grid
	Lights []Light
}

// DefaultFixtures returns a ground grid and a key/fill light pair.
func DefaultFixtures(cfg *config.Config) Fixtures {
	return Fixtures{
		Grid: Grid{Size: cfg.Render.GridSize, Divisions: cfg.Render.GridDivs},
		Lights: []Light{
			{Kind: LightAmbient, Color: "#FFFFFF", Intensity: 0.4},
			{Kind: LightDirectional, Color: "#FFFFFF", Intensity: 0.8, Position: mgl64.Vec3{10, 20, 10}, CastShadow: true},
		},
	}
}
