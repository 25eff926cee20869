// Package scene owns the renderable state of the floor plan viewer: the
// wall and floor objects for the current shape, the shared materials, and
// the static fixtures. Each rebuild retires every previously generated
// object before inserting the new ones.
package scene

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/chazu/floorplan/pkg/config"
	"github.com/chazu/floorplan/pkg/plan"
	"github.com/chazu/floorplan/pkg/tessellate"
	"github.com/go-gl/mathgl/mgl64"
)

// Jitter supplies values in [0, 1) for render offsets. *rand.Rand
// satisfies it.
type Jitter interface {
	Float64() float64
}

// NewJitter returns a random source seeded with seed, or from the clock
// when seed is zero.
func NewJitter(seed int64) Jitter {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Summary describes the outcome of a rebuild.
type Summary struct {
	Shape    string
	Walls    int
	Floor    bool
	Enclosed bool
	Retired  int
	Warnings []plan.ValidationError
}

// Scene holds the generated objects for one shape at a time.
type Scene struct {
	materials   *Materials
	fixtures    Fixtures
	jitter      Jitter
	wallJitter  float64
	floorJitter float64

	walls      []*Object
	floor      *Object
	shape      string
	generation uint64
}

// New creates an empty scene. A nil jitter seeds one from cfg.Render.Seed.
func New(cfg *config.Config, jitter Jitter) *Scene {
	if jitter == nil {
		jitter = NewJitter(cfg.Render.Seed)
	}
	return &Scene{
		materials:   NewMaterials(cfg),
		fixtures:    DefaultFixtures(cfg),
		jitter:      jitter,
		wallJitter:  cfg.Render.WallJitter,
		floorJitter: cfg.Render.FloorJitter,
	}
}

// Rebuild replaces the scene's geometry with the walls and, when enclosed,
// the floor of shape. Invalid shapes and build failures leave the current
// geometry in place.
func (s *Scene) Rebuild(b *tessellate.Builder, shape plan.Shape) (Summary, error) {
	res := plan.Validate(shape)
	if err := res.Err(); err != nil {
		return Summary{}, fmt.Errorf("scene: shape %q: %w", shape.Name, err)
	}

	walls, err := b.Walls(shape.Segments)
	if err != nil {
		return Summary{}, fmt.Errorf("scene: shape %q: %w", shape.Name, err)
	}
	floor, err := b.Floor(shape.Segments)
	if err != nil {
		return Summary{}, fmt.Errorf("scene: shape %q: %w", shape.Name, err)
	}

	newWalls := make([]*Object, 0, len(walls))
	for _, w := range walls {
		obj := newObject(KindWall, w.Geometry.PartName, w.Geometry, s.materials.Wall)
		obj.Position = w.Center
		obj.RotationY = w.RotationY
		obj.Offset = mgl64.Vec3{0, s.jitter.Float64() * s.wallJitter, 0}
		obj.CastShadow = w.CastShadow
		obj.ReceiveShadow = w.ReceiveShadow
		newWalls = append(newWalls, obj)
	}

	var newFloor *Object
	if floor != nil {
		newFloor = newObject(KindFloor, floor.Geometry.PartName, floor.Geometry, s.materials.Floor)
		newFloor.Offset = mgl64.Vec3{0, s.jitter.Float64() * s.floorJitter, 0}
		newFloor.ReceiveShadow = floor.ReceiveShadow
	}

	retired := s.clear()
	s.walls = newWalls
	s.floor = newFloor
	s.shape = shape.Name
	s.generation++

	log.Printf("scene: built %q: %d walls, floor=%t, retired %d objects", shape.Name, len(newWalls), newFloor != nil, retired)

	return Summary{
		Shape:    shape.Name,
		Walls:    len(newWalls),
		Floor:    newFloor != nil,
		Enclosed: shape.Enclosed(b.Tolerance()),
		Retired:  retired,
		Warnings: res.Warnings,
	}, nil
}

// Clear disposes all generated objects. Fixtures and materials stay.
func (s *Scene) Clear() int {
	n := s.clear()
	if n > 0 {
		s.shape = ""
		s.generation++
	}
	return n
}

func (s *Scene) clear() int {
	n := 0
	for _, w := range s.walls {
		w.Dispose()
		n++
	}
	if s.floor != nil {
		s.floor.Dispose()
		n++
	}
	s.walls = nil
	s.floor = nil
	return n
}

// Objects returns the walls followed by the floor, if any.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.walls)+1)
	out = append(out, s.walls...)
	if s.floor != nil {
		out = append(out, s.floor)
	}
	return out
}

// Walls returns the current wall objects.
func (s *Scene) Walls() []*Object {
	return append([]*Object(nil), s.walls...)
}

// Floor returns the current floor object, or nil when the shape is open.
func (s *Scene) Floor() *Object {
	return s.floor
}

// Shape returns the name of the shape currently shown.
func (s *Scene) Shape() string {
	return s.shape
}

// Generation counts the rebuilds and clears that changed the scene.
func (s *Scene) Generation() uint64 {
	return s.generation
}

// Fixtures returns the static grid and lights.
func (s *Scene) Fixtures() Fixtures {
	return s.fixtures
}

// Materials returns the shared materials.
func (s *Scene) Materials() *Materials {
	return s.materials
}
