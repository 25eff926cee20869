// Package tessellate turns a floor plan into renderable meshes using a
// geometry kernel: one box per wall, and one floor polygon when the walls
// enclose a space. Output is deterministic; render-only offsets are applied
// later by package scene.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/floorplan/pkg/config"
	"github.com/chazu/floorplan/pkg/kernel"
	"github.com/chazu/floorplan/pkg/plan"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNonFinite is returned for segments with NaN or infinite coordinates.
var ErrNonFinite = errors.New("non-finite coordinate")

// Builder produces wall and floor meshes with fixed dimensions.
type Builder struct {
	kernel    kernel.Kernel
	height    float64
	thickness float64
	texelUnit float64
	tolerance float64
}

// New creates a Builder that tessellates walls with k and takes its
// dimensions from cfg.
func New(k kernel.Kernel, cfg *config.Config) *Builder {
	return &Builder{
		kernel:    k,
		height:    cfg.Walls.Height,
		thickness: cfg.Walls.Thickness,
		texelUnit: cfg.Floor.TexelRepeatUnit,
		tolerance: cfg.Geometry.PointTolerance,
	}
}

// Tolerance returns the endpoint matching tolerance the builder uses.
func (b *Builder) Tolerance() float64 {
	return b.tolerance
}

// Wall is the box generated for one segment. Geometry is in local space:
// X along the wall, Y up, Z across its thickness, centred on the origin.
// Center and RotationY place it in the world, where plan Y becomes world Z.
type Wall struct {
	Index         int
	Segment       plan.Segment
	Length        float64
	Height        float64
	Thickness     float64
	Center        mgl64.Vec3
	RotationY     float64 // radians about +Y
	Geometry      *kernel.Mesh
	CastShadow    bool
	ReceiveShadow bool
}

// Model returns the wall's local-to-world transform.
func (w *Wall) Model() mgl64.Mat4 {
	return mgl64.Translate3D(w.Center.Elem()).Mul4(mgl64.HomogRotate3DY(w.RotationY))
}

// Wall builds the box for the segment (x1,y1)-(x2,y2). The box is as long
// as the segment, centred on its midpoint with its base on the ground, and
// turned by the negated segment angle. A zero-length segment yields a
// zero-length box.
func (b *Builder) Wall(x1, y1, x2, y2 float64) (*Wall, error) {
	seg := plan.Seg(x1, y1, x2, y2)
	if !seg.IsFinite() {
		return nil, fmt.Errorf("tessellate: wall %s: %w", seg, ErrNonFinite)
	}

	length := seg.Length()
	mesh, err := b.kernel.ToMesh(b.kernel.Box(length, b.height, b.thickness))
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for wall %s: %w", seg, err)
	}
	mesh.PartName = "wall"

	mid := seg.Midpoint()
	return &Wall{
		Segment:       seg,
		Length:        length,
		Height:        b.height,
		Thickness:     b.thickness,
		Center:        mgl64.Vec3{mid.X, b.height / 2, mid.Y},
		RotationY:     -seg.Angle(),
		Geometry:      mesh,
		CastShadow:    true,
		ReceiveShadow: true,
	}, nil
}

// Walls builds one wall per segment, in order, whether or not the segments
// enclose a space.
func (b *Builder) Walls(segs []plan.Segment) ([]*Wall, error) {
	walls := make([]*Wall, 0, len(segs))
	for i, s := range segs {
		w, err := b.Wall(s.X1, s.Y1, s.X2, s.Y2)
		if err != nil {
			return nil, fmt.Errorf("tessellate: wall %d: %w", i, err)
		}
		w.Index = i
		w.Geometry.PartName = fmt.Sprintf("wall-%d", i)
		walls = append(walls, w)
	}
	return walls, nil
}
