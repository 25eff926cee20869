package scene

import (
	"github.com/chazu/floorplan/pkg/kernel"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ObjectKind distinguishes generated geometry.
type ObjectKind int

const (
	KindWall ObjectKind = iota
	KindFloor
)

func (k ObjectKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Object is one renderable mesh in the scene. It owns its geometry; the
// material is shared.
type Object struct {
	ID            uuid.UUID
	Kind          ObjectKind
	Name          string
	Geometry      *kernel.Mesh
	Position      mgl64.Vec3 // logical placement
	Offset        mgl64.Vec3 // render-only nudge against z-fighting
	RotationY     float64
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool

	disposed bool
}

func newObject(kind ObjectKind, name string, geom *kernel.Mesh, mat *Material) *Object {
	return &Object{
		ID:       uuid.New(),
		Kind:     kind,
		Name:     name,
		Geometry: geom,
		Material: mat,
	}
}

// Model returns the local-to-world transform including the render offset.
func (o *Object) Model() mgl64.Mat4 {
	return mgl64.Translate3D(o.Position.Add(o.Offset).Elem()).Mul4(mgl64.HomogRotate3DY(o.RotationY))
}

// Dispose releases the object's geometry. The shared material is left
// alone. Disposing twice is a no-op.
func (o *Object) Dispose() {
	o.Geometry = nil
	o.disposed = true
}

// Disposed reports whether Dispose has been called.
func (o *Object) Disposed() bool {
	return o.disposed
}
