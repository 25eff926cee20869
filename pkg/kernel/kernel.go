// Package kernel defines the abstract geometry kernel interface.
// Implementations (poly, sdfx) turn box solids into triangle meshes behind
// this interface, so the wall builder does not depend on a backend.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box creates an axis-aligned box of size x*y*z centred on the origin.
	Box(x, y, z float64) Solid

	// ToMesh tessellates a solid into a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
