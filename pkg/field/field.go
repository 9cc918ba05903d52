// Package field defines the signed scalar field engine interface.
// Implementations provide solid modeling and boolean operations behind
// this interface; the abstraction allows swapping backends without
// changing the rest of the system. Fields follow the signed-distance
// convention: negative inside, zero on the surface.
package field

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is a region of space described by a signed scalar field.
// Implementations must be safe for concurrent Evaluate calls.
type Solid interface {
	// Evaluate returns the field value at p: negative inside.
	Evaluate(p v3.Vec) float64
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() sdf.Box3
}

// Engine constructs and combines solids.
type Engine interface {
	// Primitives, centered on the origin.
	Box(size v3.Vec) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, v v3.Vec) Solid
	Rotate(s Solid, eulerDeg v3.Vec) Solid // Euler angles in degrees, applied X then Y then Z
}

// Func adapts a plain function and bounds to the Solid interface.
// Useful for analytic fields that never touch a backend.
type Func struct {
	Fn  func(p v3.Vec) float64
	Box sdf.Box3
}

func (f Func) Evaluate(p v3.Vec) float64 {
	return f.Fn(p)
}

func (f Func) BoundingBox() sdf.Box3 {
	return f.Box
}
