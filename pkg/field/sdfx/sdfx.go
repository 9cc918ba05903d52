// Package sdfx implements the field.Engine interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lamella/pkg/field"
)

// Compile-time interface check.
var _ field.Engine = (*Engine)(nil)

// solid wraps an sdf.SDF3 to implement field.Solid.
type solid struct {
	s sdf.SDF3
}

func (s *solid) Evaluate(p v3.Vec) float64 {
	return s.s.Evaluate(p)
}

func (s *solid) BoundingBox() sdf.Box3 {
	return s.s.BoundingBox()
}

// Engine implements field.Engine using sdfx.
type Engine struct{}

// New returns a new Engine.
func New() *Engine {
	return &Engine{}
}

// wrap creates a field.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) field.Solid {
	return &solid{s: s}
}

// unwrap extracts the underlying sdf.SDF3 from a field.Solid. Solids from
// other sources (such as field.Func) satisfy sdf.SDF3 directly, so
// booleans and transforms can mix them with native solids.
func unwrap(s field.Solid) sdf.SDF3 {
	if w, ok := s.(*solid); ok {
		return w.s
	}
	return s
}

// Box creates a box with the given dimensions, centered on the origin.
func (e *Engine) Box(size v3.Vec) field.Solid {
	s, err := sdf.Box3D(size, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Sphere creates a sphere with the given radius, centered on the origin.
func (e *Engine) Sphere(radius float64) field.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a Z-axis cylinder with the given height and radius,
// centered on the origin.
func (e *Engine) Cylinder(height, radius float64) field.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (e *Engine) Union(a, b field.Solid) field.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (e *Engine) Difference(a, b field.Solid) field.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (e *Engine) Intersection(a, b field.Solid) field.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by v.
func (e *Engine) Translate(s field.Solid, v v3.Vec) field.Solid {
	m := sdf.Translate3d(v)
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (e *Engine) Rotate(s field.Solid, eulerDeg v3.Vec) field.Solid {
	xRad := eulerDeg.X * math.Pi / 180.0
	yRad := eulerDeg.Y * math.Pi / 180.0
	zRad := eulerDeg.Z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}
