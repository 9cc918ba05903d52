package contour

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// closeEps is the Euclidean distance under which Close treats the first
// and last vertices as already coincident.
const closeEps = 1e-9

// PolyContour is one closed polygon loop: an ordered vertex sequence with
// a winding classification fixed at construction and a cached bounding
// box. The final edge from the last vertex back to the first is implicit;
// Close makes it explicit. Apart from Close, a contour never mutates.
type PolyContour struct {
	vertices []v2.Vec
	winding  Winding
	bounds   sdf.Box2
}

// NewPolyContour builds a contour and infers its winding from the
// vertices. Loops with fewer than 3 vertices or zero area classify as
// WindingUnknown rather than failing.
func NewPolyContour(vertices []v2.Vec) *PolyContour {
	return &PolyContour{
		vertices: vertices,
		winding:  ClassifyWinding(vertices),
		bounds:   vertexBounds(vertices),
	}
}

// NewPolyContourWinding builds a contour with a caller-asserted winding.
// The assertion is cross-checked against the computed value; a mismatch is
// a programmer error, not a data error, and panics. Callers that must not
// crash on questionable input use NewPolyContour and let the winding be
// inferred.
func NewPolyContourWinding(vertices []v2.Vec, w Winding) *PolyContour {
	computed := ClassifyWinding(vertices)
	if w != computed {
		panic(fmt.Sprintf("contour: asserted winding %s disagrees with computed winding %s", w, computed))
	}
	return &PolyContour{
		vertices: vertices,
		winding:  w,
		bounds:   vertexBounds(vertices),
	}
}

// vertexBounds returns the axis-aligned box enclosing all vertices.
// An empty vertex list yields the zero box.
func vertexBounds(vertices []v2.Vec) sdf.Box2 {
	if len(vertices) == 0 {
		return sdf.Box2{}
	}
	b := sdf.Box2{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		if v.X < b.Min.X {
			b.Min.X = v.X
		}
		if v.Y < b.Min.Y {
			b.Min.Y = v.Y
		}
		if v.X > b.Max.X {
			b.Max.X = v.X
		}
		if v.Y > b.Max.Y {
			b.Max.Y = v.Y
		}
	}
	return b
}

// Vertices returns the vertex sequence. Callers must not modify it.
func (c *PolyContour) Vertices() []v2.Vec {
	return c.vertices
}

// VertexCount returns the number of vertices.
func (c *PolyContour) VertexCount() int {
	return len(c.vertices)
}

// Winding returns the orientation fixed at construction.
func (c *PolyContour) Winding() Winding {
	return c.winding
}

// Bounds returns the cached bounding box.
func (c *PolyContour) Bounds() sdf.Box2 {
	return c.bounds
}

// IsClosed reports whether the last vertex coincides with the first
// (Euclidean distance under closeEps).
func (c *PolyContour) IsClosed() bool {
	n := len(c.vertices)
	if n < 2 {
		return false
	}
	return c.vertices[n-1].Sub(c.vertices[0]).Length() < closeEps
}

// Close appends a duplicate of the first vertex unless the loop is
// already explicitly closed. Consumers that require first == last call
// this once; the winding and bounds are unaffected.
func (c *PolyContour) Close() {
	if len(c.vertices) == 0 || c.IsClosed() {
		return
	}
	c.vertices = append(c.vertices, c.vertices[0])
}

// PolySlice owns the contours of one Z plane and their aggregate 2D
// bounding box. Contours keep insertion order; the box grows as contours
// are appended and never shrinks.
type PolySlice struct {
	z        float64
	contours []*PolyContour
	bounds   sdf.Box2
}

// NewPolySlice creates an empty slice at the given height.
func NewPolySlice(z float64) *PolySlice {
	return &PolySlice{z: z}
}

// Z returns the slice plane height.
func (s *PolySlice) Z() float64 {
	return s.z
}

// Append adds a contour and extends the slice bounds by its box.
func (s *PolySlice) Append(c *PolyContour) {
	if len(s.contours) == 0 {
		s.bounds = c.Bounds()
	} else {
		s.bounds = s.bounds.Extend(c.Bounds())
	}
	s.contours = append(s.contours, c)
}

// Contours returns the contours in insertion order.
func (s *PolySlice) Contours() []*PolyContour {
	return s.contours
}

// ContourCount returns the number of contours.
func (s *PolySlice) ContourCount() int {
	return len(s.contours)
}

// IsEmpty reports whether the slice holds no contours.
func (s *PolySlice) IsEmpty() bool {
	return len(s.contours) == 0
}

// Bounds returns the union of all contained contour boxes, or the zero
// box for an empty slice.
func (s *PolySlice) Bounds() sdf.Box2 {
	return s.bounds
}

// FillOrder returns the contours arranged for solid filling under the
// given policy: all outer boundaries first (insertion order), then all
// holes. Concatenated into one path, even-odd and non-zero fill rules
// both render the solid correctly. Unknown-winding contours enclose no
// area and are omitted.
func (s *PolySlice) FillOrder(p FillPolicy) []*PolyContour {
	out := make([]*PolyContour, 0, len(s.contours))
	for _, c := range s.contours {
		if p.IsOuter(c.Winding()) {
			out = append(out, c)
		}
	}
	for _, c := range s.contours {
		if p.IsHole(c.Winding()) {
			out = append(out, c)
		}
	}
	return out
}

// PolySliceStack is an ordered collection of slices. Insertion order is
// preserved as-is; Z values need not be monotonic. The 3D bounding box
// unions each slice's 2D box at that slice's height.
type PolySliceStack struct {
	slices    []*PolySlice
	bounds    sdf.Box3
	hasBounds bool
}

// NewPolySliceStack creates an empty stack.
func NewPolySliceStack() *PolySliceStack {
	return &PolySliceStack{}
}

// Append adds a slice and extends the stack bounds. Empty slices are kept
// (a plane with no crossings is data) but contribute nothing to bounds.
func (st *PolySliceStack) Append(s *PolySlice) {
	if !s.IsEmpty() {
		b2 := s.Bounds()
		b3 := sdf.Box3{
			Min: v3.Vec{X: b2.Min.X, Y: b2.Min.Y, Z: s.Z()},
			Max: v3.Vec{X: b2.Max.X, Y: b2.Max.Y, Z: s.Z()},
		}
		if st.hasBounds {
			st.bounds = st.bounds.Extend(b3)
		} else {
			st.bounds = b3
			st.hasBounds = true
		}
	}
	st.slices = append(st.slices, s)
}

// Slices returns the slices in insertion order.
func (st *PolySliceStack) Slices() []*PolySlice {
	return st.slices
}

// SliceCount returns the number of slices.
func (st *PolySliceStack) SliceCount() int {
	return len(st.slices)
}

// IsEmpty reports whether the stack holds no slices.
func (st *PolySliceStack) IsEmpty() bool {
	return len(st.slices) == 0
}

// Bounds returns the 3D box enclosing every non-empty slice, or the zero
// box if none.
func (st *PolySliceStack) Bounds() sdf.Box3 {
	return st.bounds
}

// ContourCount returns the total number of contours across all slices.
func (st *PolySliceStack) ContourCount() int {
	n := 0
	for _, s := range st.slices {
		n += s.ContourCount()
	}
	return n
}
