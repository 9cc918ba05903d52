package contour

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/dhconnelly/rtreego"
)

// Nesting records the containment hierarchy of one slice's contours.
// Indices refer to the slice's contour order. Contours produced from a
// continuous scalar field never cross, so containment is well defined.
type Nesting struct {
	Parent []int   // innermost containing contour, -1 for top level
	Holes  [][]int // direct children per contour
	Depth  []int   // number of containing contours
}

// IsShell reports whether contour i bounds solid material: top-level
// contours and every even nesting depth.
func (n *Nesting) IsShell(i int) bool {
	return n.Depth[i]%2 == 0
}

// IsHole reports whether contour i bounds a cavity (odd nesting depth).
func (n *Nesting) IsHole(i int) bool {
	return n.Depth[i]%2 == 1
}

// contourSpatial adapts one contour's bounding box for r-tree indexing.
type contourSpatial struct {
	idx  int
	rect rtreego.Rect
}

func (cs *contourSpatial) Bounds() rtreego.Rect {
	return cs.rect
}

// rectFor converts a bounding box to an r-tree rectangle. Degenerate
// extents are padded, since rtreego rejects zero-length sides.
func rectFor(b sdf.Box2) rtreego.Rect {
	lx := b.Max.X - b.Min.X
	ly := b.Max.Y - b.Min.Y
	if lx < 1e-9 {
		lx = 1e-9
	}
	if ly < 1e-9 {
		ly = 1e-9
	}
	r, err := rtreego.NewRect(rtreego.Point{b.Min.X, b.Min.Y}, []float64{lx, ly})
	if err != nil {
		panic(fmt.Sprintf("contour: rect construction failed: %v", err))
	}
	return r
}

// AssignNesting resolves which contours of a slice contain which. The
// bounding boxes go into an r-tree so each contour only runs the exact
// point-in-polygon test against contours whose boxes overlap its own.
// The parent is the innermost container: the containing contour with the
// smallest enclosed area.
func AssignNesting(s *PolySlice) *Nesting {
	contours := s.Contours()
	n := len(contours)
	nest := &Nesting{
		Parent: make([]int, n),
		Holes:  make([][]int, n),
		Depth:  make([]int, n),
	}
	for i := range nest.Parent {
		nest.Parent[i] = -1
	}
	if n < 2 {
		return nest
	}

	tree := rtreego.NewTree(2, 32, 64)
	rects := make([]rtreego.Rect, n)
	for i, c := range contours {
		rects[i] = rectFor(c.Bounds())
		tree.Insert(&contourSpatial{idx: i, rect: rects[i]})
	}

	areas := make([]float64, n)
	for i, c := range contours {
		areas[i] = math.Abs(SignedDoubleArea(c.Vertices()))
	}

	for i, c := range contours {
		probe := c.Vertices()[0]
		for _, hit := range tree.SearchIntersect(rects[i]) {
			j := hit.(*contourSpatial).idx
			if j == i {
				continue
			}
			cj := contours[j]
			if !boxContains(cj.Bounds(), c.Bounds()) {
				continue
			}
			if !pointInPolygon(probe, cj.Vertices()) {
				continue
			}
			nest.Depth[i]++
			if nest.Parent[i] < 0 || areas[j] < areas[nest.Parent[i]] {
				nest.Parent[i] = j
			}
		}
	}

	for i, p := range nest.Parent {
		if p >= 0 {
			nest.Holes[p] = append(nest.Holes[p], i)
		}
	}
	return nest
}

// boxContains reports whether outer fully encloses inner.
func boxContains(outer, inner sdf.Box2) bool {
	return outer.Min.X <= inner.Min.X && outer.Min.Y <= inner.Min.Y &&
		outer.Max.X >= inner.Max.X && outer.Max.Y >= inner.Max.Y
}

// pointInPolygon runs an even-odd ray cast against the polygon's implicit
// closure. Points on the boundary are not meaningful here: probe points
// come from a different contour of the same field, which never touches
// this one.
func pointInPolygon(p v2.Vec, poly []v2.Vec) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// WindingMismatch reports one contour whose winding disagrees with its
// nesting depth under a fill policy.
type WindingMismatch struct {
	Contour int
	Depth   int
	Winding Winding
}

func (m WindingMismatch) String() string {
	return fmt.Sprintf("contour %d at depth %d wound %s", m.Contour, m.Depth, m.Winding)
}

// VerifyWinding cross-checks every classified contour against the depth
// parity the policy expects: shells wound as outers, cavities as holes.
// A mismatch means the upstream geometry broke its orientation contract;
// callers decide whether to log or reject. Unknown windings enclose no
// area and are skipped.
func (n *Nesting) VerifyWinding(s *PolySlice, p FillPolicy) []WindingMismatch {
	var bad []WindingMismatch
	for i, c := range s.Contours() {
		w := c.Winding()
		if w == WindingUnknown {
			continue
		}
		want := p.Outer()
		if n.IsHole(i) {
			want = p.Hole()
		}
		if w != want {
			bad = append(bad, WindingMismatch{Contour: i, Depth: n.Depth[i], Winding: w})
		}
	}
	return bad
}
