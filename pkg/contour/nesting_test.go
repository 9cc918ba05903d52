package contour

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func sliceFromField(t *testing.T, g Grid, want int) *PolySlice {
	t.Helper()
	s := NewPolySlice(0)
	for _, c := range Stitch(Extract(g, IdentityTransform)) {
		s.Append(c)
	}
	if got := s.ContourCount(); got != want {
		t.Fatalf("field produced %d contours, want %d", got, want)
	}
	return s
}

// byBoxArea returns contour indices sorted largest box first, for
// picking out nesting levels without assuming stitch order.
func byBoxArea(s *PolySlice) []int {
	idx := make([]int, s.ContourCount())
	for i := range idx {
		idx[i] = i
	}
	area := func(i int) float64 {
		sz := s.Contours()[i].Bounds().Size()
		return sz.X * sz.Y
	}
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			if area(idx[j]) > area(idx[i]) {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}
	return idx
}

func TestAssignNestingAnnulus(t *testing.T) {
	g := fieldGrid{w: 25, h: 25, f: func(x, y float64) float64 {
		return math.Abs(math.Hypot(x-12, y-12)-6) - 2
	}}
	s := sliceFromField(t, g, 2)
	nest := AssignNesting(s)

	order := byBoxArea(s)
	outer, inner := order[0], order[1]

	if got := nest.Parent[outer]; got != -1 {
		t.Errorf("outer Parent = %d, want -1", got)
	}
	if got := nest.Parent[inner]; got != outer {
		t.Errorf("inner Parent = %d, want %d", got, outer)
	}
	if nest.Depth[outer] != 0 || nest.Depth[inner] != 1 {
		t.Errorf("depths = %v, want outer 0 inner 1", nest.Depth)
	}
	if !nest.IsShell(outer) || !nest.IsHole(inner) {
		t.Errorf("shell/hole classification wrong: depths %v", nest.Depth)
	}
	if len(nest.Holes[outer]) != 1 || nest.Holes[outer][0] != inner {
		t.Errorf("Holes[outer] = %v, want [%d]", nest.Holes[outer], inner)
	}
}

func TestAssignNestingIsland(t *testing.T) {
	// A ring with a separate disk inside its cavity: three levels deep.
	g := fieldGrid{w: 25, h: 25, f: func(x, y float64) float64 {
		d := math.Hypot(x-12, y-12)
		return math.Min(math.Abs(d-6)-2, d-2)
	}}
	s := sliceFromField(t, g, 3)
	nest := AssignNesting(s)

	order := byBoxArea(s)
	outer, middle, island := order[0], order[1], order[2]

	if nest.Depth[outer] != 0 || nest.Depth[middle] != 1 || nest.Depth[island] != 2 {
		t.Fatalf("depths = %v, want 0/1/2 outermost first", nest.Depth)
	}
	if got := nest.Parent[island]; got != middle {
		t.Errorf("island Parent = %d, want the cavity boundary %d", got, middle)
	}
	if !nest.IsShell(island) {
		t.Errorf("island at depth 2 classified as hole")
	}

	var p FillPolicy
	if bad := nest.VerifyWinding(s, p); len(bad) != 0 {
		t.Errorf("VerifyWinding() = %v, want none", bad)
	}
}

func TestAssignNestingDisjoint(t *testing.T) {
	g := fieldGrid{w: 36, h: 20, f: func(x, y float64) float64 {
		d1 := math.Hypot(x-9, y-9) - 5
		d2 := math.Hypot(x-26, y-9) - 5
		return math.Min(d1, d2)
	}}
	s := sliceFromField(t, g, 2)
	nest := AssignNesting(s)

	for i := 0; i < 2; i++ {
		if got := nest.Parent[i]; got != -1 {
			t.Errorf("contour %d Parent = %d, want -1", i, got)
		}
		if got := nest.Depth[i]; got != 0 {
			t.Errorf("contour %d Depth = %d, want 0", i, got)
		}
		if len(nest.Holes[i]) != 0 {
			t.Errorf("contour %d Holes = %v, want none", i, nest.Holes[i])
		}
	}
}

func TestAssignNestingTrivial(t *testing.T) {
	empty := AssignNesting(NewPolySlice(0))
	if len(empty.Parent) != 0 {
		t.Errorf("empty slice nesting = %+v", empty)
	}

	s := NewPolySlice(0)
	s.Append(NewPolyContour(cwSquare()))
	single := AssignNesting(s)
	if single.Parent[0] != -1 || single.Depth[0] != 0 {
		t.Errorf("single contour nesting = %+v", single)
	}
}

func TestVerifyWindingMismatch(t *testing.T) {
	outer := NewPolyContour([]v2.Vec{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
	}) // clockwise
	inner := NewPolyContour([]v2.Vec{
		{X: 2, Y: 2}, {X: 2, Y: 8}, {X: 8, Y: 8}, {X: 8, Y: 2},
	}) // also clockwise, but sits at hole depth

	s := NewPolySlice(0)
	s.Append(outer)
	s.Append(inner)
	nest := AssignNesting(s)

	bad := nest.VerifyWinding(s, OuterClockwise)
	if len(bad) != 1 {
		t.Fatalf("VerifyWinding() found %d mismatches, want 1", len(bad))
	}
	if bad[0].Contour != 1 || bad[0].Depth != 1 || bad[0].Winding != WindingClockwise {
		t.Errorf("mismatch = %+v", bad[0])
	}
	if bad[0].String() == "" {
		t.Errorf("mismatch String() empty")
	}
}

func TestPointInPolygon(t *testing.T) {
	square := ccwSquare()
	tests := []struct {
		name string
		p    v2.Vec
		want bool
	}{
		{"center", v2.Vec{X: 0.5, Y: 0.5}, true},
		{"outside right", v2.Vec{X: 1.5, Y: 0.5}, false},
		{"outside above", v2.Vec{X: 0.5, Y: 1.5}, false},
		{"outside diagonal", v2.Vec{X: -0.5, Y: -0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("pointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
