package contour

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Cell edges, numbered counter-clockwise from the bottom. Each edge joins
// two of the cell's corner samples.
const (
	edgeBottom = 0 // f00 -- f10
	edgeRight  = 1 // f10 -- f11
	edgeTop    = 2 // f11 -- f01
	edgeLeft   = 3 // f01 -- f00
)

// caseEntry describes the segments emitted for one corner-sign mask:
// which edges carry a crossing and how the crossing points pair up into
// directed segments.
type caseEntry struct {
	edges    uint8      // bitmask of crossed edges, bit i = edge i
	segments [2][2]int8 // (start edge, end edge) per segment
	count    int8       // number of segments, 0..2
}

// caseTable maps a 4-bit corner mask to its segment layout. Mask bits:
// bit 0 = f00 (x, y), bit 1 = f10 (x+1, y), bit 2 = f11 (x+1, y+1),
// bit 3 = f01 (x, y+1); a bit is set when the sample is negative
// (inside). Segments are directed so the negative region lies on the
// right: outer boundaries of a solid trace clockwise. The two saddle
// masks (5 and 10) are resolved one fixed way: the diagonal inside
// corners stay disconnected. The cell midpoint is never consulted, so
// the same mask always yields the same layout.
var caseTable = [16]caseEntry{
	0:  {},
	1:  {edges: 1<<edgeBottom | 1<<edgeLeft, segments: [2][2]int8{{edgeLeft, edgeBottom}}, count: 1},
	2:  {edges: 1<<edgeBottom | 1<<edgeRight, segments: [2][2]int8{{edgeBottom, edgeRight}}, count: 1},
	3:  {edges: 1<<edgeRight | 1<<edgeLeft, segments: [2][2]int8{{edgeLeft, edgeRight}}, count: 1},
	4:  {edges: 1<<edgeRight | 1<<edgeTop, segments: [2][2]int8{{edgeRight, edgeTop}}, count: 1},
	5:  {edges: 1<<edgeBottom | 1<<edgeRight | 1<<edgeTop | 1<<edgeLeft, segments: [2][2]int8{{edgeLeft, edgeBottom}, {edgeRight, edgeTop}}, count: 2},
	6:  {edges: 1<<edgeBottom | 1<<edgeTop, segments: [2][2]int8{{edgeBottom, edgeTop}}, count: 1},
	7:  {edges: 1<<edgeTop | 1<<edgeLeft, segments: [2][2]int8{{edgeLeft, edgeTop}}, count: 1},
	8:  {edges: 1<<edgeTop | 1<<edgeLeft, segments: [2][2]int8{{edgeTop, edgeLeft}}, count: 1},
	9:  {edges: 1<<edgeBottom | 1<<edgeTop, segments: [2][2]int8{{edgeTop, edgeBottom}}, count: 1},
	10: {edges: 1<<edgeBottom | 1<<edgeRight | 1<<edgeTop | 1<<edgeLeft, segments: [2][2]int8{{edgeBottom, edgeRight}, {edgeTop, edgeLeft}}, count: 2},
	11: {edges: 1<<edgeRight | 1<<edgeTop, segments: [2][2]int8{{edgeTop, edgeRight}}, count: 1},
	12: {edges: 1<<edgeRight | 1<<edgeLeft, segments: [2][2]int8{{edgeRight, edgeLeft}}, count: 1},
	13: {edges: 1<<edgeBottom | 1<<edgeRight, segments: [2][2]int8{{edgeRight, edgeBottom}}, count: 1},
	14: {edges: 1<<edgeBottom | 1<<edgeLeft, segments: [2][2]int8{{edgeBottom, edgeLeft}}, count: 1},
	15: {},
}

// interpEps nudges the interpolation parameter off the exact corner when
// one sample is zero, keeping crossing points strictly inside their edge.
const interpEps = 1e-6

// cornerMask packs the four corner signs into a table index.
func cornerMask(f00, f10, f11, f01 float64) int {
	mask := 0
	if f00 < 0 {
		mask |= 1
	}
	if f10 < 0 {
		mask |= 2
	}
	if f11 < 0 {
		mask |= 4
	}
	if f01 < 0 {
		mask |= 8
	}
	return mask
}

// edgeCross locates the sign change on the edge pa--pb by linear
// interpolation of the sample magnitudes. The parameter is symmetric
// under endpoint swap and always lands strictly between the endpoints.
func edgeCross(pa, pb v2.Vec, fa, fb float64) v2.Vec {
	a := fa
	if a < 0 {
		a = -a
	}
	b := fb
	if b < 0 {
		b = -b
	}
	t := (a + interpEps) / (a + b + 2*interpEps)
	return v2.Vec{
		X: pa.X + t*(pb.X-pa.X),
		Y: pa.Y + t*(pb.Y-pa.Y),
	}
}

// edgePoint returns the crossing point on the given edge of the unit cell
// whose lower-left corner sits at (x, y) in grid coordinates.
func edgePoint(edge int8, x, y float64, f00, f10, f11, f01 float64) v2.Vec {
	switch edge {
	case edgeBottom:
		return edgeCross(v2.Vec{X: x, Y: y}, v2.Vec{X: x + 1, Y: y}, f00, f10)
	case edgeRight:
		return edgeCross(v2.Vec{X: x + 1, Y: y}, v2.Vec{X: x + 1, Y: y + 1}, f10, f11)
	case edgeTop:
		return edgeCross(v2.Vec{X: x + 1, Y: y + 1}, v2.Vec{X: x, Y: y + 1}, f11, f01)
	case edgeLeft:
		return edgeCross(v2.Vec{X: x, Y: y + 1}, v2.Vec{X: x, Y: y}, f01, f00)
	}
	panic(fmt.Sprintf("contour: invalid cell edge %d", edge))
}
