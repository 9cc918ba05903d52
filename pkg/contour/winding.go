package contour

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Winding is the rotational orientation of a closed polygon's vertex
// sequence, in a y-up coordinate frame.
type Winding int

const (
	WindingUnknown          Winding = iota // degenerate: zero area or fewer than 3 vertices
	WindingClockwise                       // negative enclosed area
	WindingCounterClockwise                // positive enclosed area
)

func (w Winding) String() string {
	switch w {
	case WindingUnknown:
		return "unknown"
	case WindingClockwise:
		return "clockwise"
	case WindingCounterClockwise:
		return "counterclockwise"
	default:
		return fmt.Sprintf("Winding(%d)", int(w))
	}
}

// Opposite returns the reversed orientation. Unknown has no opposite.
func (w Winding) Opposite() Winding {
	switch w {
	case WindingClockwise:
		return WindingCounterClockwise
	case WindingCounterClockwise:
		return WindingClockwise
	default:
		return WindingUnknown
	}
}

// SignedDoubleArea returns the trapezoid form of the shoelace sum,
//
//	Σ (x[i+1] − x[i]) · (y[i+1] + y[i])
//
// over consecutive vertex pairs, wrapping from the last vertex back to the
// first. The result is −2× the enclosed area: negative for a
// counter-clockwise vertex order, positive for clockwise.
func SignedDoubleArea(vertices []v2.Vec) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		sum += (b.X - a.X) * (b.Y + a.Y)
	}
	return sum
}

// ClassifyWinding computes the orientation of a vertex loop. Fewer than 3
// vertices or an exactly-zero shoelace sum classify as WindingUnknown;
// degenerate loops are data, not errors.
func ClassifyWinding(vertices []v2.Vec) Winding {
	sum := SignedDoubleArea(vertices)
	switch {
	case sum > 0:
		return WindingClockwise
	case sum < 0:
		return WindingCounterClockwise
	default:
		return WindingUnknown
	}
}

// FillPolicy selects which winding marks an outer boundary when contours
// are combined into a solid fill. The extractor orients segments with the
// negative (inside) region on the right, so outer boundaries of a solid
// trace clockwise and cavities counter-clockwise; OuterClockwise matches
// that and is the default everywhere. Renderers with the opposite
// convention pass OuterCounterClockwise instead of re-winding their
// input.
type FillPolicy int

const (
	OuterClockwise FillPolicy = iota
	OuterCounterClockwise
)

func (p FillPolicy) String() string {
	switch p {
	case OuterCounterClockwise:
		return "outer-counterclockwise"
	case OuterClockwise:
		return "outer-clockwise"
	default:
		return fmt.Sprintf("FillPolicy(%d)", int(p))
	}
}

// Outer returns the winding treated as an outer boundary under this policy.
func (p FillPolicy) Outer() Winding {
	if p == OuterClockwise {
		return WindingClockwise
	}
	return WindingCounterClockwise
}

// Hole returns the winding treated as a hole under this policy.
func (p FillPolicy) Hole() Winding {
	return p.Outer().Opposite()
}

// IsOuter reports whether w marks an outer boundary. Unknown is neither
// outer nor hole.
func (p FillPolicy) IsOuter(w Winding) bool {
	return w != WindingUnknown && w == p.Outer()
}

// IsHole reports whether w marks a hole.
func (p FillPolicy) IsHole(w Winding) bool {
	return w != WindingUnknown && w == p.Hole()
}
