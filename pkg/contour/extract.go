package contour

import (
	"sync"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Grid is a 2D scalar sample field. Negative samples are inside the
// shape, positive outside. At must tolerate any x in [0, w) and
// y in [0, h).
type Grid interface {
	Size() (w, h int)
	At(x, y int) float64
}

// Transform maps grid-local coordinates to output coordinates:
// output = Offset + Scale * local, applied per component.
type Transform struct {
	Offset v2.Vec
	Scale  float64
}

// IdentityTransform leaves grid coordinates unchanged.
var IdentityTransform = Transform{Scale: 1}

// Apply maps one point.
func (t Transform) Apply(p v2.Vec) v2.Vec {
	return v2.Vec{
		X: t.Offset.X + t.Scale*p.X,
		Y: t.Offset.Y + t.Scale*p.Y,
	}
}

// Segment is one directed line segment in output coordinates. MinY and
// MaxY cache the vertical extent for cheap band rejection while
// stitching.
type Segment struct {
	Start v2.Vec
	End   v2.Vec
	MinY  float64
	MaxY  float64
}

func newSegment(start, end v2.Vec) Segment {
	s := Segment{Start: start, End: end, MinY: start.Y, MaxY: end.Y}
	if s.MinY > s.MaxY {
		s.MinY, s.MaxY = s.MaxY, s.MinY
	}
	return s
}

// Extract runs marching squares over every cell of the grid and returns
// the unordered segment soup, transformed into output coordinates. Grids
// smaller than 2x2 hold no cells and produce an empty soup. Each sample
// is read exactly once.
func Extract(g Grid, t Transform) []Segment {
	w, h := g.Size()
	if w < 2 || h < 2 {
		return nil
	}
	var soup []Segment
	lower := make([]float64, w)
	upper := make([]float64, w)
	for x := 0; x < w; x++ {
		upper[x] = g.At(x, 0)
	}
	for y := 0; y < h-1; y++ {
		lower, upper = upper, lower
		for x := 0; x < w; x++ {
			upper[x] = g.At(x, y+1)
		}
		soup = appendRowSegments(soup, lower, upper, y, t)
	}
	return soup
}

// appendRowSegments classifies every cell of one grid row and appends its
// segments to dst. lower holds the samples at rowY, upper at rowY+1.
func appendRowSegments(dst []Segment, lower, upper []float64, rowY int, t Transform) []Segment {
	y := float64(rowY)
	for x := 0; x < len(lower)-1; x++ {
		f00 := lower[x]
		f10 := lower[x+1]
		f11 := upper[x+1]
		f01 := upper[x]
		entry := &caseTable[cornerMask(f00, f10, f11, f01)]
		if entry.count == 0 {
			continue
		}
		fx := float64(x)
		var pts [4]v2.Vec
		for e := int8(0); e < 4; e++ {
			if entry.edges&(1<<uint(e)) != 0 {
				pts[e] = edgePoint(e, fx, y, f00, f10, f11, f01)
			}
		}
		for i := int8(0); i < entry.count; i++ {
			start := t.Apply(pts[entry.segments[i][0]])
			end := t.Apply(pts[entry.segments[i][1]])
			dst = append(dst, newSegment(start, end))
		}
	}
	return dst
}

// ExtractParallel is Extract with rows fanned out across workers. Cells
// never share state, so rows partition cleanly; results are collected
// per row and flattened in row order, making the output identical to the
// serial soup regardless of scheduling. The grid must be safe for
// concurrent reads. workers <= 1 falls back to the serial path.
func ExtractParallel(g Grid, t Transform, workers int) []Segment {
	w, h := g.Size()
	if w < 2 || h < 2 {
		return nil
	}
	rows := h - 1
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		return Extract(g, t)
	}

	buckets := make([][]Segment, rows)
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			lower := make([]float64, w)
			upper := make([]float64, w)
			for y := k; y < rows; y += workers {
				for x := 0; x < w; x++ {
					lower[x] = g.At(x, y)
					upper[x] = g.At(x, y+1)
				}
				buckets[y] = appendRowSegments(nil, lower, upper, y, t)
			}
		}(k)
	}
	wg.Wait()

	n := 0
	for _, b := range buckets {
		n += len(b)
	}
	if n == 0 {
		return nil
	}
	soup := make([]Segment, 0, n)
	for _, b := range buckets {
		soup = append(soup, b...)
	}
	return soup
}
