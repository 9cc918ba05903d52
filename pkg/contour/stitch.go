package contour

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// stitchTol2 is the default squared endpoint-matching tolerance, in the
// soup's coordinate units. Crossing points on a shared cell edge coincide
// up to float rounding, so the tolerance mostly guards against noise; at
// grid scale 1.0 it still rejects endpoints a full cell apart, since the
// comparison is strict.
const stitchTol2 = 1.0

// Stitcher chains an unordered segment soup into polygon contours by
// greedy nearest-endpoint matching. It consumes the soup sequentially and
// is not safe for concurrent use; every segment transitions from unused
// to used exactly once, so vertex conservation can be checked against
// Remaining.
type Stitcher struct {
	// Tolerance2 is the squared distance under which two endpoints are
	// considered coincident. Set before calling Stitch; defaults to
	// stitchTol2.
	Tolerance2 float64

	segs      []Segment
	used      []bool
	remaining int
	scanFrom  int
}

// NewStitcher wraps a soup for stitching. The soup is not copied and must
// not be modified while the stitcher is live.
func NewStitcher(soup []Segment) *Stitcher {
	return &Stitcher{
		Tolerance2: stitchTol2,
		segs:       soup,
		used:       make([]bool, len(soup)),
		remaining:  len(soup),
	}
}

// Remaining returns the number of segments not yet consumed.
func (st *Stitcher) Remaining() int {
	return st.remaining
}

// Stitch consumes the whole soup and returns the contours it chains, in
// seed order. Chains that end up with fewer than 3 vertices are dropped:
// they are sub-cell slivers the sampling resolution cannot resolve, and
// losing them is expected. Stitching the same soup twice yields identical
// results only via a fresh Stitcher.
func (st *Stitcher) Stitch() []*PolyContour {
	var out []*PolyContour
	for st.remaining > 0 {
		seed := st.nextSeed()
		if seed < 0 {
			break
		}
		if c := st.chainFrom(seed); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// nextSeed advances past the used prefix and returns the first unused
// segment index, or -1 when the soup is exhausted.
func (st *Stitcher) nextSeed() int {
	for st.scanFrom < len(st.segs) && st.used[st.scanFrom] {
		st.scanFrom++
	}
	if st.scanFrom == len(st.segs) {
		return -1
	}
	return st.scanFrom
}

func (st *Stitcher) consume(i int) {
	st.used[i] = true
	st.remaining--
}

func dist2(a, b v2.Vec) float64 {
	return a.Sub(b).Length2()
}

// chainFrom grows a chain from the seed segment in both directions until
// it closes on itself or no endpoint matches, then assembles the contour.
// Segments are directed, so the chain extends head-first (matching a
// candidate's End against the chain head) and tail-last (matching a
// candidate's Start against the chain tail); winding is preserved.
func (st *Stitcher) chainFrom(seed int) *PolyContour {
	st.consume(seed)

	// front holds vertices prepended before the seed, in reverse order;
	// back holds the seed and everything appended after it.
	var front []v2.Vec
	back := []v2.Vec{st.segs[seed].Start, st.segs[seed].End}
	segsInChain := 1

	for {
		var head v2.Vec
		if len(front) > 0 {
			head = front[len(front)-1]
		} else {
			head = back[0]
		}
		tail := back[len(back)-1]

		// The two growth fronts met.
		if segsInChain > 1 && dist2(head, tail) < st.Tolerance2 {
			break
		}

		bestStart, bestEnd := st.findCandidates(head, tail)
		if bestStart < 0 && bestEnd < 0 {
			break
		}
		if bestStart >= 0 && bestStart == bestEnd {
			// One segment bridges tail back to head: the loop is
			// closed and the bridge adds no new vertex.
			st.consume(bestStart)
			segsInChain++
			break
		}
		if bestStart >= 0 {
			st.consume(bestStart)
			front = append(front, st.segs[bestStart].Start)
			segsInChain++
		}
		if bestEnd >= 0 {
			st.consume(bestEnd)
			back = append(back, st.segs[bestEnd].End)
			segsInChain++
		}
	}

	vertices := make([]v2.Vec, 0, len(front)+len(back))
	for i := len(front) - 1; i >= 0; i-- {
		vertices = append(vertices, front[i])
	}
	vertices = append(vertices, back...)

	if len(vertices) < 3 {
		return nil
	}
	// Closed chains duplicate the seam vertex; keep closure implicit.
	if dist2(vertices[0], vertices[len(vertices)-1]) < st.Tolerance2 {
		vertices = vertices[:len(vertices)-1]
	}
	if len(vertices) < 3 {
		return nil
	}
	return NewPolyContour(vertices)
}

// findCandidates scans the unused soup for the segment whose End lies
// nearest the chain head and the one whose Start lies nearest the chain
// tail, both within Tolerance2. Segments whose vertical extent misses the
// band around the active endpoints are rejected without distance math.
// Ties on distance keep the first-encountered index, which makes the
// whole stitch deterministic for a given soup order.
func (st *Stitcher) findCandidates(head, tail v2.Vec) (bestStart, bestEnd int) {
	pad := 1.0
	if st.Tolerance2 > 1 {
		pad = math.Sqrt(st.Tolerance2)
	}
	yLo := math.Floor(math.Min(head.Y, tail.Y)) - pad
	yHi := math.Ceil(math.Max(head.Y, tail.Y)) + pad

	bestStart, bestEnd = -1, -1
	bestStartD, bestEndD := st.Tolerance2, st.Tolerance2
	for i := st.scanFrom; i < len(st.segs); i++ {
		if st.used[i] {
			continue
		}
		s := &st.segs[i]
		if s.MinY > yHi || s.MaxY < yLo {
			continue
		}
		if d := dist2(s.End, head); d < bestStartD {
			bestStartD, bestStart = d, i
		}
		if d := dist2(s.Start, tail); d < bestEndD {
			bestEndD, bestEnd = d, i
		}
	}
	return bestStart, bestEnd
}

// Stitch chains a soup with the default tolerance.
func Stitch(soup []Segment) []*PolyContour {
	return NewStitcher(soup).Stitch()
}
