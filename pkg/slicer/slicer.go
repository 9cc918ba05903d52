// Package slicer cuts solids into planar contour slices. Each plane is
// sampled on a uniform grid, crossings are extracted as a segment soup,
// and the soup is stitched into closed contours with nesting-checked
// windings.
package slicer

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/lamella/pkg/contour"
	"github.com/chazu/lamella/pkg/field"
)

// DefaultStep is the sampling pitch used when Options.Step is zero.
const DefaultStep = 1.0

// Options configure a Slicer. The zero value samples at DefaultStep with
// full parallelism, silently, filling clockwise outers to match the sign
// convention of signed distance fields.
type Options struct {
	// Step is the sampling pitch in world units. Zero means DefaultStep;
	// negative is an error.
	Step float64
	// Workers bounds sampling and extraction parallelism. Zero or
	// negative means runtime.NumCPU.
	Workers int
	// Policy decides which winding marks an outer boundary.
	Policy contour.FillPolicy
	// Logger receives per-plane diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Slicer slices solids on horizontal planes. Safe for concurrent use as
// long as the solids are.
type Slicer struct {
	step    float64
	workers int
	policy  contour.FillPolicy
	log     *slog.Logger
}

// New validates the options and returns a Slicer.
func New(opts Options) (*Slicer, error) {
	if opts.Step == 0 {
		opts.Step = DefaultStep
	}
	if opts.Step < 0 {
		return nil, fmt.Errorf("slicer: step must be positive, got %g", opts.Step)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Slicer{
		step:    opts.Step,
		workers: workers,
		policy:  opts.Policy,
		log:     log,
	}, nil
}

// Policy returns the fill policy the slicer checks windings against.
func (sl *Slicer) Policy() contour.FillPolicy {
	return sl.policy
}

// Slice cuts the solid on the plane at height z and returns the stitched
// contours. A plane that misses the solid yields an empty slice, not an
// error. Winding mismatches against the fill policy are logged and left
// in place.
func (sl *Slicer) Slice(s field.Solid, z float64) (*contour.PolySlice, error) {
	if s == nil {
		return nil, fmt.Errorf("slicer: nil solid")
	}

	// Pad the sampling window one step beyond the XY bounds so the
	// outermost samples sit outside the solid and every boundary closes.
	bb := s.BoundingBox()
	window := sdf.Box2{
		Min: v2.Vec{X: bb.Min.X - sl.step, Y: bb.Min.Y - sl.step},
		Max: v2.Vec{X: bb.Max.X + sl.step, Y: bb.Max.Y + sl.step},
	}

	grid := field.SampleParallel(s, z, window, sl.step, sl.workers)
	soup := contour.ExtractParallel(grid, contour.Transform{
		Offset: grid.Origin,
		Scale:  grid.Step,
	}, sl.workers)

	st := contour.NewStitcher(soup)
	// The stitch tolerance is defined on the unit grid; the soup is in
	// world units.
	st.Tolerance2 *= sl.step * sl.step
	chains := st.Stitch()

	slice := contour.NewPolySlice(z)
	for _, c := range chains {
		slice.Append(c)
	}

	nest := contour.AssignNesting(slice)
	for _, m := range nest.VerifyWinding(slice, sl.policy) {
		sl.log.Warn("winding mismatch",
			"z", z,
			"contour", m.Contour,
			"depth", m.Depth,
			"winding", m.Winding.String())
	}

	sl.log.Debug("sliced plane",
		"z", z,
		"segments", len(soup),
		"contours", slice.ContourCount())
	return slice, nil
}

// SliceRange cuts count slices through [zmin, zmax]. Planes are placed
// at layer midpoints, so the first and last sit half a layer inside the
// range and tangent planes at the exact extremes are avoided. The
// returned stack preserves bottom-to-top order and keeps empty slices.
func (sl *Slicer) SliceRange(s field.Solid, zmin, zmax float64, count int) (*contour.PolySliceStack, error) {
	if s == nil {
		return nil, fmt.Errorf("slicer: nil solid")
	}
	if count < 1 {
		return nil, fmt.Errorf("slicer: slice count must be at least 1, got %d", count)
	}
	if zmax < zmin {
		zmin, zmax = zmax, zmin
	}

	dz := (zmax - zmin) / float64(count)
	stack := contour.NewPolySliceStack()
	for i := 0; i < count; i++ {
		z := zmin + dz*(float64(i)+0.5)
		slice, err := sl.Slice(s, z)
		if err != nil {
			return nil, err
		}
		stack.Append(slice)
	}

	sl.log.Debug("sliced range",
		"zmin", zmin,
		"zmax", zmax,
		"slices", stack.SliceCount(),
		"contours", stack.ContourCount())
	return stack, nil
}

// SliceSolid cuts the solid's full Z extent into layers of at most the
// given thickness. Layer count is rounded up so thickness is never
// exceeded.
func (sl *Slicer) SliceSolid(s field.Solid, thickness float64) (*contour.PolySliceStack, error) {
	if s == nil {
		return nil, fmt.Errorf("slicer: nil solid")
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("slicer: layer thickness must be positive, got %g", thickness)
	}
	bb := s.BoundingBox()
	span := bb.Max.Z - bb.Min.Z
	count := int(math.Ceil(span / thickness))
	if count < 1 {
		count = 1
	}
	return sl.SliceRange(s, bb.Min.Z, bb.Max.Z, count)
}
