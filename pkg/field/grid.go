package field

import (
	"math"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SampleGrid holds one Z plane of field samples in a flat row-major
// array, plus the metadata mapping grid coordinates back to world space:
// sample (x, y) sits at Origin + Step*(x, y) on the plane Z.
type SampleGrid struct {
	Width  int
	Height int
	Values []float64
	Origin v2.Vec
	Step   float64
	Z      float64
}

// NewSampleGrid allocates a zeroed grid.
func NewSampleGrid(width, height int, origin v2.Vec, step, z float64) *SampleGrid {
	return &SampleGrid{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
		Origin: origin,
		Step:   step,
		Z:      z,
	}
}

// Size returns the grid dimensions.
func (g *SampleGrid) Size() (w, h int) {
	return g.Width, g.Height
}

// At returns the sample at grid coordinate (x, y).
func (g *SampleGrid) At(x, y int) float64 {
	return g.Values[y*g.Width+x]
}

// Set stores a sample at grid coordinate (x, y).
func (g *SampleGrid) Set(x, y int, v float64) {
	g.Values[y*g.Width+x] = v
}

// World returns the world-space position of grid coordinate (x, y).
func (g *SampleGrid) World(x, y int) v2.Vec {
	return v2.Vec{
		X: g.Origin.X + g.Step*float64(x),
		Y: g.Origin.Y + g.Step*float64(y),
	}
}

// SampleCount returns the number of samples.
func (g *SampleGrid) SampleCount() int {
	return len(g.Values)
}

// IsEmpty reports whether the grid holds no samples.
func (g *SampleGrid) IsEmpty() bool {
	return len(g.Values) == 0
}

// gridDims converts a window extent to a sample count: enough samples at
// the given spacing to cover the extent, never fewer than two.
func gridDims(extent, step float64) int {
	n := int(math.Ceil(extent/step)) + 1
	if n < 2 {
		n = 2
	}
	return n
}

// Sample evaluates the solid over the window at height z, one sample per
// step. The grid covers the window completely: the last row and column
// land on or past the window edge.
func Sample(s Solid, z float64, window sdf.Box2, step float64) *SampleGrid {
	size := window.Size()
	w := gridDims(size.X, step)
	h := gridDims(size.Y, step)
	g := NewSampleGrid(w, h, window.Min, step, z)
	for y := 0; y < h; y++ {
		wy := window.Min.Y + step*float64(y)
		for x := 0; x < w; x++ {
			wx := window.Min.X + step*float64(x)
			g.Set(x, y, s.Evaluate(v3.Vec{X: wx, Y: wy, Z: z}))
		}
	}
	return g
}

// SampleParallel is Sample with rows fanned out across workers. Rows are
// striped, so the result is identical to the serial fill. workers <= 1
// falls back to Sample.
func SampleParallel(s Solid, z float64, window sdf.Box2, step float64, workers int) *SampleGrid {
	size := window.Size()
	w := gridDims(size.X, step)
	h := gridDims(size.Y, step)
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		return Sample(s, z, window, step)
	}

	g := NewSampleGrid(w, h, window.Min, step, z)
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			for y := k; y < h; y += workers {
				wy := window.Min.Y + step*float64(y)
				for x := 0; x < w; x++ {
					wx := window.Min.X + step*float64(x)
					g.Set(x, y, s.Evaluate(v3.Vec{X: wx, Y: wy, Z: z}))
				}
			}
		}(k)
	}
	wg.Wait()
	return g
}
