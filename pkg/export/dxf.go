package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/chazu/lamella/pkg/contour"
)

// SaveDXF writes the stack as a DXF drawing, one layer per slice named
// SLICE_<n> in bottom-to-top order, one LWPOLYLINE per contour. Loops
// with a known winding enclose area and are emitted closed; degenerate
// chains stay open.
func SaveDXF(path string, stack *contour.PolySliceStack) error {
	if stack == nil {
		return fmt.Errorf("export: nil slice stack")
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 100.0

	for i, slice := range stack.Slices() {
		layer := fmt.Sprintf("SLICE_%d", i)
		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("export: add layer %s: %w", layer, err)
		}
		for _, c := range slice.Contours() {
			verts := c.Vertices()
			if len(verts) < 2 {
				continue
			}
			points := make([][]float64, len(verts))
			for j, v := range verts {
				points[j] = []float64{v.X, v.Y}
			}
			closed := c.Winding() != contour.WindingUnknown
			if _, err := d.LwPolyline(closed, points...); err != nil {
				return fmt.Errorf("export: polyline on %s: %w", layer, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
