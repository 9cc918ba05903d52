package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/lamella/pkg/contour"
)

const (
	solidStyle   = "fill:#333333;fill-rule:evenodd;stroke:none"
	outlineStyle = "fill:none;stroke:#333333;stroke-width:1"
)

// SVGOptions configure the SVG exporter. The zero value renders an
// outline at one pixel per world unit with a one unit margin.
type SVGOptions struct {
	// Scale maps world units to SVG user units. Zero means 1.
	Scale float64
	// Margin is blank space around the drawing, in world units. Zero
	// means 1.
	Margin float64
	// Solid fills the slice instead of stroking contour outlines.
	Solid bool
	// Policy orders outer boundaries before holes in solid mode.
	Policy contour.FillPolicy
}

func (o SVGOptions) withDefaults() (SVGOptions, error) {
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Margin == 0 {
		o.Margin = 1
	}
	if o.Scale < 0 {
		return o, fmt.Errorf("export: scale must be positive, got %g", o.Scale)
	}
	if o.Margin < 0 {
		return o, fmt.Errorf("export: margin must not be negative, got %g", o.Margin)
	}
	return o, nil
}

// WriteSVG renders one slice as an SVG document. Outline mode writes one
// path per contour; solid mode concatenates outer boundaries then holes
// into a single even-odd fill path. The Y axis is flipped at write time
// since SVG y grows downward.
func WriteSVG(w io.Writer, slice *contour.PolySlice, opts SVGOptions) error {
	if slice == nil {
		return fmt.Errorf("export: nil slice")
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	b := slice.Bounds()
	size := b.Size()
	width := int(math.Ceil((size.X + 2*opts.Margin) * opts.Scale))
	height := int(math.Ceil((size.Y + 2*opts.Margin) * opts.Scale))

	toX := func(x float64) float64 { return (x - b.Min.X + opts.Margin) * opts.Scale }
	toY := func(y float64) float64 { return (b.Max.Y - y + opts.Margin) * opts.Scale }

	canvas := svg.New(w)
	canvas.Start(width, height)
	if opts.Solid {
		var d strings.Builder
		for _, c := range slice.FillOrder(opts.Policy) {
			appendPathData(&d, c, toX, toY)
		}
		if d.Len() > 0 {
			canvas.Path(d.String(), solidStyle)
		}
	} else {
		for _, c := range slice.Contours() {
			var d strings.Builder
			appendPathData(&d, c, toX, toY)
			if d.Len() > 0 {
				canvas.Path(d.String(), outlineStyle)
			}
		}
	}
	canvas.End()
	return nil
}

// SaveSVG writes the slice to a file.
func SaveSVG(path string, slice *contour.PolySlice, opts SVGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteSVG(f, slice, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// appendPathData writes one contour as an M/L/Z subpath.
func appendPathData(d *strings.Builder, c *contour.PolyContour, toX, toY func(float64) float64) {
	verts := c.Vertices()
	if len(verts) < 2 {
		return
	}
	for i, v := range verts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(d, "%s %.4f %.4f ", cmd, toX(v.X), toY(v.Y))
	}
	d.WriteString("Z ")
}
