package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/chazu/lamella/pkg/contour"
)

// PNGOptions configure the PNG exporter. The zero value renders at ten
// pixels per world unit with a one unit margin.
type PNGOptions struct {
	// PixelsPerUnit maps world units to pixels. Zero means 10.
	PixelsPerUnit float64
	// Margin is blank space around the drawing, in world units. Zero
	// means 1.
	Margin float64
	// Policy filters out contours whose winding encloses no area.
	Policy contour.FillPolicy
}

func (o PNGOptions) withDefaults() (PNGOptions, error) {
	if o.PixelsPerUnit == 0 {
		o.PixelsPerUnit = 10
	}
	if o.Margin == 0 {
		o.Margin = 1
	}
	if o.PixelsPerUnit < 0 {
		return o, fmt.Errorf("export: pixels per unit must be positive, got %g", o.PixelsPerUnit)
	}
	if o.Margin < 0 {
		return o, fmt.Errorf("export: margin must not be negative, got %g", o.Margin)
	}
	return o, nil
}

// WritePNG rasterizes the slice's solid fill, black on white. The
// rasterizer applies the non-zero winding rule, so holes wound opposite
// to their shells subtract without any explicit nesting input.
func WritePNG(w io.Writer, slice *contour.PolySlice, opts PNGOptions) error {
	if slice == nil {
		return fmt.Errorf("export: nil slice")
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	b := slice.Bounds()
	size := b.Size()
	width := int(math.Ceil((size.X + 2*opts.Margin) * opts.PixelsPerUnit))
	height := int(math.Ceil((size.Y + 2*opts.Margin) * opts.PixelsPerUnit))

	toX := func(x float64) float32 {
		return float32((x - b.Min.X + opts.Margin) * opts.PixelsPerUnit)
	}
	toY := func(y float64) float32 {
		return float32((b.Max.Y - y + opts.Margin) * opts.PixelsPerUnit)
	}

	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Src
	for _, c := range slice.FillOrder(opts.Policy) {
		verts := c.Vertices()
		if len(verts) < 3 {
			continue
		}
		r.MoveTo(toX(verts[0].X), toY(verts[0].Y))
		for _, v := range verts[1:] {
			r.LineTo(toX(v.X), toY(v.Y))
		}
		r.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(mask, mask.Bounds(), image.NewUniform(color.Alpha{A: 0xff}), image.Point{})

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.DrawMask(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, draw.Over)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// SavePNG writes the slice to a file.
func SavePNG(path string, slice *contour.PolySlice, opts PNGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WritePNG(f, slice, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
