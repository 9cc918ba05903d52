package tui

import (
	"sort"
	"strings"
)

// renderSlice draws the current slice into a braille map of w x h cells.
func (m Model) renderSlice(w, h int) string {
	if w < 1 || h < 1 {
		return ""
	}
	br := newBrailleBuf(w, h)
	s := m.currentSlice()
	if s == nil || s.IsEmpty() {
		return strings.Join(br.toLines(), "\n")
	}

	if m.fill {
		m.fillScanlines(br, w, h)
	}
	for _, c := range s.Contours() {
		verts := c.Vertices()
		n := len(verts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			// Stitched loops are implicitly closed, so the last edge
			// wraps back to the first vertex.
			a := verts[i]
			b := verts[(i+1)%n]
			x0, y0 := m.worldToMicro(a.X, a.Y, w, h)
			x1, y1 := m.worldToMicro(b.X, b.Y, w, h)
			br.line(x0, y0, x1, y1)
		}
	}
	return strings.Join(br.toLines(), "\n")
}

// worldToMicro projects a world XY point onto the braille microgrid.
// The whole stack's footprint fits the viewport at zoom 1 so the frame
// holds steady while stepping between planes. Zoom scales about the
// viewport center; pan offsets are in cells. Braille micro-pixels are
// close to square on a 1:2 terminal font, so one uniform scale keeps
// circles round.
func (m Model) worldToMicro(x, y float64, w, h int) (int, int) {
	b := m.stack.Bounds()
	sizeX := b.Max.X - b.Min.X
	sizeY := b.Max.Y - b.Min.Y
	if sizeX <= 0 {
		sizeX = 1
	}
	if sizeY <= 0 {
		sizeY = 1
	}
	wMic := w * 2
	hMic := h * 4
	scale := float64(wMic-1) / sizeX
	if sv := float64(hMic-1) / sizeY; sv < scale {
		scale = sv
	}
	scale *= m.zoom

	cx := (b.Min.X + b.Max.X) / 2
	cy := (b.Min.Y + b.Max.Y) / 2
	sx := int(float64(wMic)/2+(x-cx)*scale) + m.offsetX*2
	sy := int(float64(hMic)/2-(y-cy)*scale) + m.offsetY*4
	return sx, sy
}

// fillScanlines paints the slice interior row by row with the even-odd
// rule. Crossings from every contour pool into one list, so holes knock
// out of their shells no matter which way they wind.
func (m Model) fillScanlines(br *brailleBuf, w, h int) {
	s := m.currentSlice()

	type pt struct{ x, y int }
	var rings [][]pt
	for _, c := range s.Contours() {
		verts := c.Vertices()
		if len(verts) < 3 {
			continue
		}
		ring := make([]pt, len(verts))
		for i, v := range verts {
			mx, my := m.worldToMicro(v.X, v.Y, w, h)
			ring[i] = pt{mx, my}
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return
	}

	hMic := h * 4
	wMic := w * 2
	var xs []int
	for y := 0; y < hMic; y++ {
		xs = xs[:0]
		for _, ring := range rings {
			for i := range ring {
				a := ring[i]
				b := ring[(i+1)%len(ring)]
				if a.y == b.y {
					continue
				}
				// Half-open span so shared vertices count once.
				if (y >= a.y && y < b.y) || (y >= b.y && y < a.y) {
					t := float64(y-a.y) / float64(b.y-a.y)
					xs = append(xs, a.x+int(t*float64(b.x-a.x)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := xs[i]
			x1 := xs[i+1]
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= wMic {
				x1 = wMic - 1
			}
			for x := x0; x <= x1; x++ {
				br.setPixel(x, y)
			}
		}
	}
}
