// Package export serializes contour slices to SVG, DXF, and PNG. The
// exporters consume only vertex sequences and winding tags; geometry
// and winding decisions are made upstream.
package export
