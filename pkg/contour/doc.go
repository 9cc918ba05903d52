// Package contour extracts closed 2D polygons from sampled scalar
// fields. A marching-squares pass turns each grid cell into zero, one,
// or two oriented line segments; the stitcher chains the resulting
// segment soup into closed loops; the winding classifier tags each loop
// clockwise or counter-clockwise so renderers can tell solid fill from
// holes.
//
// Samples follow the signed-distance convention: negative values are
// inside the solid, the zero level set is the surface. Segments keep the
// negative region on their right, so solids produce clockwise outer
// boundaries and counter-clockwise cavities.
package contour
