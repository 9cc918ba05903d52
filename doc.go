// Package lamella slices solid models into planar contours. A scene is
// described in a small Lisp dialect, evaluated into an immutable DAG,
// compiled into signed distance solids, and cut into closed,
// winding-classified polygon slices ready for SVG, DXF, or PNG export.
//
// The top-level Pipeline ties the stages together; each stage is usable
// on its own through pkg/engine, pkg/scene, pkg/compile, pkg/field,
// pkg/slicer, pkg/contour, and pkg/export.
package lamella
