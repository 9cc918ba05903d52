// Package scene defines the scene graph types for Lamella.
// The scene graph is an immutable DAG of primitives, booleans, transforms,
// and groups that represents a solid model to be sliced into contours.
package scene
