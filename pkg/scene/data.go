package scene

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimBox      PrimitiveKind = iota // rectangular solid
	PrimSphere                        // sphere
	PrimCylinder                      // cylinder along the Z axis
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimBox:
		return "box"
	case PrimSphere:
		return "sphere"
	case PrimCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// BoxData represents an axis-aligned rectangular solid centered on the origin.
type BoxData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Size     Vec3          `json:"size"` // full extents in mm
}

func (BoxData) nodeData() {}

// SphereData represents a sphere centered on the origin.
type SphereData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Radius   float64       `json:"radius"` // mm
}

func (SphereData) nodeData() {}

// CylinderData represents a cylinder along the Z axis, centered on the origin.
type CylinderData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Height   float64       `json:"height"` // mm
	Radius   float64       `json:"radius"` // mm
}

func (CylinderData) nodeData() {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// BoolOp enumerates boolean combination operators.
type BoolOp int

const (
	BoolUnion        BoolOp = iota // combined volume of all children
	BoolDifference                 // first child minus the rest
	BoolIntersection               // volume shared by all children
)

func (op BoolOp) String() string {
	switch op {
	case BoolUnion:
		return "union"
	case BoolDifference:
		return "difference"
	case BoolIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// BooleanData combines the node's children with a boolean operator.
// Children are folded left to right.
type BooleanData struct {
	Op BoolOp `json:"op"`
}

func (BooleanData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transformation applied to a child node.
// Created by the (place ...) Lisp form. Rotation is applied before
// translation.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping (scene root, named solid).
// Created by the (scene ...) and (defsolid ...) Lisp forms.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
