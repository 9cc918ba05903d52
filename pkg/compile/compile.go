// Package compile lowers a scene graph into signed distance solids.
// The walk composes bottom-up: primitives become engine solids, boolean
// nodes fold their children with the matching engine operation, and
// transform nodes wrap the composed child. Each scene root yields one or
// more named parts.
package compile

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lamella/pkg/field"
	"github.com/chazu/lamella/pkg/scene"
)

// Part is a compiled solid paired with the name of the scene node it
// came from.
type Part struct {
	Name  string
	Solid field.Solid
}

// Compile walks the scene and lowers it into parts using eng as the
// geometry backend. A group root contributes one part per child so that
// assemblies keep their part identity; any other root becomes a single
// part. Compile assumes the scene has already passed validation.
func Compile(sc *scene.Scene, eng field.Engine) ([]Part, error) {
	if sc == nil {
		return nil, nil
	}

	var parts []Part
	for _, id := range sc.Roots {
		root := sc.Get(id)
		if root == nil {
			continue
		}

		members := []*scene.Node{root}
		if root.Kind == scene.NodeGroup {
			members = sc.Children(root)
		}
		for _, m := range members {
			solid, err := compileNode(sc, eng, m)
			if err != nil {
				return nil, fmt.Errorf("compile: error lowering root %s: %w", id.Short(), err)
			}
			if solid == nil {
				// Empty subgroup; nothing to slice.
				continue
			}
			parts = append(parts, Part{Name: partName(sc, m), Solid: solid})
		}
	}
	return parts, nil
}

// CompileNamed compiles the subtree rooted at the named node into a
// single solid. Group subtrees are unioned.
func CompileNamed(sc *scene.Scene, eng field.Engine, name string) (field.Solid, error) {
	if sc == nil {
		return nil, fmt.Errorf("compile: nil scene")
	}
	n := sc.Lookup(name)
	if n == nil {
		return nil, fmt.Errorf("compile: no node named %q", name)
	}
	solid, err := compileNode(sc, eng, n)
	if err != nil {
		return nil, fmt.Errorf("compile: error lowering node %q: %w", name, err)
	}
	if solid == nil {
		return nil, fmt.Errorf("compile: node %q produced no geometry", name)
	}
	return solid, nil
}

// Merge unions every part into one solid for whole-scene slicing.
// It returns nil when parts is empty.
func Merge(eng field.Engine, parts []Part) field.Solid {
	var acc field.Solid
	for _, p := range parts {
		if p.Solid == nil {
			continue
		}
		if acc == nil {
			acc = p.Solid
		} else {
			acc = eng.Union(acc, p.Solid)
		}
	}
	return acc
}

// partName resolves a display name for a part. Anonymous transform
// wrappers borrow the name of the solid they place.
func partName(sc *scene.Scene, n *scene.Node) string {
	cur := n
	for cur != nil {
		if cur.Name != "" {
			return cur.Name
		}
		if cur.Kind != scene.NodeTransform || len(cur.Children) != 1 {
			break
		}
		cur = sc.Get(cur.Children[0])
	}
	return n.ID.Short()
}

// compileNode dispatches on node kind and returns the composed solid
// for the subtree. A nil solid with nil error means the subtree is
// empty (a group with no children).
func compileNode(sc *scene.Scene, eng field.Engine, n *scene.Node) (field.Solid, error) {
	switch n.Kind {
	case scene.NodePrimitive:
		return compilePrimitive(eng, n)
	case scene.NodeTransform:
		return compileTransform(sc, eng, n)
	case scene.NodeBoolean:
		return compileBoolean(sc, eng, n)
	case scene.NodeGroup:
		return compileGroup(sc, eng, n)
	default:
		return nil, fmt.Errorf("node %s: unknown kind %s", n.ID.Short(), n.Kind)
	}
}

func compilePrimitive(eng field.Engine, n *scene.Node) (field.Solid, error) {
	switch d := n.Data.(type) {
	case scene.BoxData:
		return eng.Box(v3.Vec{X: d.Size.X, Y: d.Size.Y, Z: d.Size.Z}), nil
	case scene.SphereData:
		return eng.Sphere(d.Radius), nil
	case scene.CylinderData:
		return eng.Cylinder(d.Height, d.Radius), nil
	default:
		return nil, fmt.Errorf("primitive %s: unsupported payload %T", n.ID.Short(), n.Data)
	}
}

func compileTransform(sc *scene.Scene, eng field.Engine, n *scene.Node) (field.Solid, error) {
	td, ok := n.Data.(scene.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform %s: unsupported payload %T", n.ID.Short(), n.Data)
	}
	children := sc.Children(n)
	if len(children) != 1 {
		return nil, fmt.Errorf("transform %s: want exactly 1 child, got %d", n.ID.Short(), len(children))
	}

	solid, err := compileNode(sc, eng, children[0])
	if err != nil {
		return nil, err
	}
	if solid == nil {
		return nil, nil
	}

	// Rotation applies before translation.
	if td.Rotation != nil && !isZeroVec(*td.Rotation) {
		solid = eng.Rotate(solid, v3.Vec{X: td.Rotation.X, Y: td.Rotation.Y, Z: td.Rotation.Z})
	}
	if td.Translation != nil && !isZeroVec(*td.Translation) {
		solid = eng.Translate(solid, v3.Vec{X: td.Translation.X, Y: td.Translation.Y, Z: td.Translation.Z})
	}
	return solid, nil
}

func compileBoolean(sc *scene.Scene, eng field.Engine, n *scene.Node) (field.Solid, error) {
	bd, ok := n.Data.(scene.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean %s: unsupported payload %T", n.ID.Short(), n.Data)
	}
	children := sc.Children(n)
	if len(children) < 2 {
		return nil, fmt.Errorf("boolean %s: want at least 2 children, got %d", n.ID.Short(), len(children))
	}

	acc, err := compileNode(sc, eng, children[0])
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("boolean %s: operand %s is empty", n.ID.Short(), children[0].ID.Short())
	}
	for _, child := range children[1:] {
		s, err := compileNode(sc, eng, child)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("boolean %s: operand %s is empty", n.ID.Short(), child.ID.Short())
		}
		switch bd.Op {
		case scene.BoolUnion:
			acc = eng.Union(acc, s)
		case scene.BoolDifference:
			acc = eng.Difference(acc, s)
		case scene.BoolIntersection:
			acc = eng.Intersection(acc, s)
		default:
			return nil, fmt.Errorf("boolean %s: unknown op %d", n.ID.Short(), bd.Op)
		}
	}
	return acc, nil
}

// compileGroup unions its children. Groups below the root level act as
// subassemblies that slice as a single solid.
func compileGroup(sc *scene.Scene, eng field.Engine, n *scene.Node) (field.Solid, error) {
	var acc field.Solid
	for _, child := range sc.Children(n) {
		s, err := compileNode(sc, eng, child)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		if acc == nil {
			acc = s
		} else {
			acc = eng.Union(acc, s)
		}
	}
	return acc, nil
}

func isZeroVec(v scene.Vec3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
