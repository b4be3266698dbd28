// Package scene provides the scene graph: named transform nodes arranged in
// a hierarchy, with case-insensitive lookup and a registry of collision
// objects. The cloth solver reads bone and collision-object transforms from
// here every frame; UpdateWorldTransforms must run before the physics step.
package scene

import (
	"strings"

	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/pkg/math"
)

// CollisionPrefix marks scene nodes that act as rigid collision objects for
// cloth. The convention comes from the model format: objects named
// "col_sphere_*" collide as spheres, any other "col_*" object as an
// oriented box.
const CollisionPrefix = "col_"

// Scene owns all nodes and provides name lookup.
type Scene struct {
	root   *Node
	byName map[string]*Node
}

// New creates a scene with an empty root node.
func New() *Scene {
	s := &Scene{
		byName: make(map[string]*Node),
	}
	s.root = &Node{
		Name:     "root",
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		world:    math.Identity(),
	}
	s.byName["root"] = s.root
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// NewNode creates a node, attaches it to parent (the root if parent is nil),
// and registers it for name lookup.
func (s *Scene) NewNode(name string, parent *Node) *Node {
	if parent == nil {
		parent = s.root
	}
	n := &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		world:    math.Identity(),
		parent:   parent,
	}
	parent.children = append(parent.children, n)
	s.byName[strings.ToLower(name)] = n
	return n
}

// FindNode returns the node with the given name, matched case-insensitively,
// or nil if no such node exists.
func (s *Scene) FindNode(name string) *Node {
	return s.byName[strings.ToLower(name)]
}

// CollisionNodes returns every node whose name carries the reserved
// collision prefix.
func (s *Scene) CollisionNodes() []*Node {
	var nodes []*Node
	s.root.walk(func(n *Node) {
		if strings.HasPrefix(strings.ToLower(n.Name), CollisionPrefix) {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Meshes returns every mesh attached to a scene node, in traversal order.
func (s *Scene) Meshes() []*model.Mesh {
	var meshes []*model.Mesh
	s.root.walk(func(n *Node) {
		if n.Mesh != nil {
			meshes = append(meshes, n.Mesh)
		}
	})
	return meshes
}

// UpdateWorldTransforms recomputes world matrices for the whole hierarchy
// and pushes them into attached meshes. The host calls this once per frame,
// after animation and before physics.
func (s *Scene) UpdateWorldTransforms() {
	s.root.updateWorld(math.Identity())
}
