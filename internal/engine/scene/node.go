package scene

import (
	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/pkg/math"
)

// Node is a named transform in the scene hierarchy. Bones and collision
// objects are plain nodes; the cloth solver holds non-owning references to
// them and only ever reads their world transforms.
type Node struct {
	Name string

	// Local transform, composed as translate * rotate * scale.
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3

	// Mesh is optional renderable geometry attached to this node.
	Mesh *model.Mesh

	// Bounds is the node's local-space bounding box, used to size collision
	// volumes. Zero bounds are treated as a unit cube by the solver.
	Bounds model.Bounds

	parent   *Node
	children []*Node
	world    math.Mat4
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix returns the node's local transform matrix.
func (n *Node) LocalMatrix() math.Mat4 {
	t := math.Translate(n.Translation.X, n.Translation.Y, n.Translation.Z)
	r := n.Rotation.ToMat4()
	sc := math.Scale(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul(r).Mul(sc)
}

// World returns the node's world transform as of the last
// UpdateWorldTransforms call.
func (n *Node) World() math.Mat4 {
	return n.world
}

// AttachMesh attaches a mesh and adopts its bounds for collision sizing.
func (n *Node) AttachMesh(m *model.Mesh) {
	n.Mesh = m
	n.Bounds = m.Bounds
}

func (n *Node) updateWorld(parentWorld math.Mat4) {
	n.world = parentWorld.Mul(n.LocalMatrix())
	if n.Mesh != nil {
		n.Mesh.Transform = n.world
	}
	for _, c := range n.children {
		c.updateWorld(n.world)
	}
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
