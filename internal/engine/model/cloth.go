package model

// Cloth metadata as delivered by the model format loader. The solver treats
// all of it as optional: missing pieces degrade to fallback behavior rather
// than failing the mesh.

// BoneAnchor pins a vertex to a named skeleton bone.
type BoneAnchor struct {
	Bone   string
	Vertex int
}

// Collider shape tags used by cloth metadata.
const (
	ColliderSphere   = "sphere"
	ColliderBox      = "box"
	ColliderCylinder = "cylinder"
)

// ColliderRef names a scene collision object relevant to a cloth mesh.
// Shape is one of the collider shape tags; cylinders are resolved with the
// oriented-box test.
type ColliderRef struct {
	Name  string
	Shape string
}

// ClothData is the per-mesh cloth metadata block. Index pairs reference the
// mesh's vertex buffer; rest lengths are measured from the imported geometry,
// not stored here.
type ClothData struct {
	// FixedIndices are vertices pinned in place unconditionally.
	FixedIndices []int

	// BoneAnchors are vertices that follow a named bone rigidly.
	BoneAnchors []BoneAnchor

	// Constraint index pairs by group.
	Stretch [][2]int
	Cross   [][2]int
	Bend    [][2]int

	// Colliders restricts collision testing to the named objects. Empty
	// means the mesh collides with every registered collision object.
	Colliders []ColliderRef
}
