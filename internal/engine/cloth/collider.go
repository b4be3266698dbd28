package cloth

import (
	"strings"

	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/internal/engine/scene"
	"github.com/meshview/meshview/pkg/math"
)

// Shape tags the bounding volume kind of a collision object. Cylinder-tagged
// metadata maps to ShapeBox; there is no dedicated cylinder test.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeBox
)

// sphere is a world-space bounding sphere.
type sphere struct {
	center math.Vec3
	radius float32
}

// orientedBox tests points in the box's local frame. world maps local box
// coordinates back out, inv maps world points in; half holds the local half
// extents.
type orientedBox struct {
	world math.Mat4
	inv   math.Mat4
	half  math.Vec3
}

// CollisionObject wraps a rigid scene node as a cloth collision volume. The
// volume is owned by the simulation and recomputed every frame from the
// node's current world transform; the node itself is owned by the scene.
type CollisionObject struct {
	Node  *scene.Node
	Shape Shape

	sphere sphere
	box    orientedBox
}

// NewCollisionObject wraps a scene node with the given shape.
func NewCollisionObject(node *scene.Node, shape Shape) *CollisionObject {
	return &CollisionObject{Node: node, Shape: shape}
}

// ShapeFromTag maps a metadata shape tag to a Shape. Cylinders resolve as
// boxes.
func ShapeFromTag(tag string) Shape {
	if strings.EqualFold(tag, model.ColliderSphere) {
		return ShapeSphere
	}
	return ShapeBox
}

// ShapeForNode derives the collision shape for a registry node from its
// naming convention: "col_sphere_*" collides as a sphere, everything else as
// an oriented box.
func ShapeForNode(node *scene.Node) Shape {
	if strings.Contains(strings.ToLower(node.Name), "sphere") {
		return ShapeSphere
	}
	return ShapeBox
}

// update recomputes the bounding volume from the node's current world
// transform. Nodes may be animated or bone-attached, so this runs every
// frame before resolution.
func (co *CollisionObject) update() {
	bounds := co.Node.Bounds
	half := bounds.HalfExtents()
	if half == (math.Vec3{}) {
		// Unsized proxy node: treat as a unit cube.
		half = math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	}
	center := bounds.Center()

	world := co.Node.World().Mul(math.Translate(center.X, center.Y, center.Z))

	switch co.Shape {
	case ShapeSphere:
		axisScale := world.AxisScale()
		maxScale := axisScale.X
		if axisScale.Y > maxScale {
			maxScale = axisScale.Y
		}
		if axisScale.Z > maxScale {
			maxScale = axisScale.Z
		}
		maxHalf := half.X
		if half.Y > maxHalf {
			maxHalf = half.Y
		}
		if half.Z > maxHalf {
			maxHalf = half.Z
		}
		co.sphere = sphere{
			center: world.TransformPoint(math.Vec3{}),
			radius: maxHalf * maxScale,
		}
	case ShapeBox:
		co.box = orientedBox{
			world: world,
			inv:   world.Inverse(),
			half:  half,
		}
	}
}

// resolve pushes a penetrating point out of the volume. Returns the
// corrected position and whether a correction was applied.
func (co *CollisionObject) resolve(pos math.Vec3) (math.Vec3, bool) {
	switch co.Shape {
	case ShapeSphere:
		return co.sphere.resolve(pos)
	case ShapeBox:
		return co.box.resolve(pos)
	}
	return pos, false
}

// resolve projects a point inside the sphere radially onto its surface.
func (s sphere) resolve(pos math.Vec3) (math.Vec3, bool) {
	d := pos.Sub(s.center)
	dist := d.Length()
	if dist >= s.radius {
		return pos, false
	}
	if dist < minConstraintLength {
		// Point at the exact center: push straight up.
		d = math.Vec3{Y: 1}
	}
	return s.center.Add(d.Normalize().Scale(s.radius)), true
}

// resolve displaces a point inside the box along the axis of minimum
// penetration depth, plus an epsilon, in the box's local frame.
func (b orientedBox) resolve(pos math.Vec3) (math.Vec3, bool) {
	local := b.inv.TransformPoint(pos)

	dx := b.half.X - absf(local.X)
	dy := b.half.Y - absf(local.Y)
	dz := b.half.Z - absf(local.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return pos, false
	}

	switch {
	case dx <= dy && dx <= dz:
		local.X = signf(local.X) * (b.half.X + collisionEpsilon)
	case dy <= dz:
		local.Y = signf(local.Y) * (b.half.Y + collisionEpsilon)
	default:
		local.Z = signf(local.Z) * (b.half.Z + collisionEpsilon)
	}

	return b.world.TransformPoint(local), true
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func signf(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
