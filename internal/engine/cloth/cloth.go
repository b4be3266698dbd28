// Package cloth implements the real-time cloth solver: meshes flagged as
// fabric by model metadata are rebuilt as particle/constraint systems and
// advanced every frame with Verlet integration, single-pass distance
// constraint relaxation, and push-out collision against rigid scene proxies.
package cloth

import (
	"github.com/meshview/meshview/internal/engine/scene"
	"github.com/meshview/meshview/pkg/math"
)

// Solver tuning constants.
const (
	// MaxTimestep clamps the integration step so a frame hitch cannot blow
	// up the constraint solver.
	MaxTimestep = 0.016

	// damping is applied in position space each integration step; it stands
	// in for aerodynamic drag.
	damping = 0.95

	// gravityY is the constant downward acceleration.
	gravityY = -9.8

	// minConstraintLength guards the relaxation division against degenerate
	// particle pairs.
	minConstraintLength = 1e-6

	// collisionEpsilon keeps resolved particles slightly outside a volume so
	// they do not re-penetrate and jitter the next frame.
	collisionEpsilon = 1e-3
)

// ConstraintType selects the default stiffness tier of a constraint. It does
// not change the relaxation formula.
type ConstraintType int

const (
	Stretch ConstraintType = iota
	Cross
	Bend
)

// String returns the metadata tag for the constraint type.
func (t ConstraintType) String() string {
	switch t {
	case Stretch:
		return "stretch"
	case Cross:
		return "cross"
	case Bend:
		return "bend"
	}
	return "unknown"
}

// DefaultStiffness returns the convergence rate used for constraints of this
// type when metadata does not say otherwise.
func (t ConstraintType) DefaultStiffness() float32 {
	switch t {
	case Cross:
		return 0.8
	case Bend:
		return 0.5
	}
	return 0.9
}

// Particle is one simulated point, index-aligned with the cloth mesh's
// vertex buffer. All positions are in world space.
type Particle struct {
	Position     math.Vec3
	PrevPosition math.Vec3
	OrigPosition math.Vec3

	// Velocity is unused by the position-Verlet integrator but retained for
	// future force models; it is not kept consistent with position deltas.
	Velocity math.Vec3

	Mass float32

	// Fixed particles are authoritative from outside the solver: either
	// pinned outright or driven by a bone. The integrator and relaxer never
	// move them.
	Fixed bool

	// Bone, when non-nil, drives this particle's position every frame. The
	// node is owned by the scene; the solver only reads its transform.
	Bone *scene.Node

	// BoneOffset is the rest position expressed in the bone's local space at
	// build time.
	BoneOffset math.Vec3
}

// Constraint is a distance relationship between two particles, identified by
// index into the owning simulation's particle list.
type Constraint struct {
	A, B       int
	RestLength float32
	Stiffness  float32
	Type       ConstraintType
}
