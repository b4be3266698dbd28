package cloth

import (
	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/pkg/math"
)

// Simulation aggregates one simulated cloth mesh: its particles, the
// distance constraints between them, and the collision volumes it tests
// against. Topology is immutable after Build; only particle positions mutate.
type Simulation struct {
	mesh             *model.Mesh // externally owned render mesh
	particles        []Particle
	constraints      []Constraint
	collisionObjects []*CollisionObject

	// gravity is constant in production; tests zero it to isolate the
	// constraint passes.
	gravity math.Vec3
}

func defaultGravity() math.Vec3 {
	return math.Vec3{Y: gravityY}
}

// Mesh returns the render mesh this simulation writes to.
func (s *Simulation) Mesh() *model.Mesh {
	return s.mesh
}

// Particles exposes the particle list for inspection. Callers must not
// change its topology.
func (s *Simulation) Particles() []Particle {
	return s.particles
}

// Constraints exposes the constraint list for inspection.
func (s *Simulation) Constraints() []Constraint {
	return s.constraints
}

// Step advances the simulation one frame: integrate, relax constraints,
// resolve collisions, then write the result back into the render mesh. wind
// is the current frame's wind acceleration in world space.
func (s *Simulation) Step(dt float32, wind math.Vec3) {
	s.integrate(dt, wind)
	s.relax()
	s.collide()
	s.sync()
}

// integrate advances non-fixed particles with position-based Verlet
// integration and recomputes bone-driven particles from their bone's current
// world transform.
func (s *Simulation) integrate(dt float32, wind math.Vec3) {
	// Clamp the timestep so a frame hitch does not inject a huge step and
	// blow up the constraint solver.
	if dt > MaxTimestep {
		dt = MaxTimestep
	}
	dt2 := dt * dt

	for i := range s.particles {
		p := &s.particles[i]
		if p.Fixed {
			if p.Bone != nil {
				// Bone-driven: position is authoritative from the skeleton.
				// PrevPosition follows along so unpinning does not inject a
				// spurious velocity.
				pos := p.Bone.World().TransformPoint(p.BoneOffset)
				p.Position = pos
				p.PrevPosition = pos
			}
			continue
		}

		accel := s.gravity.Add(wind).Scale(1.0 / p.Mass)
		old := p.Position
		next := old.Scale(2).Sub(p.PrevPosition).Add(accel.Scale(dt2))
		p.Position = old.Lerp(next, damping)
		p.PrevPosition = old
	}
}

// relax runs one Gauss-Seidel pass over all constraints, correcting particle
// pairs toward their rest distance. A single pass per frame is a deliberate
// quality/performance trade-off; cloth stays visually plausible but is not
// perfectly inextensible under fast motion.
func (s *Simulation) relax() {
	for _, c := range s.constraints {
		pa := &s.particles[c.A]
		pb := &s.particles[c.B]
		if pa.Fixed && pb.Fixed {
			continue
		}

		delta := pb.Position.Sub(pa.Position)
		length := delta.Length()
		if length < minConstraintLength {
			// Degenerate pair: no direction to correct along.
			continue
		}

		diff := (length - c.RestLength) / length
		correction := delta.Scale(diff * c.Stiffness * 0.5)

		switch {
		case !pa.Fixed && !pb.Fixed:
			pa.Position = pa.Position.Add(correction)
			pb.Position = pb.Position.Sub(correction)
		case pb.Fixed:
			// The movable endpoint absorbs the full correction.
			pa.Position = pa.Position.Add(correction.Scale(2))
		default:
			pb.Position = pb.Position.Sub(correction.Scale(2))
		}
	}
}

// collide pushes non-fixed particles out of every collision volume. Volumes
// are refreshed from their node's current world transform first, since
// collision objects may themselves be animated. Resolution is object-major:
// a particle inside several volumes receives sequential corrections.
func (s *Simulation) collide() {
	for _, co := range s.collisionObjects {
		co.update()
		for i := range s.particles {
			p := &s.particles[i]
			if p.Fixed {
				continue
			}
			if pos, hit := co.resolve(p.Position); hit {
				p.Position = pos
			}
		}
	}
}

// sync writes the solved world-space positions back into the render mesh in
// its local space and recomputes normals from the deformed triangles.
func (s *Simulation) sync() {
	inv := s.mesh.Transform.Inverse()
	for i := range s.particles {
		s.mesh.Vertices[i].Position = inv.TransformPoint(s.particles[i].Position)
	}
	s.mesh.MarkNormalsDirty()
	s.mesh.RecomputeNormals()
}

// reset restores every particle to its rest pose, clears velocity state, and
// pushes the rest pose back into the render mesh.
func (s *Simulation) reset() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Position = p.OrigPosition
		p.PrevPosition = p.OrigPosition
		p.Velocity = math.Vec3{}
	}
	s.sync()
}
