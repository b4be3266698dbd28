package cloth

import (
	"go.uber.org/zap"

	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/internal/engine/scene"
	"github.com/meshview/meshview/internal/logger"
)

// Build converts a flagged mesh into a Simulation. It runs once per mesh, at
// activation time. A mesh without usable geometry yields nil: the mesh simply
// does not simulate, which is the expected outcome for malformed imports.
func Build(mesh *model.Mesh, sc *scene.Scene) *Simulation {
	if mesh == nil || len(mesh.Vertices) == 0 {
		if mesh != nil {
			logger.Debug("cloth: mesh has no vertices, skipping", zap.String("mesh", mesh.Name))
		}
		return nil
	}

	sim := &Simulation{
		mesh:    mesh,
		gravity: defaultGravity(),
	}

	// One particle per vertex, placed at the vertex's world-space position.
	// Rest pose is captured here; constraint rest lengths are measured from
	// these positions rather than trusted from metadata.
	world := mesh.Transform
	sim.particles = make([]Particle, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		pos := world.TransformPoint(v.Position)
		sim.particles[i] = Particle{
			Position:     pos,
			PrevPosition: pos,
			OrigPosition: pos,
			Mass:         1.0,
		}
	}

	md := mesh.Cloth
	if md != nil {
		buildFixedPoints(sim, md, sc, mesh.Name)
		buildConstraintGroup(sim, md.Stretch, Stretch)
		buildConstraintGroup(sim, md.Cross, Cross)
		buildConstraintGroup(sim, md.Bend, Bend)
	}

	if len(sim.constraints) == 0 {
		// No constraint metadata at all: synthesize stretch constraints from
		// the triangle index buffer so the mesh is never left unconstrained.
		n := buildFallbackConstraints(sim, mesh.Indices)
		logger.Warn("cloth: no constraint metadata, using triangle edges",
			zap.String("mesh", mesh.Name),
			zap.Int("constraints", n),
		)
	}

	buildCollisionObjects(sim, md, sc, mesh.Name)

	logger.Info("cloth: simulation built",
		zap.String("mesh", mesh.Name),
		zap.Int("particles", len(sim.particles)),
		zap.Int("constraints", len(sim.constraints)),
		zap.Int("colliders", len(sim.collisionObjects)),
	)
	return sim
}

// buildFixedPoints resolves pinned vertices and bone attachments. Direct
// indices pin unconditionally; bone anchors additionally record the bone and
// the rest position in the bone's local space, so the particle can track the
// bone rigidly.
func buildFixedPoints(sim *Simulation, md *model.ClothData, sc *scene.Scene, meshName string) {
	for _, idx := range md.FixedIndices {
		if idx < 0 || idx >= len(sim.particles) {
			continue
		}
		sim.particles[idx].Fixed = true
	}

	for _, anchor := range md.BoneAnchors {
		if anchor.Vertex < 0 || anchor.Vertex >= len(sim.particles) {
			continue
		}
		bone := sc.FindNode(anchor.Bone)
		if bone == nil {
			// Unmatched bone names are omitted, not errors.
			logger.Debug("cloth: bone not found, anchor ignored",
				zap.String("mesh", meshName),
				zap.String("bone", anchor.Bone),
			)
			continue
		}
		p := &sim.particles[anchor.Vertex]
		p.Fixed = true
		p.Bone = bone
		p.BoneOffset = bone.World().Inverse().TransformPoint(p.Position)
	}
}

// buildConstraintGroup adds one constraint per declared index pair, with the
// rest length measured from the built particle positions.
func buildConstraintGroup(sim *Simulation, pairs [][2]int, typ ConstraintType) {
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if a < 0 || b < 0 || a >= len(sim.particles) || b >= len(sim.particles) || a == b {
			continue
		}
		sim.constraints = append(sim.constraints, Constraint{
			A:          a,
			B:          b,
			RestLength: sim.particles[a].Position.Distance(sim.particles[b].Position),
			Stiffness:  typ.DefaultStiffness(),
			Type:       typ,
		})
	}
}

// buildFallbackConstraints turns every triangle edge into a stretch
// constraint, deduplicating edges shared between triangles. Returns the
// number of constraints added.
func buildFallbackConstraints(sim *Simulation, indices []uint32) int {
	seen := make(map[[2]int]bool)
	added := 0

	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		key := [2]int{a, b}
		if seen[key] {
			return
		}
		seen[key] = true
		sim.constraints = append(sim.constraints, Constraint{
			A:          a,
			B:          b,
			RestLength: sim.particles[a].Position.Distance(sim.particles[b].Position),
			Stiffness:  Stretch.DefaultStiffness(),
			Type:       Stretch,
		})
		added++
	}

	n := len(sim.particles)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if a >= n || b >= n || c >= n {
			continue
		}
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
	}
	return added
}

// buildCollisionObjects resolves declared collider references against the
// scene's collision registry. Meshes that declare none fall back to the full
// global set.
func buildCollisionObjects(sim *Simulation, md *model.ClothData, sc *scene.Scene, meshName string) {
	if md != nil && len(md.Colliders) > 0 {
		for _, ref := range md.Colliders {
			node := sc.FindNode(ref.Name)
			if node == nil {
				logger.Debug("cloth: collision object not found, ignored",
					zap.String("mesh", meshName),
					zap.String("collider", ref.Name),
				)
				continue
			}
			sim.collisionObjects = append(sim.collisionObjects,
				NewCollisionObject(node, ShapeFromTag(ref.Shape)))
		}
		return
	}

	for _, node := range sc.CollisionNodes() {
		sim.collisionObjects = append(sim.collisionObjects,
			NewCollisionObject(node, ShapeForNode(node)))
	}
}
