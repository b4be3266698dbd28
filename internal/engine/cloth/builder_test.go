package cloth

import (
	"testing"

	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/internal/engine/scene"
	"github.com/meshview/meshview/pkg/math"
)

// triangleMesh returns a flagged single-triangle cloth mesh with no
// constraint metadata.
func triangleMesh() *model.Mesh {
	m := model.NewMesh("tri", []model.Vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 2, Z: 0}},
	}, []uint32{0, 1, 2})
	m.Cloth = &model.ClothData{}
	return m
}

func TestBuildParticlesInWorldSpace(t *testing.T) {
	sc := scene.New()
	mesh := triangleMesh()
	node := sc.NewNode("flag", nil)
	node.Translation = math.Vec3{X: 5, Y: 10}
	node.AttachMesh(mesh)
	sc.UpdateWorldTransforms()

	sim := Build(mesh, sc)
	if sim == nil {
		t.Fatal("expected simulation")
	}
	if len(sim.Particles()) != 3 {
		t.Fatalf("expected 3 particles, got %d", len(sim.Particles()))
	}

	p := sim.Particles()[1]
	want := math.Vec3{X: 6, Y: 10}
	if p.Position.Sub(want).Length() > 1e-5 {
		t.Errorf("particle 1 position = %v, want %v", p.Position, want)
	}
	if p.Position != p.PrevPosition || p.Position != p.OrigPosition {
		t.Error("position, previous, and rest pose must coincide at build time")
	}
	if p.Mass != 1.0 {
		t.Errorf("particle mass = %v, want 1.0", p.Mass)
	}
}

func TestBuildFallbackConstraints(t *testing.T) {
	sc := scene.New()
	mesh := triangleMesh()
	sc.NewNode("flag", nil).AttachMesh(mesh)
	sc.UpdateWorldTransforms()

	sim := Build(mesh, sc)
	if sim == nil {
		t.Fatal("expected simulation")
	}

	cons := sim.Constraints()
	if len(cons) != 3 {
		t.Fatalf("expected exactly 3 fallback constraints, got %d", len(cons))
	}

	wantRest := map[[2]int]float32{
		{0, 1}: 1,
		{1, 2}: math.Vec3{X: 1, Y: 0, Z: 0}.Distance(math.Vec3{X: 0, Y: 2, Z: 0}),
		{0, 2}: 2,
	}
	for _, c := range cons {
		a, b := c.A, c.B
		if a > b {
			a, b = b, a
		}
		rest, ok := wantRest[[2]int{a, b}]
		if !ok {
			t.Errorf("unexpected constraint pair (%d,%d)", c.A, c.B)
			continue
		}
		delete(wantRest, [2]int{a, b})
		if absf(c.RestLength-rest) > 1e-5 {
			t.Errorf("constraint (%d,%d) rest length = %v, want %v", c.A, c.B, c.RestLength, rest)
		}
		if c.Type != Stretch {
			t.Errorf("fallback constraint type = %v, want stretch", c.Type)
		}
	}
	if len(wantRest) != 0 {
		t.Errorf("missing constraint pairs: %v", wantRest)
	}
}

func TestBuildFallbackDeduplicatesSharedEdges(t *testing.T) {
	sc := scene.New()
	mesh := model.NewMesh("quad", []model.Vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 1, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 1, Y: 1, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 1, Z: 0}},
	}, []uint32{0, 1, 2, 0, 2, 3})
	mesh.Cloth = &model.ClothData{}
	sc.NewNode("quad", nil).AttachMesh(mesh)
	sc.UpdateWorldTransforms()

	sim := Build(mesh, sc)
	// 4 outer edges plus one shared diagonal.
	if got := len(sim.Constraints()); got != 5 {
		t.Errorf("expected 5 deduplicated constraints, got %d", got)
	}
}

func TestBuildConstraintGroupsFromMetadata(t *testing.T) {
	sc := scene.New()
	mesh := triangleMesh()
	mesh.Cloth = &model.ClothData{
		Stretch: [][2]int{{0, 1}},
		Cross:   [][2]int{{1, 2}},
		Bend:    [][2]int{{0, 2}, {0, 0}, {5, 1}}, // degenerate and out-of-range pairs dropped
	}
	sc.NewNode("flag", nil).AttachMesh(mesh)
	sc.UpdateWorldTransforms()

	sim := Build(mesh, sc)
	cons := sim.Constraints()
	if len(cons) != 3 {
		t.Fatalf("expected 3 constraints from metadata, got %d", len(cons))
	}
	if cons[0].Type != Stretch || cons[1].Type != Cross || cons[2].Type != Bend {
		t.Errorf("constraint types = %v,%v,%v, want stretch,cross,bend", cons[0].Type, cons[1].Type, cons[2].Type)
	}
	if cons[1].Stiffness != Cross.DefaultStiffness() {
		t.Errorf("cross stiffness = %v, want %v", cons[1].Stiffness, Cross.DefaultStiffness())
	}
}

func TestBuildFixedAndBoneAnchors(t *testing.T) {
	sc := scene.New()
	bone := sc.NewNode("Bone_Mast", nil)
	bone.Translation = math.Vec3{X: 1, Y: 3}

	mesh := triangleMesh()
	mesh.Cloth = &model.ClothData{
		FixedIndices: []int{0, 99}, // out-of-range index ignored
		BoneAnchors: []model.BoneAnchor{
			{Bone: "bone_mast", Vertex: 1}, // case-insensitive match
			{Bone: "no_such_bone", Vertex: 2},
		},
	}
	sc.NewNode("flag", nil).AttachMesh(mesh)
	sc.UpdateWorldTransforms()

	sim := Build(mesh, sc)
	ps := sim.Particles()

	if !ps[0].Fixed || ps[0].Bone != nil {
		t.Error("particle 0 should be pinned without a bone")
	}
	if !ps[1].Fixed || ps[1].Bone == nil {
		t.Error("particle 1 should be bone-attached")
	}
	if ps[2].Fixed {
		t.Error("unmatched bone anchor should leave particle 2 free")
	}

	// BoneOffset round trip: bone world transform applied to the offset
	// must reproduce the rest position.
	got := ps[1].Bone.World().TransformPoint(ps[1].BoneOffset)
	if got.Sub(ps[1].OrigPosition).Length() > 1e-4 {
		t.Errorf("bone offset round trip = %v, want %v", got, ps[1].OrigPosition)
	}
}

func TestBuildSkipsEmptyMesh(t *testing.T) {
	sc := scene.New()
	mesh := model.NewMesh("empty", nil, nil)
	mesh.Cloth = &model.ClothData{}

	if sim := Build(mesh, sc); sim != nil {
		t.Error("mesh without vertices should not simulate")
	}
	if sim := Build(nil, sc); sim != nil {
		t.Error("nil mesh should not simulate")
	}
}

func TestBuildCollisionObjects(t *testing.T) {
	sc := scene.New()
	sc.NewNode("col_sphere_head", nil)
	sc.NewNode("col_box_torso", nil)

	// Declared references restrict the set and carry explicit shapes.
	mesh := triangleMesh()
	mesh.Cloth.Colliders = []model.ColliderRef{
		{Name: "COL_SPHERE_HEAD", Shape: model.ColliderSphere},
		{Name: "ghost", Shape: model.ColliderBox}, // unmatched, ignored
	}
	sc.NewNode("flag", nil).AttachMesh(mesh)
	sc.UpdateWorldTransforms()

	sim := Build(mesh, sc)
	if len(sim.collisionObjects) != 1 {
		t.Fatalf("expected 1 collision object, got %d", len(sim.collisionObjects))
	}
	if sim.collisionObjects[0].Shape != ShapeSphere {
		t.Error("declared sphere reference should collide as a sphere")
	}

	// Without declared references the mesh collides with the full registry.
	mesh2 := triangleMesh()
	sc.NewNode("flag2", nil).AttachMesh(mesh2)
	sc.UpdateWorldTransforms()

	sim2 := Build(mesh2, sc)
	if len(sim2.collisionObjects) != 2 {
		t.Fatalf("expected global collider fallback of 2, got %d", len(sim2.collisionObjects))
	}
}

func TestShapeFromTag(t *testing.T) {
	if ShapeFromTag(model.ColliderSphere) != ShapeSphere {
		t.Error("sphere tag should map to ShapeSphere")
	}
	if ShapeFromTag(model.ColliderBox) != ShapeBox {
		t.Error("box tag should map to ShapeBox")
	}
	// Cylinders resolve with the oriented-box test.
	if ShapeFromTag(model.ColliderCylinder) != ShapeBox {
		t.Error("cylinder tag should map to ShapeBox")
	}
}
