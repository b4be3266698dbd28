package scene

import (
	"testing"

	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/pkg/math"
)

func TestFindNodeCaseInsensitive(t *testing.T) {
	s := New()
	s.NewNode("Bone_Spine01", nil)

	if s.FindNode("bone_spine01") == nil {
		t.Error("lowercase lookup should match")
	}
	if s.FindNode("BONE_SPINE01") == nil {
		t.Error("uppercase lookup should match")
	}
	if s.FindNode("missing") != nil {
		t.Error("unknown name should return nil")
	}
}

func TestUpdateWorldTransformsHierarchy(t *testing.T) {
	s := New()
	parent := s.NewNode("parent", nil)
	parent.Translation = math.Vec3{X: 10}
	child := s.NewNode("child", parent)
	child.Translation = math.Vec3{Y: 5}

	s.UpdateWorldTransforms()

	got := child.World().TransformPoint(math.Vec3{})
	want := math.Vec3{X: 10, Y: 5}
	if got.Sub(want).Length() > 1e-5 {
		t.Errorf("child world origin = %v, want %v", got, want)
	}
}

func TestUpdateWorldTransformsRotationPropagates(t *testing.T) {
	s := New()
	parent := s.NewNode("pivot", nil)
	parent.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, 3.14159265/2)
	child := s.NewNode("tip", parent)
	child.Translation = math.Vec3{X: 1}

	s.UpdateWorldTransforms()

	got := child.World().TransformPoint(math.Vec3{})
	want := math.Vec3{Z: -1}
	if got.Sub(want).Length() > 1e-4 {
		t.Errorf("rotated child origin = %v, want %v", got, want)
	}
}

func TestMeshTransformPushedOnUpdate(t *testing.T) {
	s := New()
	n := s.NewNode("flag", nil)
	n.Translation = math.Vec3{X: 2, Y: 3, Z: 4}

	mesh := model.NewMesh("flag", []model.Vertex{{Position: math.Vec3{}}}, nil)
	n.AttachMesh(mesh)

	s.UpdateWorldTransforms()

	got := mesh.Transform.TransformPoint(math.Vec3{})
	want := math.Vec3{X: 2, Y: 3, Z: 4}
	if got.Sub(want).Length() > 1e-5 {
		t.Errorf("mesh world origin = %v, want %v", got, want)
	}
}

func TestCollisionNodes(t *testing.T) {
	s := New()
	s.NewNode("Bone_Head", nil)
	s.NewNode("col_sphere_head", nil)
	s.NewNode("COL_box_torso", nil)
	s.NewNode("column", nil) // begins with "col" but not "col_"

	nodes := s.CollisionNodes()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 collision nodes, got %d", len(nodes))
	}
}

func TestAttachMeshAdoptsBounds(t *testing.T) {
	s := New()
	n := s.NewNode("col_box_crate", nil)
	mesh := model.NewMesh("crate", []model.Vertex{
		{Position: math.Vec3{X: -1, Y: -2, Z: -3}},
		{Position: math.Vec3{X: 1, Y: 2, Z: 3}},
	}, nil)
	n.AttachMesh(mesh)

	if n.Bounds.HalfExtents() != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("node bounds half extents = %v, want {1,2,3}", n.Bounds.HalfExtents())
	}
}
