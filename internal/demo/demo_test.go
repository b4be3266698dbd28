package demo

import (
	"testing"

	"github.com/meshview/meshview/pkg/math"
)

func TestNewSceneNodes(t *testing.T) {
	sc := NewScene()

	for _, name := range []string{"Bone_Mast", "banner", "col_sphere_ball", "col_box_plinth"} {
		if sc.FindNode(name) == nil {
			t.Errorf("scene missing node %q", name)
		}
	}
	if got := len(sc.CollisionNodes()); got != 2 {
		t.Errorf("expected 2 collision nodes, got %d", got)
	}
	if got := len(sc.Meshes()); got != 3 {
		t.Errorf("expected 3 meshes, got %d", got)
	}
}

func TestBannerMetadataComplete(t *testing.T) {
	sc := NewScene()
	banner := sc.FindNode("banner").Mesh
	md := banner.Cloth
	if md == nil {
		t.Fatal("banner must carry cloth metadata")
	}

	if len(md.BoneAnchors) != bannerCols {
		t.Errorf("expected %d bone anchors, got %d", bannerCols, len(md.BoneAnchors))
	}
	wantStretch := bannerRows*(bannerCols-1) + bannerCols*(bannerRows-1)
	if len(md.Stretch) != wantStretch {
		t.Errorf("expected %d stretch pairs, got %d", wantStretch, len(md.Stretch))
	}
	if len(md.Cross) == 0 || len(md.Bend) == 0 {
		t.Error("banner should declare cross and bend constraint groups")
	}
	if len(md.Colliders) != 2 {
		t.Errorf("expected 2 collider references, got %d", len(md.Colliders))
	}

	n := len(banner.Vertices)
	for _, pair := range md.Stretch {
		if pair[0] < 0 || pair[0] >= n || pair[1] < 0 || pair[1] >= n {
			t.Fatalf("stretch pair %v out of vertex range", pair)
		}
	}
}

func TestAnimateMovesBall(t *testing.T) {
	sc := NewScene()
	ball := sc.FindNode("col_sphere_ball")
	before := ball.Translation

	Animate(sc, 2.0)
	if ball.Translation == before {
		t.Error("Animate should move the collision sphere")
	}
	if sc.FindNode("Bone_Mast").Rotation == math.QuatIdentity() {
		t.Error("Animate should sway the mast")
	}
}
