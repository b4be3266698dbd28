// Package demo builds the built-in demonstration scene: a cloth banner
// hanging from an animated mast bone, with a drifting collision sphere and a
// static collision box underneath. It stands in for the model-format loader,
// producing the same structures a real import would.
package demo

import (
	gomath "math"

	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/internal/engine/scene"
	"github.com/meshview/meshview/pkg/math"
)

// Banner grid resolution.
const (
	bannerCols = 12
	bannerRows = 9
	bannerSize = float32(3.0) // world units across
)

// NewScene builds the demo scene graph with the banner, its mast bone, and
// two collision proxies.
func NewScene() *scene.Scene {
	sc := scene.New()

	mast := sc.NewNode("Bone_Mast", nil)
	mast.Translation = math.Vec3{Y: 4}

	banner := sc.NewNode("banner", nil)
	banner.AttachMesh(bannerMesh())

	ball := sc.NewNode("col_sphere_ball", nil)
	ball.Translation = math.Vec3{X: 1.5, Y: 2.2}
	ball.AttachMesh(sphereMesh("ball", 0.6, 16, 12))

	plinth := sc.NewNode("col_box_plinth", nil)
	plinth.Translation = math.Vec3{Y: 0.4}
	plinth.AttachMesh(boxMesh("plinth", math.Vec3{X: 1.2, Y: 0.4, Z: 1.2}))

	sc.UpdateWorldTransforms()
	return sc
}

// Animate sways the mast and orbits the collision sphere. t is elapsed time
// in seconds; the host calls this before UpdateWorldTransforms each frame.
func Animate(sc *scene.Scene, t float64) {
	if mast := sc.FindNode("Bone_Mast"); mast != nil {
		angle := 0.35 * float32(gomath.Sin(t*0.8))
		mast.Rotation = math.QuatFromAxisAngle(math.Vec3{Z: 1}, angle)
	}
	if ball := sc.FindNode("col_sphere_ball"); ball != nil {
		ball.Translation = math.Vec3{
			X: 1.5 * float32(gomath.Cos(t*0.5)),
			Y: 2.2,
			Z: 1.5 * float32(gomath.Sin(t*0.5)),
		}
	}
}

// bannerMesh builds the cloth sheet hanging below the mast, with full cloth
// metadata: the top row is anchored to the mast bone, neighbor pairs form
// stretch constraints, diagonals cross, skip-one pairs bend.
func bannerMesh() *model.Mesh {
	step := bannerSize / float32(bannerCols-1)
	var vertices []model.Vertex
	for row := 0; row < bannerRows; row++ {
		for col := 0; col < bannerCols; col++ {
			vertices = append(vertices, model.Vertex{
				Position: math.Vec3{
					X: -bannerSize/2 + float32(col)*step,
					Y: 4 - float32(row)*step,
				},
				TexCoord: math.Vec2{
					X: float32(col) / float32(bannerCols-1),
					Y: float32(row) / float32(bannerRows-1),
				},
			})
		}
	}

	idx := func(row, col int) int { return row*bannerCols + col }

	var indices []uint32
	for row := 0; row < bannerRows-1; row++ {
		for col := 0; col < bannerCols-1; col++ {
			a := uint32(idx(row, col))
			b := uint32(idx(row, col+1))
			c := uint32(idx(row+1, col+1))
			d := uint32(idx(row+1, col))
			indices = append(indices, a, c, b, a, d, c)
		}
	}

	md := &model.ClothData{}
	for col := 0; col < bannerCols; col++ {
		md.BoneAnchors = append(md.BoneAnchors, model.BoneAnchor{
			Bone:   "Bone_Mast",
			Vertex: idx(0, col),
		})
	}
	for row := 0; row < bannerRows; row++ {
		for col := 0; col < bannerCols; col++ {
			if col+1 < bannerCols {
				md.Stretch = append(md.Stretch, [2]int{idx(row, col), idx(row, col+1)})
			}
			if row+1 < bannerRows {
				md.Stretch = append(md.Stretch, [2]int{idx(row, col), idx(row+1, col)})
			}
			if col+1 < bannerCols && row+1 < bannerRows {
				md.Cross = append(md.Cross, [2]int{idx(row, col), idx(row+1, col+1)})
				md.Cross = append(md.Cross, [2]int{idx(row, col+1), idx(row+1, col)})
			}
			if col+2 < bannerCols {
				md.Bend = append(md.Bend, [2]int{idx(row, col), idx(row, col+2)})
			}
			if row+2 < bannerRows {
				md.Bend = append(md.Bend, [2]int{idx(row, col), idx(row+2, col)})
			}
		}
	}
	md.Colliders = []model.ColliderRef{
		{Name: "col_sphere_ball", Shape: model.ColliderSphere},
		{Name: "col_box_plinth", Shape: model.ColliderBox},
	}

	mesh := model.NewMesh("banner", vertices, indices)
	mesh.Cloth = md
	return mesh
}

// sphereMesh builds a UV sphere for rendering; its bounds size the collider.
func sphereMesh(name string, radius float32, segments, rings int) *model.Mesh {
	var vertices []model.Vertex
	for ring := 0; ring <= rings; ring++ {
		phi := gomath.Pi * float64(ring) / float64(rings)
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * gomath.Pi * float64(seg) / float64(segments)
			n := math.Vec3{
				X: float32(gomath.Sin(phi) * gomath.Cos(theta)),
				Y: float32(gomath.Cos(phi)),
				Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			vertices = append(vertices, model.Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				TexCoord: math.Vec2{
					X: float32(seg) / float32(segments),
					Y: float32(ring) / float32(rings),
				},
			})
		}
	}

	var indices []uint32
	stride := segments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring*stride + seg)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			indices = append(indices, a, b, c, b, d, c)
		}
	}

	return model.NewMesh(name, vertices, indices)
}

// boxMesh builds an axis-aligned box of the given half extents, one quad per
// face with flat normals.
func boxMesh(name string, half math.Vec3) *model.Mesh {
	faces := []struct {
		normal, u, v math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
	}

	scale := func(v math.Vec3) math.Vec3 {
		return math.Vec3{X: v.X * half.X, Y: v.Y * half.Y, Z: v.Z * half.Z}
	}

	var vertices []model.Vertex
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(vertices))
		corners := []math.Vec3{
			f.normal.Sub(f.u).Sub(f.v),
			f.normal.Add(f.u).Sub(f.v),
			f.normal.Add(f.u).Add(f.v),
			f.normal.Sub(f.u).Add(f.v),
		}
		uvs := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
		for i, c := range corners {
			vertices = append(vertices, model.Vertex{
				Position: scale(c),
				Normal:   f.normal,
				TexCoord: uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return model.NewMesh(name, vertices, indices)
}
