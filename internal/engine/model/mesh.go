// Package model provides mesh geometry shared by the renderer and the cloth
// solver: vertex buffers, triangle indices, world transforms, and normal
// recomputation.
package model

import (
	"github.com/meshview/meshview/pkg/math"
)

// Vertex is a single mesh vertex. The field order matches the interleaved
// layout uploaded to the GPU (position, normal, texcoord).
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Bounds is an axis-aligned bounding box in the mesh's local space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// HalfExtents returns half the size of the box along each axis.
func (b Bounds) HalfExtents() math.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Mesh holds renderable geometry. The vertex buffer is written back every
// frame by the cloth solver for simulated meshes.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// Transform is the mesh's current world transform. The scene refreshes
	// it during UpdateWorldTransforms, before the physics step runs.
	Transform math.Mat4

	// Cloth carries the format-supplied simulation metadata. A non-nil value
	// flags the mesh as simulated fabric.
	Cloth *ClothData

	// Bounds is the local-space bounding box at load time.
	Bounds Bounds

	normalsDirty bool
}

// NewMesh creates a mesh with an identity transform and computed bounds.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:      name,
		Vertices:  vertices,
		Indices:   indices,
		Transform: math.Identity(),
	}
	m.ComputeBounds()
	return m
}

// ComputeBounds recomputes the local-space bounding box from the vertex buffer.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		p := v.Position
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.Z < b.Min.Z {
			b.Min.Z = p.Z
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
		if p.Z > b.Max.Z {
			b.Max.Z = p.Z
		}
	}
	m.Bounds = b
}

// MarkNormalsDirty flags the normals for recomputation on the next
// RecomputeNormals call.
func (m *Mesh) MarkNormalsDirty() {
	m.normalsDirty = true
}

// NormalsDirty reports whether the normals need recomputation.
func (m *Mesh) NormalsDirty() bool {
	return m.normalsDirty
}

// RecomputeNormals rebuilds per-vertex normals from the current triangle
// winding. Each vertex accumulates the face normals of the triangles that
// reference it, then normalizes. Degenerate triangles contribute nothing.
func (m *Mesh) RecomputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := uint32(len(m.Vertices))
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		p0 := m.Vertices[i0].Position
		e1 := m.Vertices[i1].Position.Sub(p0)
		e2 := m.Vertices[i2].Position.Sub(p0)
		face := e1.Cross(e2)
		if face.Length() < 1e-6 {
			continue
		}
		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(face)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(face)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(face)
	}

	for i := range m.Vertices {
		nrm := m.Vertices[i].Normal
		if nrm.Length() < 1e-6 {
			m.Vertices[i].Normal = math.Vec3{Y: 1}
			continue
		}
		m.Vertices[i].Normal = nrm.Normalize()
	}

	m.normalsDirty = false
}
