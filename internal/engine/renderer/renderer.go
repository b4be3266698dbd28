// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/internal/engine/shader"
	"github.com/meshview/meshview/internal/logger"
	"github.com/meshview/meshview/pkg/math"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 worldPos = uModel * vec4(aPos, 1.0);
	vWorldPos = worldPos.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * worldPos;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec3 uLightDir;
uniform vec3 uColor;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	// Light both sides: cloth is visible from front and back.
	float diffuse = abs(dot(n, normalize(-uLightDir)));
	vec3 lit = uColor * (0.25 + 0.75 * diffuse);
	FragColor = vec4(lit, 1.0);
}
`

// Vertex layout: position (3f) + normal (3f) + texcoord (2f), tightly packed.
const vertexStride = int32(unsafe.Sizeof(model.Vertex{}))

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// meshBuffers holds the GPU objects backing one mesh.
type meshBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	dynamic    bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program   uint32
	uModel    int32
	uView     int32
	uProj     int32
	uLightDir int32
	uColor    int32

	buffers map[*model.Mesh]*meshBuffers
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		buffers: make(map[*model.Mesh]*meshBuffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uModel = shader.MustGetUniform(r.program, "uModel")
	r.uView = shader.MustGetUniform(r.program, "uView")
	r.uProj = shader.MustGetUniform(r.program, "uProj")
	r.uLightDir = shader.MustGetUniform(r.program, "uLightDir")
	r.uColor = shader.MustGetUniform(r.program, "uColor")

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, buf := range r.buffers {
		gl.DeleteVertexArrays(1, &buf.vao)
		gl.DeleteBuffers(1, &buf.vbo)
		gl.DeleteBuffers(1, &buf.ebo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ProjectionMatrix returns the perspective projection for the current viewport.
func (r *Renderer) ProjectionMatrix() math.Mat4 {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	return math.Perspective(math.Radians(50), aspect, 0.1, 500.0)
}

// Begin starts a new frame.
func (r *Renderer) Begin(view, proj math.Mat4, lightDir math.Vec3) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.uProj, 1, false, proj.Ptr())
	gl.Uniform3f(r.uLightDir, lightDir.X, lightDir.Y, lightDir.Z)
}

// DrawMesh draws a mesh with its current transform and the given base color.
// Simulated meshes have their vertex data re-uploaded every frame.
func (r *Renderer) DrawMesh(mesh *model.Mesh, color math.Vec3) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return
	}

	buf, ok := r.buffers[mesh]
	if !ok {
		buf = r.uploadMesh(mesh)
		r.buffers[mesh] = buf
	} else if buf.dynamic {
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0,
			len(mesh.Vertices)*int(vertexStride), unsafe.Pointer(&mesh.Vertices[0]))
	}

	gl.UniformMatrix4fv(r.uModel, 1, false, mesh.Transform.Ptr())
	gl.Uniform3f(r.uColor, color.X, color.Y, color.Z)

	gl.BindVertexArray(buf.vao)
	gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// uploadMesh creates the VAO/VBO/EBO for a mesh and uploads its data.
func (r *Renderer) uploadMesh(mesh *model.Mesh) *meshBuffers {
	buf := &meshBuffers{
		indexCount: int32(len(mesh.Indices)),
		dynamic:    mesh.Cloth != nil,
	}

	usage := uint32(gl.STATIC_DRAW)
	if buf.dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(vertexStride), unsafe.Pointer(&mesh.Vertices[0]), usage)

	gl.GenBuffers(1, &buf.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, uintptr(3*4))
	gl.EnableVertexAttribArray(1)

	// TexCoord (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, uintptr(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
		zap.Bool("dynamic", buf.dynamic),
	)
	return buf
}
