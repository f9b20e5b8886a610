package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"terrain-stream/internal/profiling"
	"terrain-stream/internal/terrain"
)

// vertexStride is the number of float32 per vertex (pos.xyz + normal.xyz + uv)
const vertexStride = 8

// uvTiling repeats the ground texture across a chunk
const uvTiling = 10.0

var terrainVertexShader = `#version 330 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
uniform float uvScale;
out vec3 Normal;
out vec2 UV;
void main() {
	Normal = aNormal;
	UV = aUV * uvScale;
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

var terrainFragmentShader = `#version 330 core
in vec3 Normal;
in vec2 UV;
uniform sampler2D groundTex;
uniform vec3 lightDir;
out vec4 FragColor;
void main() {
	vec3 n = normalize(Normal);
	float diff = max(dot(n, -lightDir), 0.3);
	vec3 col = texture(groundTex, UV).rgb * diff;
	FragColor = vec4(col, 1.0);
}
`

// chunkMesh is one uploaded chunk: a VAO with interleaved vertex data
// plus an element buffer, placed at a world origin.
type chunkMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	origin        mgl32.Vec3
}

// TerrainRenderer uploads chunk meshes to the GPU and draws them. It
// implements terrain.RenderBackend. All methods must run on the thread
// owning the GL context.
type TerrainRenderer struct {
	shader  *Shader
	texture uint32
	chunks  map[terrain.RenderHandle]*chunkMesh
	nextID  uint64
}

// NewTerrainRenderer compiles the terrain shader and prepares the ground
// texture. texturePath may name a PNG; when empty or unreadable the
// renderer falls back to a generated texture.
func NewTerrainRenderer(texturePath string) (*TerrainRenderer, error) {
	shader, err := NewShaderFromSource(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	texture := uint32(0)
	if texturePath != "" {
		texture, err = LoadTexture(texturePath)
	}
	if texturePath == "" || err != nil {
		texture = GrassTexture()
	}

	return &TerrainRenderer{
		shader:  shader,
		texture: texture,
		chunks:  make(map[terrain.RenderHandle]*chunkMesh),
	}, nil
}

// AddTerrain uploads a chunk mesh and returns its handle.
func (tr *TerrainRenderer) AddTerrain(mesh *terrain.Mesh, origin mgl32.Vec3) (terrain.RenderHandle, error) {
	if mesh.VertexCount() == 0 || len(mesh.Indices) == 0 {
		return 0, fmt.Errorf("refusing to upload empty chunk mesh at %v", origin)
	}
	if len(mesh.Normals) != mesh.VertexCount() || len(mesh.UVs) != mesh.VertexCount() {
		return 0, fmt.Errorf("chunk mesh attribute count mismatch at %v", origin)
	}

	vertices := interleave(mesh)

	cm := &chunkMesh{
		indexCount: int32(len(mesh.Indices)),
		origin:     origin,
	}

	gl.GenVertexArrays(1, &cm.vao)
	gl.BindVertexArray(cm.vao)

	gl.GenBuffers(1, &cm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, cm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &cm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)

	tr.nextID++
	handle := terrain.RenderHandle(tr.nextID)
	tr.chunks[handle] = cm
	return handle, nil
}

// RemoveTerrain destroys the drawable behind the handle.
func (tr *TerrainRenderer) RemoveTerrain(handle terrain.RenderHandle) {
	cm, ok := tr.chunks[handle]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &cm.vbo)
	gl.DeleteBuffers(1, &cm.ebo)
	gl.DeleteVertexArrays(1, &cm.vao)
	delete(tr.chunks, handle)
}

// ChunkCount returns the number of uploaded chunks.
func (tr *TerrainRenderer) ChunkCount() int {
	return len(tr.chunks)
}

// Draw renders all chunks with the given view/projection matrices.
func (tr *TerrainRenderer) Draw(view, proj mgl32.Mat4) {
	defer profiling.Track("graphics.DrawTerrain")()

	tr.shader.Use()
	tr.shader.SetMatrix4("view", &view[0])
	tr.shader.SetMatrix4("proj", &proj[0])
	tr.shader.SetFloat("uvScale", uvTiling)

	light := mgl32.Vec3{0.5, -1.0, 0.3}.Normalize()
	tr.shader.SetVector3("lightDir", light.X(), light.Y(), light.Z())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	tr.shader.SetInt("groundTex", 0)

	for _, cm := range tr.chunks {
		model := mgl32.Translate3D(cm.origin.X(), cm.origin.Y(), cm.origin.Z())
		tr.shader.SetMatrix4("model", &model[0])

		gl.BindVertexArray(cm.vao)
		gl.DrawElements(gl.TRIANGLES, cm.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
}

// Close releases all GPU resources owned by the renderer.
func (tr *TerrainRenderer) Close() {
	for handle := range tr.chunks {
		tr.RemoveTerrain(handle)
	}
	gl.DeleteTextures(1, &tr.texture)
	tr.shader.Delete()
}

// interleave packs mesh attributes as [pos.xyz normal.xyz uv.xy] per vertex.
func interleave(mesh *terrain.Mesh) []float32 {
	out := make([]float32, 0, mesh.VertexCount()*vertexStride)
	for i := range mesh.Positions {
		p := mesh.Positions[i]
		n := mesh.Normals[i]
		uv := mesh.UVs[i]
		out = append(out,
			p.X(), p.Y(), p.Z(),
			n.X(), n.Y(), n.Z(),
			uv.X(), uv.Y(),
		)
	}
	return out
}
