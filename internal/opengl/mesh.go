package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"tilegl/core"
	"tilegl/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	Count      int32
	HasIndices bool
}

// UploadMesh copies the mesh into a VAO with the shared interleaved layout:
// location 0 position, 1 normal, 2 uv. The result is also stored in
// mesh.GPUData.
func UploadMesh(mesh *scene.Mesh) (*GPUMesh, error) {
	if gpu, ok := mesh.GPUData.(*GPUMesh); ok {
		return gpu, nil
	}
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no vertices", mesh.Name)
	}

	data := core.PackVertices(mesh.Vertices)
	stride := int32(core.VertexFloats * 4)

	gpu := &GPUMesh{
		Count:      int32(mesh.DrawCount()),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	mesh.GPUData = gpu
	return gpu, nil
}

// Draw issues one triangle draw call.
func (g *GPUMesh) Draw() {
	gl.BindVertexArray(g.VAO)
	if g.HasIndices {
		gl.DrawElements(gl.TRIANGLES, g.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, g.Count)
	}
	gl.BindVertexArray(0)
}

func (g *GPUMesh) Delete() {
	gl.DeleteVertexArrays(1, &g.VAO)
	gl.DeleteBuffers(1, &g.VBO)
	if g.HasIndices {
		gl.DeleteBuffers(1, &g.EBO)
	}
}

// ReleaseMesh frees the GPU buffers attached to mesh, if any.
func ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := mesh.GPUData.(*GPUMesh); ok {
		gpu.Delete()
		mesh.GPUData = nil
	}
}

// UploadModel uploads every mesh and texture of a model.
func UploadModel(m *scene.Model) error {
	for _, tex := range m.Textures() {
		if err := UploadTexture(tex); err != nil {
			return fmt.Errorf("model %s: %w", m.Name, err)
		}
	}
	for _, mesh := range m.Meshes {
		if _, err := UploadMesh(mesh); err != nil {
			return fmt.Errorf("model %s: %w", m.Name, err)
		}
	}
	return nil
}

// DrawMesh binds the mesh material into the lit shader's "material" struct
// and draws it. Missing maps fall back to fallback (usually 1x1 white).
// The mesh must have been uploaded.
func DrawMesh(p *Program, mesh *scene.Mesh, fallback *scene.Texture) {
	gpu, ok := mesh.GPUData.(*GPUMesh)
	if !ok {
		return
	}
	mat := mesh.Material
	if mat == nil {
		mat = scene.DefaultMaterial()
	}
	diffuse := mat.DiffuseTexture
	if diffuse == nil {
		diffuse = fallback
	}
	specular := mat.SpecularTexture
	if specular == nil {
		specular = fallback
	}
	BindTexture(0, diffuse)
	BindTexture(1, specular)
	p.SetInt("material.diffuse", 0)
	p.SetInt("material.specular", 1)
	p.SetVec3("material.diffuseColor", mat.Diffuse.Vec3())
	p.SetVec3("material.specularColor", mat.Specular.Vec3())
	p.SetFloat("material.shininess", mat.Shininess)
	gpu.Draw()
}

// DrawModel draws every mesh of an uploaded model with DrawMesh.
func DrawModel(p *Program, m *scene.Model, fallback *scene.Texture) {
	for _, mesh := range m.Meshes {
		DrawMesh(p, mesh, fallback)
	}
}
