package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32 // empty means draw Vertices in order

	// Material holds surface shading properties. If nil, DefaultMaterial() is used.
	Material *Material

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// DrawCount is the number of vertices a draw call submits.
func (m *Mesh) DrawCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return len(m.Vertices)
}

// Bounds returns the axis-aligned extent of the vertex positions.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}

// Transform bakes m into the vertex data. Normals use the inverse
// transpose so non-uniform scales keep them perpendicular.
func (m *Mesh) Transform(mat mgl32.Mat4) {
	normalMat := mat.Mat3().Inv().Transpose()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mgl32.TransformCoordinate(v.Position, mat)
		if n := normalMat.Mul3x1(v.Normal); n.Len() > 0 {
			v.Normal = n.Normalize()
		}
	}
}
