package scene

import "tilegl/core"

// Material describes Phong surface properties for a mesh. Texture maps, when
// set, replace the flat colours in the shader.
type Material struct {
	Name      string
	Diffuse   core.Color
	Specular  core.Color
	Shininess float32

	// Upload via opengl.UploadTexture before rendering.
	DiffuseTexture  *Texture
	SpecularTexture *Texture
}

// DefaultMaterial returns a plain white Phong material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Diffuse:   core.ColorWhite,
		Specular:  core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1},
		Shininess: 32,
	}
}
