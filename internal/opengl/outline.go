package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Outline draws an object with a solid-colour border using the stencil
// buffer. The target must have a stencil attachment and the caller clears
// STENCIL_BUFFER_BIT every frame.
type Outline struct {
	Program *Program
	Color   mgl32.Vec3
	Scale   float32
}

// NewOutline compiles the border shader. The default border is a 5% larger
// copy of the object in orange.
func NewOutline() (*Outline, error) {
	p, err := NewProgram(basicVertSrc, borderFragSrc)
	if err != nil {
		return nil, err
	}
	return &Outline{
		Program: p,
		Color:   mgl32.Vec3{1, 0.5, 0.1},
		Scale:   1.05,
	}, nil
}

// Draw renders the object twice. First lit draws it normally with model,
// marking its pixels with stencil value 1. Then the border program draws a
// scaled copy only where the stencil is not 1, with depth testing off so the
// border shows through walls. draw must issue the object's draw calls with
// the program it is handed; "model" is already set on it.
func (o *Outline) Draw(lit *Program, model, view, proj mgl32.Mat4, draw func(p *Program)) {
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.REPLACE)

	gl.StencilFunc(gl.ALWAYS, 1, 0xFF)
	gl.StencilMask(0xFF)
	lit.Use()
	lit.SetMat4("model", model)
	draw(lit)

	gl.StencilFunc(gl.NOTEQUAL, 1, 0xFF)
	gl.StencilMask(0x00)
	gl.Disable(gl.DEPTH_TEST)
	o.Program.Use()
	o.Program.SetMat4("view", view)
	o.Program.SetMat4("projection", proj)
	o.Program.SetVec3("borderColor", o.Color)
	o.Program.SetMat4("model", model.Mul4(mgl32.Scale3D(o.Scale, o.Scale, o.Scale)))
	draw(o.Program)

	gl.StencilMask(0xFF)
	gl.StencilFunc(gl.ALWAYS, 0, 0xFF)
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.STENCIL_TEST)
}

func (o *Outline) Delete() {
	o.Program.Delete()
}
