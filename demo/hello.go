package demo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/internal/opengl"
	"tilegl/scene"
)

// Hello draws one textured quad through an element buffer. Its tint pulses
// green over time.
type Hello struct {
	program *opengl.Program
	quad    *scene.Mesh
	texture *scene.Texture
}

func (h *Hello) Name() string { return "hello" }

func (h *Hello) Init(c *Context) error {
	p, err := opengl.NewProgram(opengl.TexturedVertSrc, opengl.TexturedFragSrc)
	if err != nil {
		return err
	}
	h.program = p
	h.quad = scene.IndexedQuad()
	if err := upload(h.quad); err != nil {
		return err
	}
	h.texture = loadTexture(c, c.Config.Assets.ContainerTexture, core.Color{R: 0.8, G: 0.6, B: 0.3, A: 1}, false)
	return nil
}

func (h *Hello) Update(c *Context, dt float32) {}

// pulse maps time onto [0,1] with a sine wave.
func pulse(t float64) float32 {
	return float32(math.Sin(t)/2 + 0.5)
}

func (h *Hello) Render(c *Context) {
	opengl.Clear(0.2, 0.3, 0.3, false)

	h.program.Use()
	h.program.SetMat4("transform", mgl32.Ident4())
	h.program.SetInt("tex", 0)
	h.program.SetVec4("tint", mgl32.Vec4{1, pulse(c.Time), 1, 1})
	opengl.BindTexture(0, h.texture)
	gpu(h.quad).Draw()
}

func (h *Hello) Destroy() {
	opengl.ReleaseMesh(h.quad)
	opengl.DeleteTexture(h.texture)
	h.program.Delete()
}
