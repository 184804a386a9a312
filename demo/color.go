package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/internal/opengl"
	"tilegl/scene"
)

// Color is the multiple-lights scene: ten spinning containers lit by the
// sun, four coloured point lights and a camera flashlight.
type Color struct {
	*rig
	diffuse  *scene.Texture
	specular *scene.Texture
}

func (d *Color) Name() string { return "color" }

func (d *Color) Init(c *Context) error {
	r, err := newRig(c, mgl32.Vec3{0, 1, 5})
	if err != nil {
		return err
	}
	d.rig = r

	d.diffuse = loadTexture(c, c.Config.Assets.DiffuseTexture, core.Color{R: 0.6, G: 0.4, B: 0.2, A: 1}, false)
	d.specular = loadTexture(c, c.Config.Assets.SpecularTexture, core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, false)

	d.lights = scene.Lights{
		Direction: scene.NewDirectionLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.2, -1, -0.3}),
		Points: []*scene.PointLight{
			scene.NewPointLight(mgl32.Vec3{0.7, 0.2, 2}, mgl32.Vec3{1, 1, 1}),
			scene.NewPointLight(mgl32.Vec3{2.3, -3.3, -4}, mgl32.Vec3{1, 0, 0}),
			scene.NewPointLight(mgl32.Vec3{-4, 2, -12}, mgl32.Vec3{0, 1, 0}),
			scene.NewPointLight(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{0, 0, 1}),
		},
	}
	d.flashlight = scene.NewFlashlight(scene.NewSpotLight(mgl32.Vec3{1, 1, 1}, 15.5, 17.5))
	d.flashlight.Toggle()
	return nil
}

func (d *Color) Update(c *Context, dt float32) {
	look(c.Input, d.camera)
	fly(c.Input, d.camera, dt)
	d.updateFlashlight(c, dt)
}

func (d *Color) Render(c *Context) {
	opengl.Clear(0.1, 0.1, 0.1, false)
	d.begin(c)
	for i := range crates {
		d.drawCube(crateModel(i, c.Time), d.diffuse, d.specular)
	}
	d.drawLamps()
}

func (d *Color) Destroy() {
	opengl.DeleteTexture(d.diffuse)
	opengl.DeleteTexture(d.specular)
	d.destroy()
}
