package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/internal/opengl"
	"tilegl/scene"
)

// modelSlots are where the tester places loaded models, in config order.
var modelSlots = []struct {
	pos   mgl32.Vec3
	scale float32
}{
	{mgl32.Vec3{2, -2, 0}, 1},
	{mgl32.Vec3{-2, -2, 0}, 0.25},
	{mgl32.Vec3{0, 0, 1}, 0.4},
}

// Tester combines the containers with loaded models under a dim sun, four
// point lights and the flashlight.
type Tester struct {
	*rig
	diffuse  *scene.Texture
	specular *scene.Texture
	models   []*scene.Model
}

func (d *Tester) Name() string { return "tester" }

func (d *Tester) Init(c *Context) error {
	r, err := newRig(c, mgl32.Vec3{0, 0, 3})
	if err != nil {
		return err
	}
	d.rig = r

	d.diffuse = loadTexture(c, c.Config.Assets.DiffuseTexture, core.Color{R: 0.6, G: 0.4, B: 0.2, A: 1}, false)
	d.specular = loadTexture(c, c.Config.Assets.SpecularTexture, core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, false)

	for i, name := range c.Config.Assets.Models {
		if i >= len(modelSlots) {
			c.Log.Warn("no slot left for model", "model", name)
			break
		}
		d.models = append(d.models, loadModel(c, name))
	}

	sun := scene.NewDirectionLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.2, -1, -0.3})
	sun.AmbientIntensity = 0.01
	sun.DiffuseIntensity = 0.05
	red := scene.NewPointLight(mgl32.Vec3{0.7, 0.2, 2}, mgl32.Vec3{1, 0.2, 0.2})
	red.Attenuation = scene.Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}
	d.lights = scene.Lights{
		Direction: sun,
		Points: []*scene.PointLight{
			red,
			scene.NewPointLight(mgl32.Vec3{2.3, -3.3, -4}, mgl32.Vec3{1, 1, 1}),
			scene.NewPointLight(mgl32.Vec3{-4, 2, -12}, mgl32.Vec3{1, 1, 1}),
			scene.NewPointLight(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{1, 1, 1}),
		},
	}
	d.flashlight = scene.NewFlashlight(scene.NewSpotLight(mgl32.Vec3{1, 1, 1}, 12.5, 15))
	d.flashlight.Toggle()
	return nil
}

func (d *Tester) Update(c *Context, dt float32) {
	look(c.Input, d.camera)
	fly(c.Input, d.camera, dt)
	d.updateFlashlight(c, dt)
}

func (d *Tester) Render(c *Context) {
	opengl.Clear(0.05, 0.05, 0.05, false)
	d.begin(c)
	for i := range crates {
		d.drawCube(crateModel(i, c.Time), d.diffuse, d.specular)
	}
	for i, m := range d.models {
		if m == nil {
			continue
		}
		slot := modelSlots[i]
		tr := core.NewTransform()
		tr.Position = slot.pos
		tr.Scale = mgl32.Vec3{slot.scale, slot.scale, slot.scale}
		d.lit.SetMat4("model", tr.GetMatrix())
		opengl.DrawModel(d.lit, m, d.white)
	}
	d.drawLamps()
}

func (d *Tester) Destroy() {
	for _, m := range d.models {
		releaseModel(m)
	}
	opengl.DeleteTexture(d.diffuse)
	opengl.DeleteTexture(d.specular)
	d.destroy()
}
