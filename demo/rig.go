package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/internal/opengl"
	"tilegl/scene"
)

// rig is the lit-scene plumbing shared by the color, tester and world demos:
// the Phong and lamp programs, a unit cube, a camera and the light set.
type rig struct {
	lit   *opengl.Program
	lamp  *opengl.Program
	cube  *scene.Mesh
	white *scene.Texture

	camera     *scene.Camera
	lights     scene.Lights
	flashlight *scene.Flashlight

	view, proj mgl32.Mat4
}

func newRig(c *Context, camPos mgl32.Vec3) (*rig, error) {
	lit, err := litProgram(c)
	if err != nil {
		return nil, err
	}
	lamp, err := opengl.NewProgram(opengl.LampVertSrc, opengl.LampFragSrc)
	if err != nil {
		lit.Delete()
		return nil, err
	}
	r := &rig{
		lit:    lit,
		lamp:   lamp,
		cube:   scene.Cube(),
		white:  whiteTexture(c),
		camera: newCamera(c.Config.Camera, camPos),
	}
	if err := upload(r.cube); err != nil {
		r.destroy()
		return nil, err
	}
	watchMovement(c.Input)
	c.Input.Watch(core.KeyF)
	return r, nil
}

// litProgram compiles the Phong shader, from disk when configured.
func litProgram(c *Context) (*opengl.Program, error) {
	a := c.Config.Assets
	if a.LitVertShader == "" {
		return opengl.NewProgram(opengl.LitVertSrc, opengl.LitFragSrc)
	}
	vert, frag := a.Path(a.LitVertShader), a.Path(a.LitFragShader)
	c.Log.Info("using shader files", "vert", vert, "frag", frag)
	return opengl.NewProgramFromFiles(vert, frag)
}

func newCamera(cfg core.CameraSettings, pos mgl32.Vec3) *scene.Camera {
	cam := scene.NewCamera(pos)
	if cfg.Speed > 0 {
		cam.Speed = cfg.Speed
	}
	if cfg.Sensitivity > 0 {
		cam.Sensitivity = cfg.Sensitivity
	}
	if cfg.Zoom > 0 {
		cam.Zoom = cfg.Zoom
	}
	return cam
}

// updateFlashlight toggles on F release and aims the light down the view.
func (r *rig) updateFlashlight(c *Context, dt float32) {
	if r.flashlight == nil {
		return
	}
	if c.Input.IsKeyReleased(core.KeyF) {
		r.flashlight.Toggle()
		c.Log.Debug("flashlight toggled", "on", r.flashlight.On())
	}
	r.flashlight.Update(dt, r.camera.Position, r.camera.Front)
	r.lights.Spot = r.flashlight.Spot()
}

// begin computes the camera matrices and loads them, the eye position and
// every light into the lit program, then leaves it in use.
func (r *rig) begin(c *Context) {
	r.view = r.camera.ViewMatrix()
	r.proj = r.camera.ProjectionMatrix(c.Window.AspectRatio())

	r.lamp.Use()
	r.lamp.SetMat4("view", r.view)
	r.lamp.SetMat4("projection", r.proj)

	r.lit.Use()
	r.lit.SetMat4("view", r.view)
	r.lit.SetMat4("projection", r.proj)
	r.lit.SetVec3("viewPos", r.camera.Position)
	r.lights.Apply(r.lit)
}

// drawCube draws the unit cube with model using the textures as maps.
// The lit program must be in use.
func (r *rig) drawCube(model mgl32.Mat4, diffuse, specular *scene.Texture) {
	r.lit.SetMat4("model", model)
	r.lit.SetInt("material.diffuse", 0)
	r.lit.SetInt("material.specular", 1)
	r.lit.SetVec3("material.diffuseColor", mgl32.Vec3{1, 1, 1})
	r.lit.SetVec3("material.specularColor", mgl32.Vec3{1, 1, 1})
	r.lit.SetFloat("material.shininess", 32)
	opengl.BindTexture(0, diffuse)
	opengl.BindTexture(1, specular)
	gpu(r.cube).Draw()
}

// drawLamps marks every point light with a small cube in its colour.
func (r *rig) drawLamps() {
	r.lamp.Use()
	for _, pl := range r.lights.Points {
		r.drawMarker(pl.Position, mgl32.Vec3{0.2, 0.2, 0.2}, pl.LampColor())
	}
}

// drawMarker draws an unlit box. The lamp program must be in use.
func (r *rig) drawMarker(pos, size, color mgl32.Vec3) {
	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	r.lamp.SetMat4("model", model)
	r.lamp.SetVec3("lampColor", color)
	gpu(r.cube).Draw()
}

func (r *rig) destroy() {
	opengl.ReleaseMesh(r.cube)
	opengl.DeleteTexture(r.white)
	r.lit.Delete()
	r.lamp.Delete()
}

// crates are the container positions of the lighting chapters.
var crates = []mgl32.Vec3{
	{0, 0, 0},
	{2, 5, -15},
	{-1.5, -2.2, -2.5},
	{-3.8, -2, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3, -7.5},
	{1.3, -2, -2.5},
	{1.5, 2, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1, -1.5},
}

// crateModel spins crate i about a fixed tilted axis, faster for higher i.
func crateModel(i int, t float64) mgl32.Mat4 {
	p := crates[i]
	angle := mgl32.DegToRad(float32(20 * float64(i) * t * 0.5))
	axis := mgl32.Vec3{1, 0.3, 0.5}.Normalize()
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.HomogRotate3D(angle, axis))
}
