package demo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/internal/opengl"
	"tilegl/scene"
	"tilegl/world"
)

const (
	// floorY is the centre height of the cubes under empty tiles.
	floorY = -1
	// windowInset pushes window panes to the front face of their tile.
	windowInset = 0.52
	markerY     = -0.5
)

var (
	markerSize  = mgl32.Vec3{0.04, 0.1, 0.04}
	markerColor = core.ColorRed.Vec3()

	// The planet floats behind the window row, the suit stands in the room.
	planetAt   = mgl32.Vec3{3, 0.5, -2}
	planetAxis = mgl32.Vec3{0.3, 1, 0}
	suitAt     = mgl32.Vec3{2, -0.5, 1}
)

const (
	planetScale = 0.3
	suitScale   = 0.1
)

// World is the walkable tile map: tiled cubes with diffuse and specular
// maps, windows drawn back to front, ray cast markers, a flashlight, a
// standing model and an outlined spinning planet, all rendered off-screen
// and then copied to the window.
type World struct {
	*rig
	tiles  *world.TileMap
	player *world.Player

	tileDiffuse, tileSpecular *scene.Texture
	window                    *scene.Texture

	simple *opengl.Program
	screen *opengl.Program
	pane   *scene.Mesh
	canvas *scene.Mesh
	fb     *opengl.Framebuffer

	outline *opengl.Outline
	planet  *scene.Model
	suit    *scene.Model

	markers     []mgl32.Vec3
	rayDistance float32
	dig         bool
}

func (d *World) Name() string { return "world" }

// newWorldMap builds the tile map from config, falling back to the built-in
// room when no layout is configured.
func newWorldMap(cfg core.WorldSettings) (*world.TileMap, error) {
	if len(cfg.Map) == 0 {
		return world.DefaultMap(), nil
	}
	layout, err := world.ParseLayout(cfg.Map)
	if err != nil {
		return nil, err
	}
	return world.NewTileMap(layout)
}

// planetModel spins the planet about a tilted axis at half a radian per
// second.
func planetModel(t float64) mgl32.Mat4 {
	tr := core.NewTransform()
	tr.Position = planetAt
	tr.Rotation = mgl32.QuatRotate(float32(t/2), planetAxis.Normalize())
	tr.Scale = mgl32.Vec3{planetScale, planetScale, planetScale}
	return tr.GetMatrix()
}

func suitModel() mgl32.Mat4 {
	tr := core.NewTransform()
	tr.Position = suitAt
	tr.Scale = mgl32.Vec3{suitScale, suitScale, suitScale}
	return tr.GetMatrix()
}

func (d *World) Init(c *Context) error {
	tiles, err := newWorldMap(c.Config.World)
	if err != nil {
		return fmt.Errorf("world map: %w", err)
	}
	d.tiles = tiles

	p := c.Config.Camera.Position
	start := mgl32.Vec3{p[0], p[1], p[2]}
	if !tiles.CanMoveTo(start) {
		return fmt.Errorf("start position %v is not walkable", start)
	}
	d.player = world.NewPlayer(start)
	if c.Config.Camera.Speed > 0 {
		d.player.Speed = c.Config.Camera.Speed
	}
	if c.Config.World.Padding > 0 {
		d.player.Padding = c.Config.World.Padding
	}
	d.rayDistance = c.Config.World.RayDistance
	d.dig = c.Config.World.Dig

	r, err := newRig(c, start)
	if err != nil {
		return err
	}
	d.rig = r
	c.Input.Watch(core.KeyPeriod)

	assets := c.Config.Assets
	d.tileDiffuse = loadTexture(c, assets.TileTexture, core.Color{R: 0.4, G: 0.4, B: 0.45, A: 1}, false)
	d.tileSpecular = loadTexture(c, assets.SpecularTexture, core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, false)
	d.window = loadTexture(c, assets.WindowTexture, core.Color{R: 0.6, G: 0.8, B: 1, A: 0.4}, true)

	if d.simple, err = opengl.NewProgram(opengl.SimpleTextureVertSrc, opengl.SimpleTextureFragSrc); err != nil {
		return err
	}
	if d.screen, err = opengl.NewProgram(opengl.ScreenVertSrc, opengl.ScreenFragSrc); err != nil {
		return err
	}
	d.pane = scene.Quad()
	d.canvas = scene.Quad()
	d.canvas.Transform(mgl32.Scale3D(2, 2, 1))
	if err := upload(d.pane, d.canvas); err != nil {
		return err
	}

	w, h := c.Window.GetFramebufferSize()
	if d.fb, err = opengl.NewFramebuffer(w, h); err != nil {
		return err
	}
	c.Window.OnResize(d.fb.Resize)

	if d.outline, err = opengl.NewOutline(); err != nil {
		return err
	}
	d.planet = loadModel(c, assets.OutlineModel)
	if len(assets.Models) > 0 {
		d.suit = loadModel(c, assets.Models[0])
	}

	sun := scene.NewDirectionLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.5, -1, 0.5})
	sun.AmbientIntensity = 0.01
	sun.DiffuseIntensity = 0.2
	d.lights = scene.Lights{
		Direction: sun,
		Points: []*scene.PointLight{
			scene.NewPointLight(mgl32.Vec3{1, -0.4, 6}, mgl32.Vec3{1, 1, 1}),
			scene.NewPointLight(mgl32.Vec3{1.5, -0.4, 1}, mgl32.Vec3{1, 0, 0}),
			scene.NewPointLight(mgl32.Vec3{2, -0.4, -2}, mgl32.Vec3{0, 1, 0}),
			scene.NewPointLight(mgl32.Vec3{4, -0.4, -1}, mgl32.Vec3{0, 0, 1}),
			scene.NewPointLight(mgl32.Vec3{6, -0.4, 6}, mgl32.Vec3{1, 1, 0}),
		},
	}
	d.flashlight = scene.NewFlashlight(scene.NewSpotLight(mgl32.Vec3{1, 1, 1}, 12.5, 15))

	c.Log.Info("world loaded",
		"cols", tiles.Cols(), "rows", tiles.Rows(),
		"windows", len(tiles.WindowPositions()), "start", start)
	return nil
}

func (d *World) Update(c *Context, dt float32) {
	look(c.Input, d.camera)

	if dir := walkDirection(c.Input, d.camera); dir.Len() > 0 {
		d.player.Walk(d.tiles, dir, dt)
		d.camera.UpdatePosition(d.player.Position)
	}

	if c.Input.IsKeyReleased(core.KeyPeriod) {
		d.castRay(c)
	}
	d.updateFlashlight(c, dt)
}

// castRay shoots along the view direction and keeps the crossing markers
// for drawing. With digging enabled the hit tile is cleared.
func (d *World) castRay(c *Context) {
	hit := d.tiles.CastRay(d.camera.Position, d.camera.Front, d.rayDistance)
	d.markers = hit.Markers
	if !hit.Hit {
		c.Log.Debug("ray missed", "markers", len(hit.Markers))
		return
	}
	tile := d.tiles.TileAt(hit.Tile.Col, hit.Tile.Row)
	c.Log.Info("ray hit", "col", hit.Tile.Col, "row", hit.Tile.Row, "tile", tile, "markers", len(hit.Markers))
	if !d.dig {
		return
	}
	if err := d.tiles.SetTileAt(hit.Tile.Col, hit.Tile.Row, world.Empty); err != nil {
		c.Log.Warn("dig failed", "err", err)
	}
}

func (d *World) Render(c *Context) {
	d.fb.Bind()
	opengl.Clear(0.1, 0.1, 0.1, true)

	d.begin(c)
	d.drawTiles()
	if d.suit != nil {
		d.lit.SetMat4("model", suitModel())
		opengl.DrawModel(d.lit, d.suit, d.white)
	}
	d.drawPlanet(c.Time)

	d.drawLamps()
	for _, m := range d.markers {
		d.drawMarker(mgl32.Vec3{m[0], markerY, m[2]}, markerSize, markerColor)
	}

	d.drawWindows()

	w, h := c.Window.GetFramebufferSize()
	d.fb.Unbind(w, h)
	opengl.Clear(1, 1, 1, false)
	d.fb.DrawToScreen(d.screen, gpu(d.canvas), 1)
}

// drawTiles puts a floor cube under every empty tile and a cube on every
// wall, all with the same tile maps. Windows are drawn later; pillars are
// invisible.
func (d *World) drawTiles() {
	d.tiles.Each(func(c world.Coord, t world.Tile) {
		p := c.Center()
		switch t {
		case world.Empty:
			d.drawCube(mgl32.Translate3D(p[0], floorY, p[2]), d.tileDiffuse, d.tileSpecular)
		case world.Wall:
			d.drawCube(mgl32.Translate3D(p[0], p[1], p[2]), d.tileDiffuse, d.tileSpecular)
		}
	})
}

func (d *World) drawPlanet(t float64) {
	if d.planet == nil {
		return
	}
	d.outline.Draw(d.lit, planetModel(t), d.view, d.proj, func(p *opengl.Program) {
		opengl.DrawModel(p, d.planet, d.white)
	})
}

// drawWindows blends the panes farthest first so nearer glass tints what is
// behind it.
func (d *World) drawWindows() {
	opengl.EnableBlending(true)
	defer opengl.EnableBlending(false)

	d.simple.Use()
	d.simple.SetMat4("view", d.view)
	d.simple.SetMat4("projection", d.proj)
	d.simple.SetInt("tex", 0)
	d.simple.SetVec4("tint", mgl32.Vec4{1, 1, 1, 1})
	opengl.BindTexture(0, d.window)

	for _, p := range scene.SortBackToFront(d.camera.Position, d.tiles.WindowPositions()) {
		d.simple.SetMat4("model", mgl32.Translate3D(p[0], p[1], p[2]+windowInset))
		gpu(d.pane).Draw()
	}
}

func (d *World) Destroy() {
	releaseModel(d.planet)
	releaseModel(d.suit)
	if d.outline != nil {
		d.outline.Delete()
	}
	if d.fb != nil {
		d.fb.Destroy()
	}
	for _, m := range []*scene.Mesh{d.pane, d.canvas} {
		if m != nil {
			opengl.ReleaseMesh(m)
		}
	}
	for _, p := range []*opengl.Program{d.simple, d.screen} {
		if p != nil {
			p.Delete()
		}
	}
	for _, t := range []*scene.Texture{d.tileDiffuse, d.tileSpecular, d.window} {
		opengl.DeleteTexture(t)
	}
	if d.rig != nil {
		d.destroy()
	}
}
