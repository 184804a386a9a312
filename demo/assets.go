package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/internal/opengl"
	"tilegl/scene"
)

// loadTexture reads an asset texture and uploads it. A missing or broken
// file is logged and replaced by a flat colour so demos still start without
// the asset pack.
func loadTexture(c *Context, name string, fallback core.Color, clamp bool) *scene.Texture {
	path := c.Config.Assets.Path(name)
	tex, err := scene.LoadTexture(path, c.Config.Assets.FlipTextures)
	if err != nil {
		c.Log.Warn("texture unavailable, using flat colour", "path", path, "err", err)
		tex = solid(name, fallback)
	}
	send := opengl.UploadTexture
	if clamp {
		send = opengl.UploadClampedTexture
	}
	if err := send(tex); err != nil {
		c.Log.Warn("texture upload failed", "path", path, "err", err)
	}
	return tex
}

func solid(name string, col core.Color) *scene.Texture {
	b := func(v float32) uint8 { return uint8(mgl32.Clamp(v, 0, 1) * 255) }
	return scene.NewSolidTexture(name, b(col.R), b(col.G), b(col.B), b(col.A))
}

// whiteTexture is the sampler fallback for materials without maps.
func whiteTexture(c *Context) *scene.Texture {
	tex := scene.NewSolidTexture("white", 255, 255, 255, 255)
	if err := opengl.UploadTexture(tex); err != nil {
		c.Log.Warn("texture upload failed", "texture", tex.Name, "err", err)
	}
	return tex
}

// loadModel reads and uploads a model. Failures are logged and yield nil.
func loadModel(c *Context, name string) *scene.Model {
	if name == "" {
		return nil
	}
	path := c.Config.Assets.Path(name)
	m, err := scene.LoadModel(path, scene.LoadOptions{
		FlipTextures: c.Config.Assets.FlipTextures,
		Logger:       c.Log,
	})
	if err != nil {
		c.Log.Warn("model unavailable", "path", path, "err", err)
		return nil
	}
	if err := opengl.UploadModel(m); err != nil {
		c.Log.Warn("model upload failed", "path", path, "err", err)
		return nil
	}
	c.Log.Debug("model ready", "path", path, "meshes", len(m.Meshes))
	return m
}

func releaseModel(m *scene.Model) {
	if m == nil {
		return
	}
	for _, mesh := range m.Meshes {
		opengl.ReleaseMesh(mesh)
	}
	for _, tex := range m.Textures() {
		opengl.DeleteTexture(tex)
	}
}

// upload pushes built-in meshes to the GPU.
func upload(meshes ...*scene.Mesh) error {
	for _, m := range meshes {
		if _, err := opengl.UploadMesh(m); err != nil {
			return err
		}
	}
	return nil
}

func gpu(m *scene.Mesh) *opengl.GPUMesh {
	g, _ := m.GPUData.(*opengl.GPUMesh)
	return g
}
