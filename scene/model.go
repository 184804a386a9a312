package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOptions controls how models and their textures are read.
type LoadOptions struct {
	FlipTextures bool
	Logger       *slog.Logger
}

func (o LoadOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Model is a set of meshes loaded from one file.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// LoadModel reads a Wavefront .obj or a glTF .gltf/.glb file.
func LoadModel(path string, opts LoadOptions) (*Model, error) {
	var (
		meshes []*Mesh
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		meshes, err = LoadOBJ(path, opts)
	case ".gltf", ".glb":
		meshes, err = LoadGLTF(path, opts)
	default:
		return nil, fmt.Errorf("load model %q: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, err
	}
	m := &Model{Name: filepath.Base(path), Meshes: meshes}
	min, max := m.Bounds()
	opts.logger().Debug("model loaded", "path", path, "meshes", len(meshes), "min", min, "max", max)
	return m, nil
}

// Bounds is the axis-aligned extent of every mesh in the model.
func (m *Model) Bounds() (min, max mgl32.Vec3) {
	first := true
	for _, mesh := range m.Meshes {
		if len(mesh.Vertices) == 0 {
			continue
		}
		lo, hi := mesh.Bounds()
		if first {
			min, max = lo, hi
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			if lo[i] < min[i] {
				min[i] = lo[i]
			}
			if hi[i] > max[i] {
				max[i] = hi[i]
			}
		}
	}
	return min, max
}

// Textures returns every distinct texture referenced by the model's
// materials, in first-use order.
func (m *Model) Textures() []*Texture {
	seen := map[*Texture]bool{}
	var out []*Texture
	add := func(t *Texture) {
		if t != nil && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, mesh := range m.Meshes {
		if mesh.Material == nil {
			continue
		}
		add(mesh.Material.DiffuseTexture)
		add(mesh.Material.SpecularTexture)
	}
	return out
}
