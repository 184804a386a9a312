package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
)

// cubeFace describes one side of a unit cube: its outward normal and two
// in-plane axes with u × v = normal, so corners emitted in (u,v) order wind
// counter-clockwise when seen from outside.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

var cubeFaces = []cubeFace{
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
}

// quad corner order in (u,v) sign space, two triangles
var quadCorners = [6][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{1, 1}, {-1, 1}, {-1, -1},
}

// Cube returns a unit cube centred on the origin as 36 unindexed vertices
// with per-face normals and 0..1 texture coordinates on every face.
func Cube() *Mesh {
	verts := make([]core.Vertex, 0, 36)
	for _, f := range cubeFaces {
		for _, c := range quadCorners {
			pos := f.normal.Mul(0.5).Add(f.u.Mul(c[0] * 0.5)).Add(f.v.Mul(c[1] * 0.5))
			verts = append(verts, core.Vertex{
				Position: pos,
				Normal:   f.normal,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
	}
	return CreateMeshFromData("cube", verts, nil)
}

// Quad returns a unit square in the XY plane facing +Z, as 6 vertices.
// It is used for window panes and, scaled by 2, for full-screen passes.
func Quad() *Mesh {
	verts := make([]core.Vertex, 0, 6)
	for _, c := range quadCorners {
		verts = append(verts, core.Vertex{
			Position: mgl32.Vec3{c[0] * 0.5, c[1] * 0.5, 0},
			Normal:   mgl32.Vec3{0, 0, 1},
			UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
		})
	}
	return CreateMeshFromData("quad", verts, nil)
}

// IndexedQuad is the slightly skewed four-corner quad of the first texture
// tutorial, drawn through an element buffer.
func IndexedQuad() *Mesh {
	verts := []core.Vertex{
		{Position: mgl32.Vec3{0.6, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{0.5, -0.6, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{-0.6, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{-0.5, 0.6, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}},
	}
	return CreateMeshFromData("indexed_quad", verts, []uint32{0, 1, 3, 1, 2, 3})
}
