package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxMarkers bounds the number of grid crossings a single cast visits.
const MaxMarkers = 10

// crossingNudge pushes each sample just past the grid line it reached so the
// sample falls inside the next tile.
const crossingNudge = 0.001

// RayHit is the outcome of CastRay.
type RayHit struct {
	Hit     bool
	Tile    Coord
	Markers []mgl32.Vec3 // sample point at each grid crossing, in order
}

// CastRay walks a ray from start along dir over the XZ plane, one grid-line
// crossing at a time (2D DDA), until it enters a solid tile, travels further
// than maxDist, or has recorded MaxMarkers samples. The Y component of dir
// contributes to distance but never to tile stepping.
func (m *TileMap) CastRay(start, dir mgl32.Vec3, maxDist float32) RayHit {
	var res RayHit
	if dir[0] == 0 && dir[2] == 0 {
		return res
	}

	tile := TileCoords(start)
	stepX, boundX := gridStep(dir[0])
	stepZ, boundZ := gridStep(dir[2])

	cur := start
	var t float32
	for len(res.Markers) < MaxMarkers {
		dtX := axisDistance(float32(tile.Col+boundX), cur[0]+tileCenterOffset, dir[0])
		dtZ := axisDistance(float32(tile.Row+boundZ), cur[2]+tileCenterOffset, dir[2])

		if dtX < dtZ {
			t += dtX + crossingNudge
			tile.Col += stepX
		} else {
			t += dtZ + crossingNudge
			tile.Row += stepZ
		}

		if dir.Mul(t).Len() > maxDist {
			return res
		}

		cur = start.Add(dir.Mul(t))
		res.Markers = append(res.Markers, cur)

		c := TileCoords(cur)
		if m.TileAt(c.Col, c.Row).Solid() {
			res.Hit = true
			res.Tile = c
			return res
		}
	}
	return res
}

// gridStep returns the tile step for a direction component and the offset,
// relative to the current tile index, of the next grid line in that
// direction (in centre-shifted coordinates).
func gridStep(d float32) (step, bound int) {
	if d > 0 {
		return 1, 1
	}
	return -1, 0
}

// axisDistance is the ray parameter needed to go from pos to the grid line
// at bound. Axes the ray does not move along are never crossed.
func axisDistance(bound, pos, d float32) float32 {
	if d == 0 {
		return float32(math.Inf(1))
	}
	return (bound - pos) / d
}
