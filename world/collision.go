package world

import "github.com/go-gl/mathgl/mgl32"

// DefaultPadding is the half-width of the player's footprint.
const DefaultPadding = 0.25

// ResolveMove advances pos by dir*step and pushes the padded footprint back
// out of solid tiles adjacent to the tile pos started in. X is resolved
// against the right or left neighbour, Z against the top (-Z) or bottom
// (+Z) neighbour, each only when moving toward it. ok is false when the
// resolved position is still not a legal place to stand.
func (m *TileMap) ResolveMove(pos, dir mgl32.Vec3, step, padding float32) (next mgl32.Vec3, ok bool) {
	from := TileCoords(pos)
	next = pos.Add(dir.Mul(step))

	right := Coord{Col: from.Col + 1, Row: from.Row}
	left := Coord{Col: from.Col - 1, Row: from.Row}
	if dir[0] > 0 && m.solidAt(right) {
		edge := right.Center()[0] - tileCenterOffset
		if reach := next[0] + padding; reach > edge {
			next[0] -= reach - edge
		}
	} else if dir[0] < 0 && m.solidAt(left) {
		edge := left.Center()[0] + tileCenterOffset
		if reach := next[0] - padding; reach < edge {
			next[0] += edge - reach
		}
	}

	top := Coord{Col: from.Col, Row: from.Row - 1}
	bottom := Coord{Col: from.Col, Row: from.Row + 1}
	if dir[2] < 0 && m.solidAt(top) {
		edge := top.Center()[2] + tileCenterOffset
		if reach := next[2] - padding; reach < edge {
			next[2] += edge - reach
		}
	} else if dir[2] > 0 && m.solidAt(bottom) {
		edge := bottom.Center()[2] - tileCenterOffset
		if reach := next[2] + padding; reach > edge {
			next[2] -= reach - edge
		}
	}

	return next, m.CanMoveTo(next)
}

func (m *TileMap) solidAt(c Coord) bool {
	return m.TileAt(c.Col, c.Row).Solid()
}

// Player is a walker confined to a TileMap.
type Player struct {
	Position mgl32.Vec3
	Speed    float32 // world units per second
	Padding  float32
}

// NewPlayer places a player at pos with the default speed and padding.
func NewPlayer(pos mgl32.Vec3) *Player {
	return &Player{Position: pos, Speed: 2.5, Padding: DefaultPadding}
}

// Walk moves the player along dir for dt seconds. dir is normalised first;
// a zero direction is a no-op. Moves that end in an illegal spot are
// rejected and leave the player where it was.
func (p *Player) Walk(m *TileMap, dir mgl32.Vec3, dt float32) bool {
	if dir.Len() == 0 {
		return false
	}
	next, ok := m.ResolveMove(p.Position, dir.Normalize(), dt*p.Speed, p.Padding)
	if !ok {
		return false
	}
	p.Position = next
	return true
}
