package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tile is the integer ID stored in each cell of a TileMap.
type Tile uint32

const (
	Empty  Tile = iota // walkable floor
	Wall               // solid cube
	Window             // solid, drawn as a transparent pane
	Pillar             // solid, not drawn
)

// Solid reports whether the tile blocks movement and rays.
func (t Tile) Solid() bool { return t > Empty }

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Window:
		return "window"
	case Pillar:
		return "pillar"
	}
	return fmt.Sprintf("tile(%d)", uint32(t))
}

var (
	ErrOutOfBounds = errors.New("tile coordinate out of bounds")
	ErrBadLayout   = errors.New("invalid tile layout")
)

// TileSize is the world-space edge length of one tile.
const TileSize = 1.0

// tileCenterOffset shifts world positions so tile centres land on integers.
const tileCenterOffset = TileSize / 2

// DefaultLayout is the 8x8 room the world demo starts in. Rows run along +Z,
// columns along +X.
var DefaultLayout = [][]Tile{
	{3, 2, 2, 2, 2, 2, 2, 3},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1},
}

// Coord addresses a single tile.
type Coord struct {
	Col, Row int
}

// Center returns the world-space centre of the tile on the ground plane.
func (c Coord) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.Col) * TileSize, 0, float32(c.Row) * TileSize}
}

// TileMap is a fixed-size grid of tiles stored row-major.
type TileMap struct {
	cols, rows int
	tiles      []Tile
}

// NewTileMap copies layout into a new map. Every row must have the same,
// non-zero length.
func NewTileMap(layout [][]Tile) (*TileMap, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrBadLayout)
	}
	cols := len(layout[0])
	m := &TileMap{
		cols:  cols,
		rows:  len(layout),
		tiles: make([]Tile, 0, cols*len(layout)),
	}
	for r, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrBadLayout, r, len(row), cols)
		}
		m.tiles = append(m.tiles, row...)
	}
	return m, nil
}

// ParseLayout converts plain integer rows (as read from config) into tiles.
func ParseLayout(rows [][]int) ([][]Tile, error) {
	layout := make([][]Tile, len(rows))
	for r, row := range rows {
		layout[r] = make([]Tile, len(row))
		for c, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: negative tile %d at col %d row %d", ErrBadLayout, v, c, r)
			}
			if uint64(v) > math.MaxUint32 {
				return nil, fmt.Errorf("%w: tile %d at col %d row %d does not fit 32 bits", ErrBadLayout, v, c, r)
			}
			layout[r][c] = Tile(v)
		}
	}
	return layout, nil
}

// DefaultMap returns a fresh copy of DefaultLayout.
func DefaultMap() *TileMap {
	m, err := NewTileMap(DefaultLayout)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *TileMap) Cols() int { return m.cols }
func (m *TileMap) Rows() int { return m.rows }

func (m *TileMap) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.cols && row < m.rows
}

// TileAt returns the tile at (col,row). Anything outside the map is Empty.
func (m *TileMap) TileAt(col, row int) Tile {
	if !m.inBounds(col, row) {
		return Empty
	}
	return m.tiles[row*m.cols+col]
}

// SetTileAt overwrites the tile at (col,row).
func (m *TileMap) SetTileAt(col, row int, t Tile) error {
	if !m.inBounds(col, row) {
		return fmt.Errorf("%w: col %d row %d", ErrOutOfBounds, col, row)
	}
	m.tiles[row*m.cols+col] = t
	return nil
}

// TileCoords returns the tile containing pos on the XZ plane.
func TileCoords(pos mgl32.Vec3) Coord {
	return Coord{
		Col: int(math.Floor(float64((pos[0] + tileCenterOffset) / TileSize))),
		Row: int(math.Floor(float64((pos[2] + tileCenterOffset) / TileSize))),
	}
}

// PositionFromIndex converts a row-major tile index into its world centre.
func (m *TileMap) PositionFromIndex(index int) mgl32.Vec3 {
	return Coord{Col: index % m.cols, Row: index / m.cols}.Center()
}

// CanMoveTo reports whether pos is a legal place to stand: inside the map
// and not strictly inside a solid tile.
func (m *TileMap) CanMoveTo(pos mgl32.Vec3) bool {
	c := TileCoords(pos)
	if !m.inBounds(c.Col, c.Row) {
		return false
	}
	if !m.TileAt(c.Col, c.Row).Solid() {
		return true
	}
	center := c.Center()
	insideX := pos[0] > center[0]-tileCenterOffset && pos[0] < center[0]+tileCenterOffset
	insideZ := pos[2] > center[2]-tileCenterOffset && pos[2] < center[2]+tileCenterOffset
	return !(insideX && insideZ)
}

// Each calls fn for every tile in row-major order.
func (m *TileMap) Each(fn func(c Coord, t Tile)) {
	for i, t := range m.tiles {
		fn(Coord{Col: i % m.cols, Row: i / m.cols}, t)
	}
}

// WindowPositions returns the centre of every Window tile in row-major order.
func (m *TileMap) WindowPositions() []mgl32.Vec3 {
	var out []mgl32.Vec3
	m.Each(func(c Coord, t Tile) {
		if t == Window {
			out = append(out, c.Center())
		}
	})
	return out
}
