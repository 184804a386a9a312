package world

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewTileMapRejectsBadLayouts(t *testing.T) {
	cases := map[string][][]Tile{
		"empty":  {},
		"no-col": {{}},
		"ragged": {{0, 0}, {0}},
	}
	for name, layout := range cases {
		if _, err := NewTileMap(layout); !errors.Is(err, ErrBadLayout) {
			t.Errorf("%s: expected ErrBadLayout, got %v", name, err)
		}
	}
}

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout([][]int{{1, 0}, {2, 3}})
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if layout[1][0] != Window || layout[1][1] != Pillar {
		t.Errorf("ParseLayout: unexpected tiles %v", layout)
	}
	if _, err := ParseLayout([][]int{{-1}}); !errors.Is(err, ErrBadLayout) {
		t.Errorf("ParseLayout: expected ErrBadLayout for negative tile, got %v", err)
	}
	if _, err := ParseLayout([][]int{{math.MaxUint32 + 1, math.MaxUint32 + 2}}); !errors.Is(err, ErrBadLayout) {
		t.Errorf("ParseLayout: expected ErrBadLayout for tile past 32 bits, got %v", err)
	}
	if layout, err := ParseLayout([][]int{{math.MaxUint32}}); err != nil || layout[0][0] != Tile(math.MaxUint32) {
		t.Errorf("ParseLayout: expected largest tile to pass, got %v, %v", layout, err)
	}
}

func TestTileAtOutOfRange(t *testing.T) {
	m := DefaultMap()
	for _, c := range []Coord{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if got := m.TileAt(c.Col, c.Row); got != Empty {
			t.Errorf("TileAt(%d,%d): expected empty, got %v", c.Col, c.Row, got)
		}
	}
	if got := m.TileAt(4, 3); got != Wall {
		t.Errorf("TileAt(4,3): expected wall, got %v", got)
	}
	if got := m.TileAt(1, 0); got != Window {
		t.Errorf("TileAt(1,0): expected window, got %v", got)
	}
}

func TestSetTileAt(t *testing.T) {
	m := DefaultMap()
	if err := m.SetTileAt(4, 3, Empty); err != nil {
		t.Fatalf("SetTileAt: %v", err)
	}
	if m.TileAt(4, 3) != Empty {
		t.Errorf("SetTileAt: tile not cleared")
	}
	if err := m.SetTileAt(8, 0, Wall); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetTileAt: expected ErrOutOfBounds, got %v", err)
	}
	if DefaultMap().TileAt(4, 3) != Wall {
		t.Errorf("SetTileAt: DefaultLayout was modified")
	}
}

func TestTileCoords(t *testing.T) {
	cases := []struct {
		pos  mgl32.Vec3
		want Coord
	}{
		{mgl32.Vec3{0, 0, 0}, Coord{0, 0}},
		{mgl32.Vec3{0.49, 3, 0.49}, Coord{0, 0}},
		{mgl32.Vec3{0.5, 0, 1.5}, Coord{1, 2}},
		{mgl32.Vec3{-0.5, 0, 0}, Coord{0, 0}},
		{mgl32.Vec3{-0.51, 0, -2}, Coord{-1, -2}},
	}
	for _, c := range cases {
		if got := TileCoords(c.pos); got != c.want {
			t.Errorf("TileCoords(%v): expected %v, got %v", c.pos, c.want, got)
		}
	}
}

func TestPositionFromIndex(t *testing.T) {
	m := DefaultMap()
	got := m.PositionFromIndex(10)
	want := mgl32.Vec3{2, 0, 1}
	if got != want {
		t.Errorf("PositionFromIndex: expected %v, got %v", want, got)
	}
}

func TestCanMoveTo(t *testing.T) {
	m := DefaultMap()
	cases := []struct {
		name string
		pos  mgl32.Vec3
		want bool
	}{
		{"floor", mgl32.Vec3{2, 0, 4}, true},
		{"inside wall", mgl32.Vec3{4, 0, 3}, false},
		{"inside window", mgl32.Vec3{3, 0, 0}, false},
		{"negative col", mgl32.Vec3{-1, 0, 2}, false},
		{"past last row", mgl32.Vec3{2, 0, 9}, false},
		{"wall left edge", mgl32.Vec3{3.5, 0, 3}, true},
	}
	for _, c := range cases {
		if got := m.CanMoveTo(c.pos); got != c.want {
			t.Errorf("CanMoveTo %s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestWindowPositions(t *testing.T) {
	got := DefaultMap().WindowPositions()
	if len(got) != 6 {
		t.Fatalf("WindowPositions: expected 6, got %d", len(got))
	}
	if got[0] != (mgl32.Vec3{1, 0, 0}) || got[5] != (mgl32.Vec3{6, 0, 0}) {
		t.Errorf("WindowPositions: unexpected order %v", got)
	}
}

func TestCastRayHitsWall(t *testing.T) {
	m := DefaultMap()
	res := m.CastRay(mgl32.Vec3{2, 0, 2}, mgl32.Vec3{1, 0, 0}, 5)
	if !res.Hit {
		t.Fatalf("CastRay: expected a hit")
	}
	if res.Tile != (Coord{7, 2}) {
		t.Errorf("CastRay: expected tile {7 2}, got %v", res.Tile)
	}
	if len(res.Markers) != 5 {
		t.Fatalf("CastRay: expected 5 markers, got %d", len(res.Markers))
	}
	for i, mk := range res.Markers {
		want := 2.501 + float32(i)
		if !approx(mk[0], want) || mk[2] != 2 {
			t.Errorf("CastRay marker %d: expected x=%v, got %v", i, want, mk)
		}
	}
}

func TestCastRayHitsTileAtOrigin(t *testing.T) {
	m := DefaultMap()
	res := m.CastRay(mgl32.Vec3{1, 0, 1}, mgl32.Vec3{-1, 0, -1}.Normalize(), 5)
	if !res.Hit || res.Tile != (Coord{0, 0}) {
		t.Fatalf("CastRay: expected hit on {0 0}, got %+v", res)
	}

	res = m.CastRay(mgl32.Vec3{2, 0, 2}, mgl32.Vec3{0, 0, -1}, 5)
	if !res.Hit || res.Tile != (Coord{2, 0}) {
		t.Errorf("CastRay: expected hit on window {2 0}, got %+v", res)
	}
	if len(res.Markers) != 2 {
		t.Errorf("CastRay: expected 2 markers, got %d", len(res.Markers))
	}
}

func TestCastRayStartingInsideSolid(t *testing.T) {
	m := DefaultMap()
	res := m.CastRay(mgl32.Vec3{4, 0, 3}, mgl32.Vec3{1, 0, 0}, 5)
	if !res.Hit || res.Tile != (Coord{5, 3}) {
		t.Fatalf("CastRay: expected hit on {5 3}, got %+v", res)
	}
	if len(res.Markers) != 1 {
		t.Errorf("CastRay: expected 1 marker, got %d", len(res.Markers))
	}
}

func TestCastRayRespectsDistance(t *testing.T) {
	m := DefaultMap()
	res := m.CastRay(mgl32.Vec3{2, 0, 2}, mgl32.Vec3{1, 0, 0}, 3)
	if res.Hit {
		t.Errorf("CastRay: expected a miss, got hit on %v", res.Tile)
	}
	if len(res.Markers) != 3 {
		t.Errorf("CastRay: expected 3 markers before the limit, got %d", len(res.Markers))
	}
}

func TestCastRayMarkerLimit(t *testing.T) {
	row := make([]Tile, 40)
	m, err := NewTileMap([][]Tile{row})
	if err != nil {
		t.Fatal(err)
	}
	res := m.CastRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 100)
	if res.Hit {
		t.Errorf("CastRay: expected no hit on an empty map")
	}
	if len(res.Markers) != MaxMarkers {
		t.Errorf("CastRay: expected %d markers, got %d", MaxMarkers, len(res.Markers))
	}
}

func TestCastRayZeroDirection(t *testing.T) {
	res := DefaultMap().CastRay(mgl32.Vec3{2, 0, 2}, mgl32.Vec3{0, 1, 0}, 5)
	if res.Hit || len(res.Markers) != 0 {
		t.Errorf("CastRay: expected empty result for vertical ray, got %+v", res)
	}
}

func TestResolveMovePushesOut(t *testing.T) {
	m := DefaultMap()
	cases := []struct {
		name  string
		start mgl32.Vec3
		dir   mgl32.Vec3
		want  mgl32.Vec3
	}{
		{"right", mgl32.Vec3{6, 0, 2}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{6.25, 0, 2}},
		{"left", mgl32.Vec3{1, 0, 2}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0.75, 0, 2}},
		{"top", mgl32.Vec3{2, 0, 1}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{2, 0, 0.75}},
		{"bottom", mgl32.Vec3{3, 0, 6}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{3, 0, 6.25}},
		{"free", mgl32.Vec3{2, 0, 2}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{2, 0, 2.3}},
	}
	for _, c := range cases {
		got, ok := m.ResolveMove(c.start, c.dir, 0.3, DefaultPadding)
		if !ok {
			t.Errorf("ResolveMove %s: move rejected", c.name)
		}
		if !approx(got[0], c.want[0]) || !approx(got[2], c.want[2]) {
			t.Errorf("ResolveMove %s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestResolveMoveOnlyPushesMovingAxes(t *testing.T) {
	m := DefaultMap()
	// The footprint overlaps the wall at col 7 on X, but only Z moves.
	got, ok := m.ResolveMove(mgl32.Vec3{6.4, 0, 3}, mgl32.Vec3{0, 0, -1}, 0.1, DefaultPadding)
	if !ok {
		t.Fatalf("ResolveMove: move rejected")
	}
	want := mgl32.Vec3{6.4, 0, 2.9}
	if !approx(got[0], want[0]) || !approx(got[2], want[2]) {
		t.Errorf("ResolveMove: expected %v, got %v", want, got)
	}
}

func TestPlayerWalk(t *testing.T) {
	m := DefaultMap()
	p := NewPlayer(mgl32.Vec3{2, 0, 4})

	if p.Walk(m, mgl32.Vec3{}, 1) {
		t.Errorf("Walk: zero direction should not move")
	}
	if !p.Walk(m, mgl32.Vec3{0, 0, 2}, 0.1) {
		t.Fatalf("Walk: expected move to succeed")
	}
	if !approx(p.Position[2], 4.25) {
		t.Errorf("Walk: expected z=4.25, got %v", p.Position[2])
	}

	// Keep walking into the wall at col 2 row 5; the footprint stops at its edge.
	for i := 0; i < 20; i++ {
		p.Walk(m, mgl32.Vec3{0, 0, 1}, 0.1)
	}
	if p.Position[2] > 4.25+1e-4 {
		t.Errorf("Walk: walked through wall, z=%v", p.Position[2])
	}
}
