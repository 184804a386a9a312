package demo

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/input"
	"tilegl/scene"
	"tilegl/world"
)

func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

type fakeSource struct {
	down map[int]bool
}

func (f *fakeSource) IsKeyPressed(key int) bool        { return f.down[key] }
func (f *fakeSource) GetCursorPos() (float64, float64) { return 0, 0 }

type fakeSurface struct {
	closed bool
	frames int
	now    float64
	// onFrame runs after every swap.
	onFrame func(frame int)
}

func (s *fakeSurface) ShouldClose() bool     { return s.closed }
func (s *fakeSurface) SetShouldClose(v bool) { s.closed = v }
func (s *fakeSurface) PollEvents()           {}
func (s *fakeSurface) Time() float64         { s.now += 0.016; return s.now }
func (s *fakeSurface) SwapBuffers() {
	s.frames++
	if s.onFrame != nil {
		s.onFrame(s.frames)
	}
}

type countingDemo struct {
	updates, renders int
	dts              []float32
}

func (d *countingDemo) Name() string          { return "counting" }
func (d *countingDemo) Init(c *Context) error { return nil }
func (d *countingDemo) Update(c *Context, dt float32) {
	d.updates++
	d.dts = append(d.dts, dt)
}
func (d *countingDemo) Render(c *Context) { d.renders++ }
func (d *countingDemo) Destroy()          {}

func newTestContext(src *fakeSource) *Context {
	return &Context{
		Input: input.NewManager(src),
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestLoopStopsOnEscape(t *testing.T) {
	src := &fakeSource{down: map[int]bool{}}
	surf := &fakeSurface{}
	surf.onFrame = func(frame int) {
		if frame == 3 {
			src.down[core.KeyEscape] = true
		}
	}
	d := &countingDemo{}

	frames := loop(context.Background(), surf, newTestContext(src), d)
	if frames != 4 {
		t.Errorf("frames: expected 4, got %d", frames)
	}
	if d.updates != 4 || d.renders != 4 {
		t.Errorf("expected 4 updates and renders, got %d/%d", d.updates, d.renders)
	}
	if d.dts[0] != 0 {
		t.Errorf("first dt: expected 0, got %v", d.dts[0])
	}
	if d.dts[1] <= 0 || d.dts[1] > maxFrameDelta {
		t.Errorf("second dt: expected (0,%v], got %v", maxFrameDelta, d.dts[1])
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	surf := &fakeSurface{}
	surf.onFrame = func(frame int) {
		if frame == 2 {
			cancel()
		}
	}
	d := &countingDemo{}

	frames := loop(ctx, surf, newTestContext(&fakeSource{down: map[int]bool{}}), d)
	if frames != 2 {
		t.Errorf("frames: expected 2, got %d", frames)
	}
	if !surf.closed {
		t.Errorf("cancel should mark the window for closing")
	}
}

func TestNewDemo(t *testing.T) {
	for _, name := range Names() {
		d, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if d.Name() != name {
			t.Errorf("New(%q).Name(): got %q", name, d.Name())
		}
	}
	if _, err := New("nope"); err == nil {
		t.Errorf("New(nope): expected error")
	}
}

func TestWalkDirection(t *testing.T) {
	src := &fakeSource{down: map[int]bool{}}
	in := input.NewManager(src)
	watchMovement(in)
	cam := scene.NewCamera(mgl32.Vec3{})
	cam.ProcessMouseMovement(0, 300, true) // look up, walking stays flat

	src.down[core.KeyComma] = true
	in.Update()
	dir := walkDirection(in, cam)
	if !near(dir, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("forward: expected -Z, got %v", dir)
	}

	src.down[core.KeyE] = true
	in.Update()
	dir = walkDirection(in, cam)
	if !near(dir, mgl32.Vec3{1, 0, -1}) {
		t.Errorf("forward+right: expected (1,0,-1), got %v", dir)
	}

	src.down[core.KeyO] = true
	src.down[core.KeyComma] = false
	src.down[core.KeyE] = false
	src.down[core.KeyW] = true
	in.Update()
	if dir := walkDirection(in, cam); dir.Len() > 1e-4 {
		t.Errorf("opposite keys: expected no movement, got %v", dir)
	}
}

func TestFlyMovesCamera(t *testing.T) {
	src := &fakeSource{down: map[int]bool{core.KeyD: true}}
	in := input.NewManager(src)
	watchMovement(in)
	in.Update()

	cam := scene.NewCamera(mgl32.Vec3{})
	fly(in, cam, 1)
	if !near(cam.Position, mgl32.Vec3{cam.Speed, 0, 0}) {
		t.Errorf("fly right: got %v", cam.Position)
	}
}

func TestPulse(t *testing.T) {
	if pulse(0) != 0.5 {
		t.Errorf("pulse(0): expected 0.5, got %v", pulse(0))
	}
	for _, ts := range []float64{0.3, 1.7, 4, 100} {
		if p := pulse(ts); p < 0 || p > 1 {
			t.Errorf("pulse(%v): %v out of range", ts, p)
		}
	}
}

func TestNewWorldMap(t *testing.T) {
	m, err := newWorldMap(core.WorldSettings{})
	if err != nil || m.Cols() != 8 {
		t.Fatalf("empty config: expected default map, got %v, %v", m, err)
	}
	m, err = newWorldMap(core.WorldSettings{Map: [][]int{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}}})
	if err != nil {
		t.Fatalf("newWorldMap: %v", err)
	}
	if m.Cols() != 3 || m.TileAt(1, 1) != world.Empty {
		t.Errorf("newWorldMap: unexpected map")
	}
	if _, err := newWorldMap(core.WorldSettings{Map: [][]int{{1, 1}, {1}}}); err == nil {
		t.Errorf("ragged map: expected error")
	}
}

func TestPlanetModel(t *testing.T) {
	center := planetModel(0).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !near(center, planetAt) {
		t.Errorf("planet centre: expected %v, got %v", planetAt, center)
	}
	// Points on the spin axis stay put while the planet turns.
	axis := planetAxis.Normalize()
	want := planetAt.Add(axis.Mul(planetScale))
	for _, tm := range []float64{0, 1.3, 4} {
		got := planetModel(tm).Mul4x1(axis.Vec4(1)).Vec3()
		if !near(got, want) {
			t.Errorf("planet axis at t=%v: expected %v, got %v", tm, want, got)
		}
	}
	edge := planetModel(2).Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if d := edge.Sub(planetAt).Len(); d < planetScale-1e-4 || d > planetScale+1e-4 {
		t.Errorf("planet scale: expected radius %v, got %v", planetScale, d)
	}
}

func TestSuitModel(t *testing.T) {
	got := suitModel().Mul4x1(mgl32.Vec4{0, 10, 0, 1}).Vec3()
	want := mgl32.Vec3{2, 0.5, 1}
	if !near(got, want) {
		t.Errorf("suit: expected %v, got %v", want, got)
	}
}

func TestCrateModel(t *testing.T) {
	if crateModel(0, 10) != mgl32.Ident4() {
		t.Errorf("crate 0 should not move or spin")
	}
	m := crateModel(1, 0)
	if got := m.Col(3).Vec3(); got != crates[1] {
		t.Errorf("crate 1 translation: expected %v, got %v", crates[1], got)
	}
}

func TestWindowTitle(t *testing.T) {
	if got := windowTitle("LearnOpenGL", "world"); got != "LearnOpenGL - world" {
		t.Errorf("windowTitle: expected %q, got %q", "LearnOpenGL - world", got)
	}
	if got := windowTitle("", "hello"); got != "hello" {
		t.Errorf("windowTitle: expected %q, got %q", "hello", got)
	}
}
