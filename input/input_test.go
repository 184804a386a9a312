package input

import "testing"

type fakeSource struct {
	down map[int]bool
	x, y float64
}

func (f *fakeSource) IsKeyPressed(key int) bool        { return f.down[key] }
func (f *fakeSource) GetCursorPos() (float64, float64) { return f.x, f.y }

func TestKeyEdges(t *testing.T) {
	src := &fakeSource{down: map[int]bool{}}
	m := NewManager(src)
	m.Watch(1, 2)

	src.down[1] = true
	m.Update()
	if !m.IsKeyPressed(1) || !m.IsKeyDown(1) {
		t.Errorf("frame 1: expected key pressed and down")
	}
	if m.IsKeyReleased(1) {
		t.Errorf("frame 1: unexpected release")
	}

	m.Update()
	if m.IsKeyPressed(1) {
		t.Errorf("frame 2: press should only fire once")
	}

	src.down[1] = false
	m.Update()
	if !m.IsKeyReleased(1) {
		t.Errorf("frame 3: expected release")
	}
	m.Update()
	if m.IsKeyReleased(1) {
		t.Errorf("frame 4: release should only fire once")
	}
}

func TestUnwatchedKeysAreIgnored(t *testing.T) {
	src := &fakeSource{down: map[int]bool{7: true}}
	m := NewManager(src)
	m.Update()
	if m.IsKeyDown(7) {
		t.Errorf("unwatched key reported as down")
	}
}

func TestMouseDelta(t *testing.T) {
	src := &fakeSource{x: 100, y: 100}
	m := NewManager(src)
	m.Update()
	if m.MouseDeltaX != 0 || m.MouseDeltaY != 0 {
		t.Errorf("first frame: expected zero delta, got %v,%v", m.MouseDeltaX, m.MouseDeltaY)
	}
	src.x, src.y = 110, 90
	m.Update()
	if m.MouseDeltaX != 10 || m.MouseDeltaY != 10 {
		t.Errorf("second frame: expected 10,10, got %v,%v", m.MouseDeltaX, m.MouseDeltaY)
	}
}

func TestScroll(t *testing.T) {
	m := NewManager(&fakeSource{})
	m.Scroll(1)
	m.Scroll(0.5)
	if m.ScrollDelta != 1.5 {
		t.Errorf("Scroll: expected 1.5, got %v", m.ScrollDelta)
	}
	m.EndFrame()
	if m.ScrollDelta != 0 {
		t.Errorf("EndFrame: scroll not cleared")
	}
}
