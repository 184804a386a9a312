package input

// Source is the slice of a window the input manager polls.
type Source interface {
	IsKeyPressed(key int) bool
	GetCursorPos() (float64, float64)
}

// Manager tracks per-frame key and mouse state. Keys must be registered with
// Watch before they report edges.
type Manager struct {
	// Mouse state
	MouseDeltaX, MouseDeltaY float64
	lastMouseX, lastMouseY   float64
	ScrollDelta              float64

	keys     map[int]bool
	keysPrev map[int]bool

	src        Source
	firstFrame bool
}

func NewManager(src Source) *Manager {
	return &Manager{
		keys:       make(map[int]bool),
		keysPrev:   make(map[int]bool),
		src:        src,
		firstFrame: true,
	}
}

// Watch registers keys to be polled every Update.
func (m *Manager) Watch(keys ...int) {
	for _, k := range keys {
		if _, ok := m.keys[k]; !ok {
			m.keys[k] = false
		}
	}
}

// Scroll accumulates wheel movement until EndFrame.
func (m *Manager) Scroll(yoff float64) {
	m.ScrollDelta += yoff
}

// Update polls the source. Call once per frame before reading state.
func (m *Manager) Update() {
	x, y := m.src.GetCursorPos()
	if m.firstFrame {
		m.lastMouseX = x
		m.lastMouseY = y
		m.firstFrame = false
	}
	m.MouseDeltaX = x - m.lastMouseX
	// Screen Y grows downward; positive delta means "look up".
	m.MouseDeltaY = m.lastMouseY - y
	m.lastMouseX = x
	m.lastMouseY = y

	for k, down := range m.keys {
		m.keysPrev[k] = down
		m.keys[k] = m.src.IsKeyPressed(k)
	}
}

// EndFrame clears per-frame state
func (m *Manager) EndFrame() {
	m.ScrollDelta = 0
}

func (m *Manager) IsKeyDown(key int) bool {
	return m.keys[key]
}

// IsKeyPressed reports a key that went down this frame.
func (m *Manager) IsKeyPressed(key int) bool {
	return m.keys[key] && !m.keysPrev[key]
}

// IsKeyReleased reports a key that came up this frame. Actions that should
// fire once per tap (ray cast, flashlight) trigger on release.
func (m *Manager) IsKeyReleased(key int) bool {
	return !m.keys[key] && m.keysPrev[key]
}
