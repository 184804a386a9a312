package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	onResize []func(width, height int)
}

type WindowConfig struct {
	Width         int
	Height        int
	Title         string
	Resizable     bool
	VSync         bool
	Fullscreen    bool
	CaptureCursor bool
	// Requested OpenGL core profile version.
	GLMajor, GLMinor int
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:         1280,
		Height:        720,
		Title:         "LearnOpenGL",
		Resizable:     true,
		VSync:         true,
		Fullscreen:    false,
		CaptureCursor: true,
		GLMajor:       4,
		GLMinor:       1,
	}
}

// NewWindow creates a window with a current OpenGL core profile context.
// Function pointers still have to be loaded by the GL backend.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, config.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, config.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()

	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if config.CaptureCursor {
		handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		for _, cb := range window.onResize {
			cb(width, height)
		}
	})

	return window, nil
}

// OnResize registers a framebuffer resize handler.
func (w *Window) OnResize(cb func(width, height int)) {
	w.onResize = append(w.onResize, cb)
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// AspectRatio returns width/height of the framebuffer, or 1 while minimised.
func (w *Window) AspectRatio() float32 {
	width, height := w.GetFramebufferSize()
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Time returns seconds since GLFW was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

const (
	KeyComma  = int(glfw.KeyComma)
	KeyPeriod = int(glfw.KeyPeriod)
	KeyA      = int(glfw.KeyA)
	KeyD      = int(glfw.KeyD)
	KeyE      = int(glfw.KeyE)
	KeyF      = int(glfw.KeyF)
	KeyO      = int(glfw.KeyO)
	KeyS      = int(glfw.KeyS)
	KeyW      = int(glfw.KeyW)
	KeyEscape = int(glfw.KeyEscape)
	KeyRight  = int(glfw.KeyRight)
	KeyLeft   = int(glfw.KeyLeft)
	KeyDown   = int(glfw.KeyDown)
	KeyUp     = int(glfw.KeyUp)
)
