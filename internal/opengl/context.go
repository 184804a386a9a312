package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Init loads GL function pointers for the current context and sets the
// state every demo starts from. Must be called after the GLFW window
// context is made current.
func Init(log *slog.Logger) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return nil
}

// SetViewport resizes the default framebuffer viewport.
func SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear fills the bound framebuffer. stencil also resets the stencil buffer.
func Clear(r, g, b float32, stencil bool) {
	gl.ClearColor(r, g, b, 1)
	mask := uint32(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if stencil {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(mask)
}

// EnableBlending turns on standard alpha blending for transparent passes.
func EnableBlending(on bool) {
	if on {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		return
	}
	gl.Disable(gl.BLEND)
}
