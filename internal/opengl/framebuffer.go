package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is an off-screen render target: an RGBA colour texture that
// can be sampled afterwards plus a combined depth/stencil renderbuffer.
type Framebuffer struct {
	FBO      uint32
	ColorTex uint32
	RBO      uint32
	Width    int32
	Height   int32
}

// NewFramebuffer allocates a width×height target and checks completeness.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{}
	gl.GenFramebuffers(1, &fb.FBO)
	gl.GenTextures(1, &fb.ColorTex)
	gl.GenRenderbuffers(1, &fb.RBO)

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)

	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.ColorTex, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.RBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, fb.RBO)

	fb.allocate(int32(width), int32(height))

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("framebuffer incomplete: status=0x%X", status)
	}
	return fb, nil
}

// allocate (re)sizes both attachments. The texture and renderbuffer must
// already be bound.
func (fb *Framebuffer) allocate(width, height int32) {
	fb.Width, fb.Height = width, height
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
}

// Resize reallocates storage when the window size changed. Zero sizes, as
// reported for minimised windows, are ignored.
func (fb *Framebuffer) Resize(width, height int) {
	w, h := int32(width), int32(height)
	if w <= 0 || h <= 0 || (w == fb.Width && h == fb.Height) {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.RBO)
	fb.allocate(w, h)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Bind directs rendering into the framebuffer and sets the viewport to it.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
	gl.Viewport(0, 0, fb.Width, fb.Height)
}

// Unbind restores the default framebuffer with a width×height viewport.
func (fb *Framebuffer) Unbind(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// DrawToScreen samples the colour attachment onto quad, a mesh spanning
// clip space, with the screen shader. scale shrinks the quad toward the
// centre; 1 fills the viewport.
func (fb *Framebuffer) DrawToScreen(p *Program, quad *GPUMesh, scale float32) {
	gl.Disable(gl.DEPTH_TEST)
	p.Use()
	p.SetInt("screenTexture", 0)
	p.SetFloat("scale", scale)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	quad.Draw()
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy frees GPU resources.
func (fb *Framebuffer) Destroy() {
	if fb.FBO != 0 {
		gl.DeleteFramebuffers(1, &fb.FBO)
		fb.FBO = 0
	}
	if fb.ColorTex != 0 {
		gl.DeleteTextures(1, &fb.ColorTex)
		fb.ColorTex = 0
	}
	if fb.RBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.RBO)
		fb.RBO = 0
	}
}
