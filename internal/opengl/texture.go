package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"tilegl/scene"
)

// UploadTexture uploads a scene.Texture to the GPU with repeating wrap and
// mipmaps and sets its GLID field. Already uploaded textures are left alone.
// The OpenGL context must be current.
func UploadTexture(tex *scene.Texture) error {
	return uploadTexture(tex, gl.REPEAT)
}

// UploadClampedTexture is UploadTexture with edge clamping, for images with
// transparent borders that would otherwise bleed across the seam.
func UploadClampedTexture(tex *scene.Texture) error {
	return uploadTexture(tex, gl.CLAMP_TO_EDGE)
}

func uploadTexture(tex *scene.Texture, wrap int32) error {
	if tex == nil {
		return fmt.Errorf("nil texture")
	}
	if tex.GLID != 0 {
		return nil
	}
	if len(tex.Pixels) == 0 {
		return fmt.Errorf("texture %q has no pixel data", tex.Name)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&tex.Pixels[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	tex.GLID = id
	return nil
}

// BindTexture binds tex to texture unit `unit`. A nil texture unbinds it.
func BindTexture(unit uint32, tex *scene.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	if tex == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
}

// DeleteTexture frees a previously uploaded GPU texture and zeroes its GLID.
func DeleteTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.GLID)
	tex.GLID = 0
}
