package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major). Row 0 is the
	// bottom of the image when the texture was loaded flipped.
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// LoadTexture reads a PNG, JPEG, BMP or TIFF file. With flip set the rows are
// reversed so the first row is the bottom of the image, which is where
// OpenGL expects texture coordinate v=0.
func LoadTexture(path string, flip bool) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	tex, err := DecodeTexture(path, f, flip)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return tex, nil
}

// DecodeTexture decodes any registered image format from r.
func DecodeTexture(name string, r io.Reader, flip bool) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	tex := &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}
	if flip {
		tex.FlipVertical()
	}
	return tex, nil
}

func decodeImageBytes(name string, data []byte, flip bool) (*Texture, error) {
	return DecodeTexture(name, bytes.NewReader(data), flip)
}

// FlipVertical reverses the row order in place.
func (t *Texture) FlipVertical() {
	stride := t.Width * 4
	tmp := make([]byte, stride)
	for top, bottom := 0, t.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := t.Pixels[top*stride : (top+1)*stride]
		b := t.Pixels[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values in 0..255.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}
