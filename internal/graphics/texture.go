// Package graphics holds decoded textures and the atlases the renderer
// samples from. Textures are straight-alpha RGBA buffers of a fixed size;
// once built they are never modified, so they are shared by pointer.
package graphics

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Texture is an immutable straight-alpha image.
type Texture struct {
	img *image.NRGBA
}

// NewTexture converts src to a size x size texture using nearest-neighbour
// resampling. A size of zero or less keeps the source dimensions.
func NewTexture(src image.Image, size int) *Texture {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if size > 0 {
		w, h = size, size
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return &Texture{img: dst}
}

// FromNRGBA wraps img without copying. The caller must not modify it
// afterwards. The image must start at the origin.
func FromNRGBA(img *image.NRGBA) *Texture {
	return &Texture{img: img}
}

func (t *Texture) Width() int  { return t.img.Rect.Dx() }
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Pix returns the raw pixel bytes, 4 per texel, row-major. Read only.
func (t *Texture) Pix() []uint8 { return t.img.Pix }

// Stride returns the byte distance between rows.
func (t *Texture) Stride() int { return t.img.Stride }

// At returns the texel at (x, y) with coordinates clamped to the texture.
func (t *Texture) At(x, y int) color.NRGBA {
	w, h := t.Width(), t.Height()
	if x < 0 {
		x = 0
	} else if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= h {
		y = h - 1
	}
	i := y*t.img.Stride + x*4
	p := t.img.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}
