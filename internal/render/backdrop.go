package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"gridcaster/internal/camera"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
)

// SkyRepeats is how many times a sky texture tiles around a full turn.
const SkyRepeats = 4

// Backdrop paints the ceiling and floor halves before walls are drawn.
// Every pixel it writes is opaque.
type Backdrop struct {
	CeilingTop     colorful.Color
	CeilingHorizon colorful.Color
	FloorHorizon   colorful.Color
	FloorBottom    colorful.Color
	// Sky, when set, replaces the ceiling gradient and pans with the heading.
	Sky *graphics.Texture

	rows   []color.RGBA // gradient per row, cached for height
	height int
}

// NewBackdrop creates a gradient backdrop. Colors convert through
// colorful.MakeColor; fully transparent inputs become black.
func NewBackdrop(ceilTop, ceilHorizon, floorHorizon, floorBottom color.Color) *Backdrop {
	return &Backdrop{
		CeilingTop:     makeColor(ceilTop),
		CeilingHorizon: makeColor(ceilHorizon),
		FloorHorizon:   makeColor(floorHorizon),
		FloorBottom:    makeColor(floorBottom),
	}
}

// DefaultBackdrop is a dusk sky over a dark floor.
func DefaultBackdrop() *Backdrop {
	return NewBackdrop(
		color.RGBA{40, 60, 110, 255},
		color.RGBA{150, 170, 200, 255},
		color.RGBA{70, 70, 70, 255},
		color.RGBA{25, 25, 25, 255},
	)
}

// WithSky returns a copy of b that draws sky. b is left untouched.
func (b *Backdrop) WithSky(sky *graphics.Texture) *Backdrop {
	c := *b
	c.Sky = sky
	c.rows, c.height = nil, 0
	return &c
}

func makeColor(c color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}
	}
	return cf
}

// gradient builds the per-row colors for a frame height, blending in
// CIE L*a*b* so the horizon fades evenly.
func (b *Backdrop) gradient(h int) []color.RGBA {
	if b.height == h && len(b.rows) == h {
		return b.rows
	}
	b.rows = make([]color.RGBA, h)
	half := h / 2
	for y := 0; y < h; y++ {
		var c colorful.Color
		if y < half {
			c = b.CeilingTop.BlendLab(b.CeilingHorizon, float64(y)/float64(mathutil.IntMax(half, 1)))
		} else {
			c = b.FloorHorizon.BlendLab(b.FloorBottom, float64(y-half)/float64(mathutil.IntMax(h-half, 1)))
		}
		r, g, bl := c.Clamped().RGB255()
		b.rows[y] = color.RGBA{r, g, bl, 255}
	}
	b.height = h
	return b.rows
}

// Fill paints dst. The camera is used to pan the sky texture.
func (b *Backdrop) Fill(dst *image.RGBA, cam camera.Camera) {
	bounds := dst.Bounds()
	W, H := bounds.Dx(), bounds.Dy()
	if W <= 0 || H <= 0 {
		return
	}
	rows := b.gradient(H)
	half := H / 2

	for y := 0; y < H; y++ {
		row := dst.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		if y < half && b.Sky != nil {
			b.fillSkyRow(dst.Pix[row:row+W*4], y, half, W, cam)
			continue
		}
		c := rows[y]
		for x := 0; x < W; x++ {
			p := dst.Pix[row : row+4 : row+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
			row += 4
		}
	}
}

// fillSkyRow samples one row of the sky. Turning right moves the sky left.
func (b *Backdrop) fillSkyRow(pix []uint8, y, half, W int, cam camera.Camera) {
	texW, texH := b.Sky.Width(), b.Sky.Height()
	angle := camera.HeadingOf(cam).Angle
	offset := int(angle / 360 * float64(SkyRepeats*texW))
	texY := y * texH / half
	texPix, texStride := b.Sky.Pix(), b.Sky.Stride()
	for x := 0; x < W; x++ {
		texX := (x*texW/W + offset) % texW
		if texX < 0 {
			texX += texW
		}
		ti := texY*texStride + texX*4
		i := x * 4
		pix[i], pix[i+1], pix[i+2], pix[i+3] = texPix[ti], texPix[ti+1], texPix[ti+2], 255
	}
}
