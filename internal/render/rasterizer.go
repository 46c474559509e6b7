package render

import (
	"image"
	"math"

	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raycast"
)

// Rasterizer projects depth buffer hits into vertical textured wall strips.
type Rasterizer struct {
	// ProjectionScale scales wall height: a wall at distance d is
	// ProjectionScale*height/d pixels tall.
	ProjectionScale float64
	Shading         Shading
}

// NewRasterizer creates a rasterizer with unit projection scale.
func NewRasterizer(shading Shading) *Rasterizer {
	return &Rasterizer{ProjectionScale: 1, Shading: shading}
}

// Draw writes one strip per hit. Hit i covers columns [i*W/n, (i+1)*W/n).
// Tile ID t samples wall texture t-1. Misses and unknown textures leave the
// backdrop showing. Writes are opaque.
func (r *Rasterizer) Draw(dst *image.RGBA, buf raycast.DepthBuffer, walls *graphics.Atlas) {
	bounds := dst.Bounds()
	W, H := bounds.Dx(), bounds.Dy()
	n := len(buf)
	if n == 0 || W <= 0 || H <= 0 {
		return
	}

	scale := r.ProjectionScale
	if scale <= 0 {
		scale = 1
	}
	projection := scale * float64(H)

	for i, hit := range buf {
		if hit.Missed() {
			continue
		}
		tex, ok := walls.At(int(hit.TextureIndex) - 1)
		if !ok {
			continue
		}

		x0, x1 := i*W/n, (i+1)*W/n
		if x0 >= x1 {
			continue
		}

		lineHeight := projection / math.Max(hit.Distance, MinDistance)
		top := float64(H)/2 - lineHeight/2
		// Clamp to the viewport; V still maps from the unclamped top.
		y0 := mathutil.IntMax(int(math.Ceil(top)), 0)
		y1 := mathutil.IntMin(int(math.Ceil(top+lineHeight)), H)

		texW, texH := tex.Width(), tex.Height()
		texX := mathutil.IntClamp(int(hit.TextureU*float64(texW)), 0, texW-1)
		factor := r.Shading.Factor(hit.Distance, hit.Side)

		texPix, texStride := tex.Pix(), tex.Stride()
		for y := y0; y < y1; y++ {
			v := (float64(y) - top) / lineHeight
			texY := mathutil.IntClamp(int(v*float64(texH)), 0, texH-1)
			ti := texY*texStride + texX*4
			cr := uint8(float64(texPix[ti]) * factor)
			cg := uint8(float64(texPix[ti+1]) * factor)
			cb := uint8(float64(texPix[ti+2]) * factor)

			row := dst.PixOffset(bounds.Min.X+x0, bounds.Min.Y+y)
			for x := x0; x < x1; x++ {
				p := dst.Pix[row : row+4 : row+4]
				p[0], p[1], p[2], p[3] = cr, cg, cb, 255
				row += 4
			}
		}
	}
}
