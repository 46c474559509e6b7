package render

import (
	"image"
	"sort"

	"gridcaster/internal/camera"
	"gridcaster/internal/geom"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raycast"
	"gridcaster/internal/world"
)

// Sprite is a camera-facing billboard at a world position.
type Sprite struct {
	Pos     geom.Vec2
	Texture int     // sprite atlas slot
	Dist    float64 // distance to the camera, set by SortSprites
}

// SortSprites orders sprites far to near from pos, updating Dist. Equal
// distances fall back to position and texture so the order never depends
// on how the slice was built.
func SortSprites(sprites []Sprite, pos geom.Vec2) {
	for i := range sprites {
		sprites[i].Dist = geom.Distance(sprites[i].Pos, pos)
	}
	sort.Slice(sprites, func(i, j int) bool {
		a, b := sprites[i], sprites[j]
		if a.Dist != b.Dist {
			return a.Dist > b.Dist
		}
		if a.Pos.X != b.Pos.X {
			return a.Pos.X < b.Pos.X
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y < b.Pos.Y
		}
		return a.Texture < b.Texture
	})
}

// Compositor draws sprites over a rendered wall frame, column by column,
// hidden wherever a wall in the depth buffer is nearer.
type Compositor struct {
	ProjectionScale float64
	Shading         Shading
}

// NewCompositor creates a compositor with unit projection scale.
func NewCompositor(shading Shading) *Compositor {
	return &Compositor{ProjectionScale: 1, Shading: shading}
}

// Draw sorts sprites in place and composites them far to near into dst.
// The depth buffer is only read.
func (c *Compositor) Draw(dst *image.RGBA, buf raycast.DepthBuffer, cam camera.Camera, sprites []Sprite, atlas *graphics.Atlas) {
	if len(buf) == 0 || len(sprites) == 0 {
		return
	}
	SortSprites(sprites, cam.Pos)
	for i := range sprites {
		c.drawSprite(dst, buf, cam, sprites[i], atlas)
	}
}

func (c *Compositor) drawSprite(dst *image.RGBA, buf raycast.DepthBuffer, cam camera.Camera, s Sprite, atlas *graphics.Atlas) {
	tex, ok := atlas.At(s.Texture)
	if !ok {
		return
	}
	transformX, transformY, ok := cam.Transform(s.Pos)
	// Behind the camera plane, or close enough that the camera is inside it
	if !ok || transformY < MinDistance {
		return
	}

	bounds := dst.Bounds()
	W, H := bounds.Dx(), bounds.Dy()
	scale := c.ProjectionScale
	if scale <= 0 {
		scale = 1
	}

	screenX := int(float64(W) / 2 * (1 + transformX/transformY))
	spriteH := mathutil.IntMax(mathutil.IntAbs(int(scale*float64(H)/transformY)), 1)
	spriteW := spriteH

	startY := mathutil.IntMax(-spriteH/2+H/2, 0)
	endY := mathutil.IntMin(spriteH/2+H/2, H)
	left := -spriteW/2 + screenX
	startX := mathutil.IntMax(left, 0)
	endX := mathutil.IntMin(spriteW/2+screenX, W)

	texW, texH := tex.Width(), tex.Height()
	texPix, texStride := tex.Pix(), tex.Stride()
	factor := c.Shading.Factor(transformY, world.SideX)

	for stripe := startX; stripe < endX; stripe++ {
		if transformY >= buf[stripe*len(buf)/W].Distance {
			continue
		}
		texX := (256 * (stripe - left) * texW / spriteW) / 256
		if texX < 0 || texX >= texW {
			continue
		}
		for y := startY; y < endY; y++ {
			// 256 and 128 keep the vertical mapping in integers
			d := y*256 - H*128 + spriteH*128
			texY := ((d * texH) / spriteH) / 256
			if texY < 0 || texY >= texH {
				continue
			}
			ti := texY*texStride + texX*4
			a := texPix[ti+3]
			if a == 0 {
				continue
			}
			r := uint8(float64(texPix[ti]) * factor)
			g := uint8(float64(texPix[ti+1]) * factor)
			b := uint8(float64(texPix[ti+2]) * factor)

			di := dst.PixOffset(bounds.Min.X+stripe, bounds.Min.Y+y)
			p := dst.Pix[di : di+4 : di+4]
			if a == 255 {
				p[0], p[1], p[2], p[3] = r, g, b, 255
				continue
			}

			fa := float64(a) / 255
			p[0] = uint8(float64(r)*fa + float64(p[0])*(1-fa))
			p[1] = uint8(float64(g)*fa + float64(p[1])*(1-fa))
			p[2] = uint8(float64(b)*fa + float64(p[2])*(1-fa))
			// Over an opaque background the result stays opaque
			if p[3] != 255 {
				p[3] = a
			}
		}
	}
}
