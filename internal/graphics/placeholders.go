package graphics

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"
)

// Placeholder kinds. Wall kinds are opaque, sprite kinds have transparent
// surroundings.
const (
	PlaceholderBrick   = "brick"
	PlaceholderWood    = "wood"
	PlaceholderMetal   = "metal"
	PlaceholderBarrel  = "barrel"
	PlaceholderPillar  = "pillar"
	PlaceholderLight   = "light"
	PlaceholderSky     = "sky"
	PlaceholderChecker = "checker"
)

// PlaceholderKind picks a placeholder for a texture file from its name,
// e.g. "assets/brick2.png" gives "brick".
func PlaceholderKind(path string) string {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	for _, kind := range []string{
		PlaceholderBrick, PlaceholderWood, PlaceholderMetal,
		PlaceholderBarrel, PlaceholderPillar, PlaceholderLight, PlaceholderSky,
	} {
		if strings.Contains(base, kind) {
			return kind
		}
	}
	return PlaceholderChecker
}

// Placeholder draws a procedural texture of the given kind.
func Placeholder(kind string, size int) *Texture {
	if size <= 0 {
		size = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	switch kind {
	case PlaceholderBrick:
		fillBrick(img, size)
	case PlaceholderWood:
		fillWood(img, size)
	case PlaceholderMetal:
		fillMetal(img, size)
	case PlaceholderBarrel:
		fillBarrel(img, size)
	case PlaceholderPillar:
		fillPillar(img, size)
	case PlaceholderLight:
		fillLight(img, size)
	case PlaceholderSky:
		fillSky(img, size)
	default:
		fillChecker(img, size)
	}
	return FromNRGBA(img)
}

func fillBrick(img *image.NRGBA, size int) {
	brick := color.NRGBA{150, 60, 45, 255}
	mortar := color.NRGBA{180, 175, 165, 255}
	rowH := size / 4
	if rowH < 2 {
		rowH = 2
	}
	brickW := size / 2
	if brickW < 2 {
		brickW = 2
	}
	for y := 0; y < size; y++ {
		row := y / rowH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		for x := 0; x < size; x++ {
			c := brick
			if y%rowH == 0 || (x+offset)%brickW == 0 {
				c = mortar
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillWood(img *image.NRGBA, size int) {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Vertical planks with a grain wave
			grain := math.Sin(float64(y)*0.35+float64(x%(size/4+1))*0.9) * 18
			c := color.NRGBA{uint8(120 + grain), uint8(80 + grain/2), 40, 255}
			if x%(size/4+1) == 0 {
				c = color.NRGBA{70, 45, 20, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillMetal(img *image.NRGBA, size int) {
	step := size / 4
	if step < 2 {
		step = 2
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(110 + (x+y)%16)
			c := color.NRGBA{v, v, v + 10, 255}
			if x%step == step/2 && y%step == step/2 {
				c = color.NRGBA{60, 60, 70, 255} // rivet
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillBarrel(img *image.NRGBA, size int) {
	cx := float64(size-1) / 2
	halfW := float64(size) * 0.3
	for y := size / 4; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x) - cx)
			if dx > halfW {
				continue
			}
			shade := 1 - dx/halfW*0.5
			c := color.NRGBA{uint8(140 * shade), uint8(90 * shade), uint8(40 * shade), 255}
			if (y-size/4)%(size/6+1) == 0 {
				c = color.NRGBA{80, 80, 80, 255} // hoop
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillPillar(img *image.NRGBA, size int) {
	cx := float64(size-1) / 2
	halfW := float64(size) * 0.15
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x) - cx)
			if dx > halfW && y > size/10 && y < size-size/10 {
				continue
			}
			if dx > halfW*2 {
				continue
			}
			v := uint8(200 - 80*dx/(halfW*2))
			img.SetNRGBA(x, y, color.NRGBA{v, v, v - 10, 255})
		}
	}
}

// fillLight draws a lamp with a half-transparent glow around it.
func fillLight(img *image.NRGBA, size int) {
	cx := float64(size-1) / 2
	cy := float64(size) / 6
	r := float64(size) / 10
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case d <= r:
				img.SetNRGBA(x, y, color.NRGBA{200, 255, 200, 255})
			case d <= r*2.5:
				img.SetNRGBA(x, y, color.NRGBA{120, 255, 120, 128})
			}
		}
	}
}

func fillSky(img *image.NRGBA, size int) {
	for y := 0; y < size; y++ {
		t := float64(y) / float64(size)
		c := color.NRGBA{uint8(70 + 90*t), uint8(110 + 80*t), uint8(200 + 40*t), 255}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillChecker(img *image.NRGBA, size int) {
	cell := size / 8
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{128, 0, 128, 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{40, 40, 40, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
}
