package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"gridcaster/internal/camera"
	"gridcaster/internal/geom"
	"gridcaster/internal/graphics"
	"gridcaster/internal/raycast"
	"gridcaster/internal/world"
)

func solidTexture(w, h int, c color.NRGBA) *graphics.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return graphics.FromNRGBA(img)
}

// rowTexture is 1 texel wide with one color per row.
func rowTexture(rows ...color.NRGBA) *graphics.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 1, len(rows)))
	for y, c := range rows {
		img.SetNRGBA(0, y, c)
	}
	return graphics.FromNRGBA(img)
}

func filledFrame(w, h int, c color.RGBA) *image.RGBA {
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetRGBA(x, y, c)
		}
	}
	return f
}

func wallHit(dist float64, side world.Side) raycast.RaycastHit {
	return raycast.RaycastHit{Distance: dist, Side: side, TextureIndex: 1}
}

var backdropGray = color.RGBA{10, 10, 10, 255}

func TestShadingFactor(t *testing.T) {
	s := Shading{MaxDistance: 10, BrightnessMin: 0.2, SideShade: 0.5}
	tests := []struct {
		name string
		dist float64
		side world.Side
		want float64
	}{
		{"near", 0, world.SideX, 1},
		{"mid", 5, world.SideX, 0.5},
		{"far clamps", 20, world.SideX, 0.2},
		{"mid side y", 5, world.SideY, 0.25},
		{"far side y", 20, world.SideY, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Factor(tt.dist, tt.side); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestRasterizer_ShadesAndFillsColumn(t *testing.T) {
	walls := graphics.NewAtlas(solidTexture(4, 4, color.NRGBA{200, 100, 50, 255}))
	r := NewRasterizer(Shading{MaxDistance: 10, SideShade: 0.5})

	frame := filledFrame(2, 10, backdropGray)
	buf := raycast.DepthBuffer{wallHit(1, world.SideX), wallHit(1, world.SideY)}
	r.Draw(frame, buf, walls)

	for y := 0; y < 10; y++ {
		if got := frame.RGBAAt(0, y); got != (color.RGBA{180, 90, 45, 255}) {
			t.Fatalf("Row %d: expected SideX color 180,90,45, got %v", y, got)
		}
		if got := frame.RGBAAt(1, y); got != (color.RGBA{90, 45, 22, 255}) {
			t.Fatalf("Row %d: expected SideY color 90,45,22, got %v", y, got)
		}
	}
}

func TestRasterizer_FarWallLeavesBackdrop(t *testing.T) {
	walls := graphics.NewAtlas(solidTexture(4, 4, color.NRGBA{255, 255, 255, 255}))
	r := NewRasterizer(Shading{})

	frame := filledFrame(1, 10, backdropGray)
	r.Draw(frame, raycast.DepthBuffer{wallHit(5, world.SideX)}, walls)

	// Height 10/5 = 2 rows centred on the horizon
	for y := 0; y < 10; y++ {
		wall := y == 4 || y == 5
		got := frame.RGBAAt(0, y)
		if wall && got.R != 255 {
			t.Errorf("Row %d: expected wall, got %v", y, got)
		}
		if !wall && got != backdropGray {
			t.Errorf("Row %d: expected backdrop, got %v", y, got)
		}
	}
}

func TestRasterizer_NearWallMapsFromUnclampedTop(t *testing.T) {
	c0 := color.NRGBA{10, 0, 0, 255}
	c1 := color.NRGBA{20, 0, 0, 255}
	c2 := color.NRGBA{30, 0, 0, 255}
	c3 := color.NRGBA{40, 0, 0, 255}
	walls := graphics.NewAtlas(rowTexture(c0, c1, c2, c3))
	r := NewRasterizer(Shading{})

	frame := filledFrame(1, 10, backdropGray)
	// Height 20 on a 10 pixel viewport: only the middle half of the texture shows.
	r.Draw(frame, raycast.DepthBuffer{wallHit(0.5, world.SideX)}, walls)

	if got := frame.RGBAAt(0, 0); got.R != c1.R {
		t.Errorf("Expected top row to sample texel row 1, got %v", got)
	}
	if got := frame.RGBAAt(0, 9); got.R != c2.R {
		t.Errorf("Expected bottom row to sample texel row 2, got %v", got)
	}
}

func TestRasterizer_ColumnSpansAndMisses(t *testing.T) {
	walls := graphics.NewAtlas(
		solidTexture(2, 2, color.NRGBA{255, 0, 0, 255}),
		solidTexture(2, 2, color.NRGBA{0, 0, 255, 255}),
	)
	r := NewRasterizer(Shading{})
	frame := filledFrame(5, 4, backdropGray)

	blue := wallHit(1, world.SideX)
	blue.TextureIndex = 2
	buf := raycast.DepthBuffer{
		wallHit(1, world.SideX),
		blue,
		{Distance: math.Inf(1)},
	}
	r.Draw(frame, buf, walls)

	// Spans: [0,1) red, [1,3) blue, [3,5) untouched
	want := []color.RGBA{
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{0, 0, 255, 255},
		backdropGray,
		backdropGray,
	}
	for x, w := range want {
		if got := frame.RGBAAt(x, 2); got != w {
			t.Errorf("Column %d: expected %v, got %v", x, w, got)
		}
	}
}

func TestRasterizer_UnknownTextureSkipped(t *testing.T) {
	r := NewRasterizer(Shading{})
	frame := filledFrame(1, 4, backdropGray)
	hit := wallHit(1, world.SideX)
	hit.TextureIndex = 9
	r.Draw(frame, raycast.DepthBuffer{hit}, graphics.NewAtlas())
	if got := frame.RGBAAt(0, 2); got != backdropGray {
		t.Errorf("Expected backdrop for an unknown texture, got %v", got)
	}
}

// spriteCamera looks east from (5,5); a sprite at (6,5) sits at depth 1.
func spriteCamera(t *testing.T) camera.Camera {
	t.Helper()
	cam, err := camera.New(geom.V(5, 5), geom.V(1, 0), 0.66)
	if err != nil {
		t.Fatalf("camera.New: %v", err)
	}
	return cam
}

func depthBuffer(n int, dist float64) raycast.DepthBuffer {
	buf := raycast.NewDepthBuffer(n)
	for i := range buf {
		buf[i] = wallHit(dist, world.SideX)
	}
	return buf
}

func TestCompositor_OccludedByNearerWall(t *testing.T) {
	sprites := graphics.NewAtlas(solidTexture(4, 4, color.NRGBA{255, 0, 0, 255}))
	c := NewCompositor(Shading{})
	frame := filledFrame(20, 20, backdropGray)

	c.Draw(frame, depthBuffer(20, 0.5), spriteCamera(t), []Sprite{{Pos: geom.V(6, 5)}}, sprites)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if frame.RGBAAt(x, y) != backdropGray {
				t.Fatalf("Expected sprite behind the wall to be hidden, pixel (%d,%d) = %v", x, y, frame.RGBAAt(x, y))
			}
		}
	}
}

func TestCompositor_OpaqueInFront(t *testing.T) {
	sprites := graphics.NewAtlas(solidTexture(4, 4, color.NRGBA{255, 0, 0, 255}))
	c := NewCompositor(Shading{})
	frame := filledFrame(20, 20, backdropGray)

	c.Draw(frame, depthBuffer(20, 10), spriteCamera(t), []Sprite{{Pos: geom.V(6, 5)}}, sprites)
	// Depth 1 on a 20 pixel viewport covers the whole frame.
	if got := frame.RGBAAt(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected opaque sprite pixel, got %v", got)
	}
	if got := frame.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected sprite to reach the corner, got %v", got)
	}
}

func TestCompositor_TransparentAndPartialAlpha(t *testing.T) {
	tex := rowTexture(
		color.NRGBA{255, 255, 255, 0},
		color.NRGBA{200, 200, 200, 128},
	)
	c := NewCompositor(Shading{})
	frame := filledFrame(20, 20, color.RGBA{0, 0, 0, 255})

	c.Draw(frame, depthBuffer(20, 10), spriteCamera(t), []Sprite{{Pos: geom.V(6, 5)}}, graphics.NewAtlas(tex))

	if got := frame.RGBAAt(10, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected clear texels to keep the background, got %v", got)
	}
	got := frame.RGBAAt(10, 15)
	if got.R != 100 || got.G != 100 || got.B != 100 {
		t.Errorf("Expected half blend to 100, got %v", got)
	}
	if got.A != 255 {
		t.Errorf("Expected blend over opaque background to stay opaque, got alpha %d", got.A)
	}
}

func TestCompositor_PartialAlphaOverTransparent(t *testing.T) {
	tex := solidTexture(2, 2, color.NRGBA{200, 200, 200, 128})
	c := NewCompositor(Shading{})
	frame := NewFrame(20, 20)

	c.Draw(frame, depthBuffer(20, 10), spriteCamera(t), []Sprite{{Pos: geom.V(6, 5)}}, graphics.NewAtlas(tex))
	if got := frame.RGBAAt(10, 10); got.A != 128 {
		t.Errorf("Expected alpha to follow the sprite over a clear background, got %d", got.A)
	}
}

func TestCompositor_BehindCamera(t *testing.T) {
	sprites := graphics.NewAtlas(solidTexture(4, 4, color.NRGBA{255, 0, 0, 255}))
	c := NewCompositor(Shading{})
	frame := filledFrame(20, 20, backdropGray)

	c.Draw(frame, depthBuffer(20, 10), spriteCamera(t), []Sprite{{Pos: geom.V(3, 5)}}, sprites)
	if got := frame.RGBAAt(10, 10); got != backdropGray {
		t.Errorf("Expected sprite behind the camera to be skipped, got %v", got)
	}
}

func TestCompositor_OrderIndependent(t *testing.T) {
	atlas := graphics.NewAtlas(
		solidTexture(4, 4, color.NRGBA{255, 0, 0, 255}),
		solidTexture(4, 4, color.NRGBA{0, 255, 0, 128}),
	)
	c := NewCompositor(Shading{})
	cam := spriteCamera(t)

	render := func(sprites []Sprite) *image.RGBA {
		frame := filledFrame(20, 20, backdropGray)
		c.Draw(frame, depthBuffer(20, 10), cam, sprites, atlas)
		return frame
	}

	near := Sprite{Pos: geom.V(6, 5), Texture: 1}
	far := Sprite{Pos: geom.V(8, 5), Texture: 0}
	a := render([]Sprite{near, far})
	b := render([]Sprite{far, near})

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("Expected identical frames regardless of sprite order")
	}
	// Far red drawn first, near translucent green blended over it.
	got := a.RGBAAt(10, 10)
	if got.R == 0 || got.G == 0 {
		t.Errorf("Expected red and green mixed at the centre, got %v", got)
	}
}

func TestSortSprites(t *testing.T) {
	sprites := []Sprite{
		{Pos: geom.V(1, 0), Texture: 2},
		{Pos: geom.V(3, 0), Texture: 0},
		{Pos: geom.V(0, 1), Texture: 1},
		{Pos: geom.V(-1, 0), Texture: 3},
	}
	SortSprites(sprites, geom.V(0, 0))

	if sprites[0].Pos != geom.V(3, 0) || sprites[0].Dist != 3 {
		t.Errorf("Expected farthest sprite first, got %+v", sprites[0])
	}
	// Remaining three are all at distance 1, ordered by X then Y.
	want := []geom.Vec2{geom.V(-1, 0), geom.V(0, 1), geom.V(1, 0)}
	for i, w := range want {
		if sprites[i+1].Pos != w {
			t.Errorf("Tie %d: expected %v, got %v", i, w, sprites[i+1].Pos)
		}
	}
}

func TestBackdrop_GradientIsOpaque(t *testing.T) {
	b := NewBackdrop(
		color.RGBA{0, 0, 255, 255},
		color.RGBA{255, 255, 255, 255},
		color.RGBA{100, 100, 100, 255},
		color.RGBA{0, 0, 0, 255},
	)
	frame := NewFrame(8, 20)
	b.Fill(frame, spriteCamera(t))

	for y := 0; y < 20; y++ {
		for x := 0; x < 8; x++ {
			if frame.RGBAAt(x, y).A != 255 {
				t.Fatalf("Expected opaque backdrop at (%d,%d)", x, y)
			}
		}
	}
	if top := frame.RGBAAt(0, 0); !closeRGB(top, color.RGBA{0, 0, 255, 255}) {
		t.Errorf("Expected top row to be the ceiling top color, got %v", top)
	}
	if floor := frame.RGBAAt(0, 10); !closeRGB(floor, color.RGBA{100, 100, 100, 255}) {
		t.Errorf("Expected horizon row to be the floor horizon color, got %v", floor)
	}
}

func TestBackdrop_SkyPansWithHeading(t *testing.T) {
	sky := image.NewNRGBA(image.Rect(0, 0, 16, 4))
	for x := 0; x < 16; x++ {
		for y := 0; y < 4; y++ {
			sky.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), 0, 0, 255})
		}
	}
	b := DefaultBackdrop()
	b.Sky = graphics.FromNRGBA(sky)

	cam := spriteCamera(t)
	first := NewFrame(16, 8)
	b.Fill(first, cam)

	cam.Rotate(math.Pi / 8)
	second := NewFrame(16, 8)
	b.Fill(second, cam)

	if bytes.Equal(first.Pix[:16*4*4], second.Pix[:16*4*4]) {
		t.Error("Expected the sky to move after turning")
	}
	// Floor half is unaffected by the heading.
	if !bytes.Equal(first.Pix[16*4*4:], second.Pix[16*4*4:]) {
		t.Error("Expected the floor gradient to ignore the heading")
	}
}

func TestBackdrop_TurningRightSlidesSkyLeft(t *testing.T) {
	sky := image.NewNRGBA(image.Rect(0, 0, 16, 4))
	for x := 0; x < 16; x++ {
		for y := 0; y < 4; y++ {
			sky.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), 0, 0, 255})
		}
	}
	b := DefaultBackdrop().WithSky(graphics.FromNRGBA(sky))

	// Facing east the left edge samples texel 0. A small right turn brings
	// in texels from the right of the strip, a left turn wraps to its end.
	right := spriteCamera(t)
	right.Rotate(math.Pi / 16)
	frame := NewFrame(16, 8)
	b.Fill(frame, right)
	if r := frame.RGBAAt(0, 0).R; r == 0 || r >= 128 {
		t.Errorf("Expected a right turn to pull in a low texel, got red %d", r)
	}

	left := spriteCamera(t)
	left.Rotate(-math.Pi / 16)
	b.Fill(frame, left)
	if r := frame.RGBAAt(0, 0).R; r < 128 {
		t.Errorf("Expected a left turn to wrap to the strip's end, got red %d", r)
	}
}

func TestBackdrop_WithSkyCopies(t *testing.T) {
	base := DefaultBackdrop()
	sky := base.WithSky(graphics.FromNRGBA(image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	if base.Sky != nil {
		t.Error("Expected the original backdrop to keep no sky")
	}
	if sky.Sky == nil || sky.CeilingTop != base.CeilingTop {
		t.Errorf("Expected a copy with sky and the same colors, got %+v", sky)
	}
}

func closeRGB(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 1 && d(a.G, b.G) <= 1 && d(a.B, b.B) <= 1
}
