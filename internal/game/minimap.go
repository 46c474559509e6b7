package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

const (
	minimapMargin = 4
	minimapRays   = 24
)

var (
	minimapFloor  = color.RGBA{20, 20, 20, 180}
	minimapWall   = color.RGBA{160, 160, 160, 220}
	minimapRay    = color.RGBA{255, 220, 80, 160}
	minimapPlayer = color.RGBA{50, 200, 255, 255}
	minimapSprite = color.RGBA{255, 80, 80, 255}
)

// drawMinimap draws the grid in the top-right corner with the view fan.
func (g *Game) drawMinimap(screen *ebiten.Image) {
	grid := g.scene.Grid()
	gw, gh := grid.Width(), grid.Height()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	cell := mathutil.IntMax(mathutil.IntMin(sw, sh)/(3*mathutil.IntMax(gw, gh)), 2)
	ox := float32(sw - gw*cell - minimapMargin)
	oy := float32(minimapMargin)
	c := float32(cell)

	vector.DrawFilledRect(screen, ox, oy, float32(gw)*c, float32(gh)*c, minimapFloor, false)
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			if id, _ := grid.At(x, y); id != world.TileEmpty {
				vector.DrawFilledRect(screen, ox+float32(x)*c, oy+float32(y)*c, c, c, minimapWall, false)
			}
		}
	}

	toScreen := func(wx, wy float64) (float32, float32) {
		return ox + float32(wx)*c, oy + float32(wy)*c
	}

	cam := g.scene.Camera()
	reach := float64(mathutil.IntMax(gw, gh))
	for _, r := range g.scene.Rays(minimapRays, reach) {
		x0, y0 := toScreen(r.Start.X, r.Start.Y)
		x1, y1 := toScreen(r.End.X, r.End.Y)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, minimapRay, true)
	}
	for _, s := range g.scene.Sprites() {
		sx, sy := toScreen(s.Pos.X, s.Pos.Y)
		vector.DrawFilledCircle(screen, sx, sy, c/4+1, minimapSprite, true)
	}
	px, py := toScreen(cam.Pos.X, cam.Pos.Y)
	vector.DrawFilledCircle(screen, px, py, c/3+1, minimapPlayer, true)
}
