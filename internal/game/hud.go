package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"gridcaster/internal/camera"
	"gridcaster/internal/monitoring"
)

var (
	hudBackground = color.RGBA{0, 0, 0, 150}
	hudText       = color.RGBA{230, 230, 230, 255}
	hudAlert      = color.RGBA{255, 90, 90, 255}
)

type hudLine struct {
	text  string
	color color.Color
}

func (g *Game) hudLines() []hudLine {
	m := g.scene.Monitor().GetCurrentMetrics()
	cam := g.scene.Camera()
	heading := camera.HeadingOf(cam)

	ms := func(s monitoring.Stage) float64 {
		return float64(m.StageTimes[s].Microseconds()) / 1000
	}

	lines := []hudLine{
		{fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()), hudText},
		{fmt.Sprintf("frame %.2fms avg %.2fms", float64(m.FrameTime.Microseconds())/1000, float64(m.AvgFrameTime.Microseconds())/1000), hudText},
		{fmt.Sprintf("bg %.2f cast %.2f wall %.2f spr %.2f",
			ms(monitoring.StageBackdrop), ms(monitoring.StageCast), ms(monitoring.StageRasterize), ms(monitoring.StageComposite)), hudText},
		{fmt.Sprintf("%s  %d cols  %d sprites", g.scene.Mode(), m.Columns, m.Sprites), hudText},
		{fmt.Sprintf("pos %.2f,%.2f  %.0f deg  fov %.0f", cam.Pos.X, cam.Pos.Y, heading.Angle, heading.FOV), hudText},
	}
	for _, alert := range g.scene.Monitor().CheckPerformanceAlerts() {
		lines = append(lines, hudLine{fmt.Sprintf("%s: %.1f", alert.Type, alert.Value), hudAlert})
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	lines := g.hudLines()
	lineHeight := face.Metrics().Height.Ceil()

	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l.text).Ceil(); w > width {
			width = w
		}
	}
	vector.DrawFilledRect(screen, 2, 2, float32(width+8), float32(len(lines)*lineHeight+6), hudBackground, false)

	y := 4 + face.Ascent
	for _, l := range lines {
		ebitext.Draw(screen, l.text, face, 6, y, l.color)
		y += lineHeight
	}
}
