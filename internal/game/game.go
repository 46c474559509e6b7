// Package game is the ebiten frontend: it feeds keyboard state to a scene
// and presents the rendered frame with an optional HUD and minimap.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/internal/config"
	"gridcaster/internal/input"
	"gridcaster/internal/scene"
)

// Game implements ebiten.Game around a scene.
type Game struct {
	config   *config.Config
	scene    *scene.Scene
	bindings input.Bindings
	keys     KeyboardState

	hudKey input.KeyStateTracker
	mapKey input.KeyStateTracker

	showHUD bool
	showMap bool

	lastUpdate time.Time
	frameImg   *ebiten.Image
}

// NewGame creates the frontend for sc.
func NewGame(cfg *config.Config, sc *scene.Scene) *Game {
	bindings := cfg.GetKeyBindings()
	return &Game{
		config:   cfg,
		scene:    sc,
		bindings: bindings,
		keys:     NewKeyboardState(bindings),
		showHUD:  cfg.Display.ShowHUD,
		showMap:  cfg.Display.ShowMinimap,
	}
}

// Update advances the scene by the wall-clock time since the last call.
func (g *Game) Update() error {
	now := time.Now()
	var dt time.Duration
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate)
		if max := g.config.GetMaxFrameDelta(); dt > max {
			dt = max
		}
	}
	g.lastUpdate = now

	if g.bindings.Pressed(g.keys, input.ActionQuit) {
		return ebiten.Termination
	}
	if g.hudKey.JustPressed(g.bindings.Pressed(g.keys, input.ActionToggleHUD)) {
		g.showHUD = !g.showHUD
	}
	if g.mapKey.JustPressed(g.bindings.Pressed(g.keys, input.ActionToggleMap)) {
		g.showMap = !g.showMap
	}

	g.scene.Update(input.FromKeys(g.keys, g.bindings), dt.Seconds())
	return nil
}

// Draw renders a frame at the screen size and copies it to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	frame := g.scene.Render(w, h)

	if g.frameImg == nil || g.frameImg.Bounds().Dx() != w || g.frameImg.Bounds().Dy() != h {
		if g.frameImg != nil {
			g.frameImg.Deallocate()
		}
		g.frameImg = ebiten.NewImage(w, h)
	}
	// Frames are fully opaque, so straight and premultiplied alpha agree.
	g.frameImg.WritePixels(frame.Pix)
	screen.DrawImage(g.frameImg, nil)

	if g.showMap {
		g.drawMinimap(screen)
	}
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// Layout renders at the window size divided by the configured render scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetFrameSize(outsideWidth, outsideHeight)
}
