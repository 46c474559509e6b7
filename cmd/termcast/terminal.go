package main

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/config"
	"gridcaster/internal/input"
	"gridcaster/internal/scene"
	"gridcaster/internal/world"
)

const statusRows = 1

var (
	statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	wallStyle   = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	floorStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	playerStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorAqua)
)

// Terminal presents a scene on a tcell screen.
type Terminal struct {
	screen   tcell.Screen
	config   *config.Config
	scene    *scene.Scene
	bindings input.Bindings
	latch    *input.Latch

	showHUD bool
	showMap bool
}

// NewTerminal initializes screen and takes ownership of it.
func NewTerminal(screen tcell.Screen, cfg *config.Config, sc *scene.Scene) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.SetStyle(statusStyle)
	screen.Clear()

	return &Terminal{
		screen:   screen,
		config:   cfg,
		scene:    sc,
		bindings: cfg.GetKeyBindings(),
		latch:    input.NewLatch(cfg.GetTerminalHold()),
		showHUD:  cfg.Display.ShowHUD,
		showMap:  cfg.Display.ShowMinimap,
	}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Run drives the frame loop until a quit key. Events are read on their own
// goroutine and handed over a channel; the scene is only touched here.
func (t *Terminal) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(t.config.Terminal.FrameRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.handleEvent(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			if max := t.config.GetMaxFrameDelta(); dt > max {
				dt = max
			}
			last = now
			t.scene.Update(t.latch.Intent(now), dt.Seconds())
			t.draw()
		}
	}
}

// handleEvent returns false when the loop should stop.
func (t *Terminal) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		action, ok := t.bindings.Action(keyName(ev))
		if !ok {
			return true
		}
		switch action {
		case input.ActionQuit:
			return false
		case input.ActionToggleHUD:
			t.showHUD = !t.showHUD
		case input.ActionToggleMap:
			t.showMap = !t.showMap
		default:
			t.latch.Press(action, now)
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// frameSize returns the pixel size for a cols x rows terminal, leaving
// reserved rows for the status line.
func frameSize(cols, rows, reserved int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	rows -= reserved
	if rows < 1 {
		rows = 1
	}
	return cols, rows * 2
}

func (t *Terminal) draw() {
	cols, rows := t.screen.Size()
	w, h := frameSize(cols, rows, statusRows)
	frame := t.scene.Render(w, h)
	t.drawFrame(frame, statusRows)

	t.drawStatus(cols)
	if t.showMap {
		t.drawMap(cols, statusRows)
	}
	t.screen.Show()
}

// drawFrame writes two pixel rows per cell with the upper half block: the
// foreground is the top pixel and the background the bottom one.
func (t *Terminal) drawFrame(frame *image.RGBA, top int) {
	b := frame.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			hi := frame.PixOffset(x, y)
			lo := frame.PixOffset(x, y+1)
			fg := tcell.NewRGBColor(int32(frame.Pix[hi]), int32(frame.Pix[hi+1]), int32(frame.Pix[hi+2]))
			bg := tcell.NewRGBColor(int32(frame.Pix[lo]), int32(frame.Pix[lo+1]), int32(frame.Pix[lo+2]))
			t.screen.SetContent(x, top+y/2, '▀', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func (t *Terminal) drawStatus(cols int) {
	line := fmt.Sprintf(" %s ", t.scene.Name())
	if t.showHUD {
		m := t.scene.Monitor().GetCurrentMetrics()
		cam := t.scene.Camera()
		line = fmt.Sprintf(" %s | %.1fms | %s %d cols | pos %.2f,%.2f ",
			t.scene.Name(), float64(m.FrameTime.Microseconds())/1000, t.scene.Mode(), m.Columns, cam.Pos.X, cam.Pos.Y)
	}
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, 0, r, nil, statusStyle)
		x++
	}
	for ; x < cols; x++ {
		t.screen.SetContent(x, 0, ' ', nil, statusStyle)
	}
}

// drawMap draws the grid one cell per character in the top-right corner.
func (t *Terminal) drawMap(cols, top int) {
	grid := t.scene.Grid()
	ox := cols - grid.Width()
	if ox < 0 {
		return
	}
	px, py := world.FloorCell(t.scene.Camera().Pos)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			switch id, _ := grid.At(x, y); {
			case x == px && y == py:
				t.screen.SetContent(ox+x, top+y, '@', nil, playerStyle)
			case id != world.TileEmpty:
				t.screen.SetContent(ox+x, top+y, rune('0'+id), nil, wallStyle)
			default:
				t.screen.SetContent(ox+x, top+y, '.', nil, floorStyle)
			}
		}
	}
}
