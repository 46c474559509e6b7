package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/geom"
	"gridcaster/internal/graphics"
	"gridcaster/internal/input"
	"gridcaster/internal/world"
)

func testLevel(t *testing.T) *world.Level {
	t.Helper()
	lf := world.LevelFile{
		Name: "room",
		Rows: []string{
			"1111111",
			"1.....1",
			"1.+...1",
			"1.....1",
			"1111111",
		},
		Sprites: []world.SpritePlacement{{X: 1.5, Y: 2.5, Texture: 0}},
	}
	level, err := lf.Resolve("")
	if err != nil {
		t.Fatalf("Failed to resolve level: %v", err)
	}
	return level
}

func testAtlases() (*graphics.Atlas, *graphics.Atlas) {
	walls := graphics.NewAtlas(graphics.Placeholder(graphics.PlaceholderBrick, 8))
	sprites := graphics.NewAtlas(graphics.Placeholder(graphics.PlaceholderBarrel, 8))
	return walls, sprites
}

func newTestScene(t *testing.T, opts Options) *Scene {
	t.Helper()
	walls, sprites := testAtlases()
	s, err := New(testLevel(t), walls, sprites, opts)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s
}

func TestRenderCastsOneRayPerColumn(t *testing.T) {
	s := newTestScene(t, DefaultOptions())
	frame := s.Render(8, 6)

	if frame.Rect.Dx() != 8 || frame.Rect.Dy() != 6 {
		t.Fatalf("Expected 8x6 frame, got %dx%d", frame.Rect.Dx(), frame.Rect.Dy())
	}
	buf := s.DepthBuffer()
	if len(buf) != 8 {
		t.Fatalf("Expected 8 hits, got %d", len(buf))
	}
	// Center column looks straight west at the east face of column 0.
	if math.Abs(buf[4].Distance-1.5) > 1e-9 {
		t.Errorf("Expected center distance 1.5, got %f", buf[4].Distance)
	}
	for i := 3; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatalf("Expected opaque frame, pixel %d has alpha %d", i/4, frame.Pix[i])
		}
	}
}

func TestRenderReusesFrame(t *testing.T) {
	s := newTestScene(t, DefaultOptions())
	a := s.Render(8, 6)
	b := s.Render(8, 6)
	if a != b {
		t.Error("Expected the frame to be reused for the same size")
	}
	c := s.Render(0, -1)
	if c.Rect.Dx() != 1 || c.Rect.Dy() != 1 {
		t.Errorf("Expected 1x1 frame for an empty viewport, got %dx%d", c.Rect.Dx(), c.Rect.Dy())
	}
}

func TestColumnsOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Columns = 3
	s := newTestScene(t, opts)
	s.Render(8, 6)
	if len(s.DepthBuffer()) != 3 {
		t.Errorf("Expected 3 hits, got %d", len(s.DepthBuffer()))
	}
	m := s.Monitor().GetCurrentMetrics()
	if m.Columns != 3 || m.Sprites != 1 {
		t.Errorf("Expected workload 3 columns 1 sprite, got %d columns %d sprites", m.Columns, m.Sprites)
	}
	if m.FrameCount != 1 {
		t.Errorf("Expected 1 frame recorded, got %d", m.FrameCount)
	}
}

func TestFrameAverageOption(t *testing.T) {
	opts := DefaultOptions()
	opts.FrameAverage = false
	s := newTestScene(t, opts)
	s.Monitor().RecordFrame(20 * time.Millisecond)
	if avg := s.Monitor().GetCurrentMetrics().AvgFrameTime; avg != 0 {
		t.Errorf("Expected no frame average when disabled, got %v", avg)
	}

	s = newTestScene(t, DefaultOptions())
	s.Monitor().RecordFrame(20 * time.Millisecond)
	if avg := s.Monitor().GetCurrentMetrics().AvgFrameTime; avg != 20*time.Millisecond {
		t.Errorf("Expected a 20ms frame average by default, got %v", avg)
	}
}

func TestZeroColumnsCastsOnePerPixel(t *testing.T) {
	opts := DefaultOptions()
	opts.Columns = 0
	s := newTestScene(t, opts)
	s.Render(8, 6)
	if len(s.DepthBuffer()) != 8 {
		t.Errorf("Expected 8 hits, got %d", len(s.DepthBuffer()))
	}
}

func TestSegmentModeMatchesDDA(t *testing.T) {
	dda := newTestScene(t, DefaultOptions())
	opts := DefaultOptions()
	opts.Mode = config.ModeSegment
	seg := newTestScene(t, opts)

	if seg.Mode() != config.ModeSegment || dda.Mode() != config.ModeDDA {
		t.Fatalf("Expected modes segment/dda, got %s/%s", seg.Mode(), dda.Mode())
	}

	dda.Render(16, 8)
	seg.Render(16, 8)
	for i, h := range dda.DepthBuffer() {
		got := seg.DepthBuffer()[i]
		if math.Abs(h.Distance-got.Distance) > 1e-9 {
			t.Errorf("Column %d: expected distance %f, got %f", i, h.Distance, got.Distance)
		}
	}
}

func TestFieldOfViewOverridesPlane(t *testing.T) {
	opts := DefaultOptions()
	opts.FieldOfView = 90
	s := newTestScene(t, opts)
	if l := s.Camera().Plane.Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("Expected plane length 1 for 90 degrees, got %f", l)
	}
}

func TestUpdateMovesAndCollides(t *testing.T) {
	s := newTestScene(t, DefaultOptions())
	s.Update(input.Intent{Move: input.Forward}, 0.1)
	if p := s.Camera().Pos; math.Abs(p.X-2.2) > 1e-9 || p.Y != 2.5 {
		t.Errorf("Expected (2.2, 2.5), got (%f, %f)", p.X, p.Y)
	}

	for i := 0; i < 100; i++ {
		s.Update(input.Intent{Move: input.Forward}, 0.1)
	}
	if p := s.Camera().Pos; p.X < 1 {
		t.Errorf("Expected the wall to stop the camera, got x=%f", p.X)
	}
}

func TestSpritesSortedAfterRender(t *testing.T) {
	s := newTestScene(t, DefaultOptions())
	s.Render(8, 6)
	sp := s.Sprites()
	if len(sp) != 1 || math.Abs(sp[0].Dist-1) > 1e-9 {
		t.Errorf("Expected one sprite at distance 1, got %+v", sp)
	}
}

func TestRaysFan(t *testing.T) {
	s := newTestScene(t, DefaultOptions())
	rays := s.Rays(5, 20)
	if len(rays) != 5 {
		t.Fatalf("Expected 5 rays, got %d", len(rays))
	}
	for i, r := range rays {
		if !r.Collided {
			t.Errorf("Ray %d: expected to hit a wall inside an enclosed room", i)
		}
	}
}

func TestValidate(t *testing.T) {
	walls, sprites := testAtlases()

	t.Run("wall texture missing", func(t *testing.T) {
		level := testLevel(t)
		rows := level.Grid.Rows()
		rows[0][0] = 2
		level.Grid = world.MustGridMap(rows)
		err := Validate(level, walls, sprites)
		if !errors.Is(err, ErrTextureOutOfRange) {
			t.Errorf("Expected ErrTextureOutOfRange, got %v", err)
		}
	})

	t.Run("sprite texture missing", func(t *testing.T) {
		level := testLevel(t)
		level.Sprites = append(level.Sprites, world.SpritePlacement{X: 3.5, Y: 2.5, Texture: 1})
		err := Validate(level, walls, sprites)
		if !errors.Is(err, ErrTextureOutOfRange) {
			t.Errorf("Expected ErrTextureOutOfRange, got %v", err)
		}
	})

	t.Run("open border", func(t *testing.T) {
		level := testLevel(t)
		rows := level.Grid.Rows()
		rows[0][3] = world.TileEmpty
		level.Grid = world.MustGridMap(rows)
		_, err := New(level, walls, sprites, DefaultOptions())
		if !errors.Is(err, world.ErrMapNotEnclosed) {
			t.Errorf("Expected ErrMapNotEnclosed, got %v", err)
		}
	})

	t.Run("zero direction", func(t *testing.T) {
		level := testLevel(t)
		level.Direction = geom.Vec2{}
		if _, err := New(level, walls, sprites, DefaultOptions()); err == nil {
			t.Error("Expected error for zero direction")
		}
	})
}

func TestLoadUsesPlaceholders(t *testing.T) {
	level := testLevel(t)
	level.WallTextures = []string{"missing/brick2.png"}
	level.SpriteTextures = []string{"missing/barrel.png"}
	level.SkyTexture = "missing/sky.png"

	s, err := Load(level, graphics.NewTextureManager(8), DefaultOptions())
	if err != nil {
		t.Fatalf("Expected placeholders to satisfy validation, got %v", err)
	}
	if s.Name() != "room" {
		t.Errorf("Expected name room, got %q", s.Name())
	}
	if s.Grid() != level.Grid {
		t.Error("Expected the scene to use the level grid")
	}
}

func TestLoadKeepsCallerBackdrop(t *testing.T) {
	opts := DefaultOptions()
	shared := opts.Backdrop
	tm := graphics.NewTextureManager(8)

	level := func(sky string) *world.Level {
		l := testLevel(t)
		l.WallTextures = []string{"missing/brick2.png"}
		l.SpriteTextures = []string{"missing/barrel.png"}
		l.SkyTexture = sky
		return l
	}
	withSky, err := Load(level("missing/sky.png"), tm, opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	plain, err := Load(level(""), tm, opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if shared.Sky != nil {
		t.Error("Expected the caller's backdrop to stay without a sky")
	}
	if withSky.backdrop.Sky == nil {
		t.Error("Expected the sky level to draw its sky")
	}
	if plain.backdrop.Sky != nil {
		t.Error("Expected the plain level to keep the gradient ceiling")
	}
}

func TestOpenLevelFile(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "room.map")
	levelPath := filepath.Join(dir, "room.yaml")
	mapBody := "11111\n1+.a1\n11111\n"
	levelBody := `
name: file room
map: room.map
textures:
  walls: [brick2.png]
  sprites: [barrel.png]
legend:
  a: 0
`
	if err := os.WriteFile(mapPath, []byte(mapBody), 0o644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
	if err := os.WriteFile(levelPath, []byte(levelBody), 0o644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}

	cfg := config.Default()
	cfg.Render.TextureSize = 8
	cfg.Level.File = levelPath

	s, err := Open(cfg, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Name() != "file room" {
		t.Errorf("Expected name %q, got %q", "file room", s.Name())
	}
	if len(s.Sprites()) != 1 {
		t.Errorf("Expected 1 sprite, got %d", len(s.Sprites()))
	}

	if _, err := Open(cfg, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for a missing level file")
	}
}

func TestOpenDemoLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Render.TextureSize = 8
	s, err := Open(cfg, filepath.Join("..", "..", "assets", "levels", "demo.yaml"))
	if err != nil {
		t.Fatalf("Failed to open demo level: %v", err)
	}
	if len(s.Sprites()) != 4 {
		t.Errorf("Expected 4 sprites, got %d", len(s.Sprites()))
	}

	s.Render(8, 6)
	center := s.DepthBuffer()[4]
	// Facing west from (3, 5): the first solid cell is the border at x=0.
	if math.Abs(center.Distance-2) > 1e-9 || center.MapX != 0 || center.MapY != 5 {
		t.Errorf("Expected distance 2 on cell (0,5), got %f on (%d,%d)", center.Distance, center.MapX, center.MapY)
	}
}
