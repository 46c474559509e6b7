// Package scene wires a level to the rendering pipeline. A Scene owns the
// camera, the depth buffer and the frame, and runs one tick of movement
// followed by one frame of backdrop, cast, rasterize and composite.
package scene

import (
	"errors"
	"fmt"
	"image"
	"log"

	"gridcaster/internal/camera"
	"gridcaster/internal/collision"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/input"
	"gridcaster/internal/monitoring"
	"gridcaster/internal/raycast"
	"gridcaster/internal/render"
	"gridcaster/internal/world"
)

// ErrTextureOutOfRange is returned when a wall tile or sprite names an atlas
// slot that does not exist.
var ErrTextureOutOfRange = errors.New("texture index out of range")

// Options are the per-scene rendering settings.
type Options struct {
	// Columns is the ray count. Zero casts one ray per frame column.
	Columns int
	// Mode picks the caster: config.ModeDDA or config.ModeSegment.
	Mode   string
	Speeds camera.Speeds
	// FieldOfView in degrees overrides the level's plane length when > 0.
	FieldOfView     float64
	ProjectionScale float64
	Shading         render.Shading
	Backdrop        *render.Backdrop
	// FrameAverage keeps the monitor's moving frame time average.
	FrameAverage bool
}

// DefaultOptions returns options matching config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig builds scene options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	top, horizon, floorHorizon, floorBottom := cfg.GetBackdropColors()
	return Options{
		Columns: cfg.Render.RaysPerScreenWidth,
		Mode:    cfg.Render.Mode,
		Speeds: camera.Speeds{
			Move: cfg.GetMoveSpeed(),
			Turn: cfg.GetRotSpeed(),
		},
		FieldOfView:     cfg.Camera.FieldOfView,
		ProjectionScale: cfg.Render.ProjectionScale,
		Shading: render.Shading{
			MaxDistance:   cfg.Render.MaxDistance,
			BrightnessMin: cfg.Render.BrightnessMin,
			SideShade:     cfg.Render.SideShade,
		},
		Backdrop:     render.NewBackdrop(top, horizon, floorHorizon, floorBottom),
		FrameAverage: cfg.Display.FrameAverage,
	}
}

// Scene is one playable level and the state needed to draw it.
type Scene struct {
	name    string
	grid    *world.GridMap
	cam     camera.Camera
	mover   *collision.System
	engine  raycast.Engine
	segs    *raycast.SegmentCaster
	opts    Options
	sprites []render.Sprite

	walls       *graphics.Atlas
	spriteAtlas *graphics.Atlas

	backdrop   *render.Backdrop
	rasterizer *render.Rasterizer
	compositor *render.Compositor

	buf     raycast.DepthBuffer
	frame   *image.RGBA
	monitor *monitoring.PerformanceMonitor
}

// Open loads a level file and builds a scene with cfg's settings. An empty
// levelPath uses the configured level.
func Open(cfg *config.Config, levelPath string) (*Scene, error) {
	if levelPath == "" {
		levelPath = cfg.Level.File
	}
	level, err := world.LoadLevel(levelPath)
	if err != nil {
		return nil, err
	}
	tm := graphics.NewTextureManager(cfg.Render.TextureSize)
	return Load(level, tm, OptionsFromConfig(cfg))
}

// Load builds a scene from a level, loading its textures through tm.
func Load(level *world.Level, tm *graphics.TextureManager, opts Options) (*Scene, error) {
	walls := tm.LoadAtlas(level.WallTextures)
	sprites := tm.LoadAtlas(level.SpriteTextures)
	if level.SkyTexture != "" {
		base := opts.Backdrop
		if base == nil {
			base = render.DefaultBackdrop()
		}
		opts.Backdrop = base.WithSky(tm.GetTexture(level.SkyTexture))
	}
	return New(level, walls, sprites, opts)
}

// New builds a scene from a level and already loaded atlases.
func New(level *world.Level, walls, sprites *graphics.Atlas, opts Options) (*Scene, error) {
	if level == nil || level.Grid == nil {
		return nil, world.ErrEmptyMap
	}
	if err := Validate(level, walls, sprites); err != nil {
		return nil, err
	}

	plane := level.PlaneLength
	if opts.FieldOfView > 0 {
		plane = camera.NewHeading(0, opts.FieldOfView).PlaneLength()
	}
	cam, err := camera.New(level.Start, level.Direction, plane)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.Name, err)
	}

	s := &Scene{
		name:        level.Name,
		grid:        level.Grid,
		cam:         cam,
		mover:       collision.NewSystem(level.Grid),
		segs:        raycast.NewSegmentCaster(),
		opts:        opts,
		walls:       walls,
		spriteAtlas: sprites,
		backdrop:    opts.Backdrop,
		rasterizer:  render.NewRasterizer(opts.Shading),
		compositor:  render.NewCompositor(opts.Shading),
		monitor:     monitoring.NewPerformanceMonitor(),
	}
	if s.backdrop == nil {
		s.backdrop = render.DefaultBackdrop()
	}
	s.monitor.EnableFrameAverage(opts.FrameAverage)
	if opts.ProjectionScale > 0 {
		s.rasterizer.ProjectionScale = opts.ProjectionScale
		s.compositor.ProjectionScale = opts.ProjectionScale
	}

	switch opts.Mode {
	case config.ModeSegment:
		s.engine = s.segs
	default:
		s.engine = raycast.NewCaster()
	}

	for _, sp := range level.Sprites {
		s.sprites = append(s.sprites, render.Sprite{Pos: sp.Pos(), Texture: sp.Texture})
	}

	log.Printf("[Scene] %s: %dx%d grid, %d sprites, %s caster",
		s.name, s.grid.Width(), s.grid.Height(), len(s.sprites), s.Mode())
	return s, nil
}

// Validate checks that the grid is enclosed and that every wall tile and
// sprite has a texture.
func Validate(level *world.Level, walls, sprites *graphics.Atlas) error {
	if err := level.Grid.ValidateEnclosed(); err != nil {
		return err
	}
	if max := int(level.Grid.MaxTileID()); max > walls.Len() {
		return fmt.Errorf("wall tile %d with %d wall textures: %w", max, walls.Len(), ErrTextureOutOfRange)
	}
	for _, sp := range level.Sprites {
		if sp.Texture < 0 || sp.Texture >= sprites.Len() {
			return fmt.Errorf("sprite at (%.2f, %.2f) uses texture %d with %d sprite textures: %w",
				sp.X, sp.Y, sp.Texture, sprites.Len(), ErrTextureOutOfRange)
		}
	}
	return nil
}

// Update applies one tick of input over dt seconds.
func (s *Scene) Update(in input.Intent, dt float64) {
	s.cam.Update(in, dt, s.mover, s.opts.Speeds)
}

// Render draws a frame of the given size and returns it. The returned image
// is reused by the next call.
func (s *Scene) Render(width, height int) *image.RGBA {
	frame := s.monitor.StartFrame()
	defer frame.EndFrame()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if s.frame == nil || s.frame.Rect.Dx() != width || s.frame.Rect.Dy() != height {
		s.frame = render.NewFrame(width, height)
	}
	columns := config.ColumnsFor(s.opts.Columns, width)

	stage := s.monitor.StartStage(monitoring.StageBackdrop)
	s.backdrop.Fill(s.frame, s.cam)
	stage.End()

	stage = s.monitor.StartStage(monitoring.StageCast)
	s.buf = s.engine.Cast(s.cam, s.grid, s.buf.Resize(columns))
	stage.End()

	stage = s.monitor.StartStage(monitoring.StageRasterize)
	s.rasterizer.Draw(s.frame, s.buf, s.walls)
	stage.End()

	stage = s.monitor.StartStage(monitoring.StageComposite)
	s.compositor.Draw(s.frame, s.buf, s.cam, s.sprites, s.spriteAtlas)
	stage.End()

	s.monitor.UpdateWorkload(columns, len(s.sprites))
	return s.frame
}

// Rays returns an overhead fan of columns rays clipped to the walls.
func (s *Scene) Rays(columns int, maxLength float64) []raycast.Ray {
	return raycast.Fan(s.cam, columns, maxLength, s.segs.Segments(s.grid))
}

// Name returns the level name.
func (s *Scene) Name() string { return s.name }

// Camera returns a copy of the current camera.
func (s *Scene) Camera() camera.Camera { return s.cam }

// Grid returns the level grid.
func (s *Scene) Grid() *world.GridMap { return s.grid }

// Sprites returns the scene sprites, ordered far to near after a Render.
func (s *Scene) Sprites() []render.Sprite { return s.sprites }

// DepthBuffer returns the hits of the last Render.
func (s *Scene) DepthBuffer() raycast.DepthBuffer { return s.buf }

// Monitor returns the frame timing monitor.
func (s *Scene) Monitor() *monitoring.PerformanceMonitor { return s.monitor }

// Mode returns the active caster name.
func (s *Scene) Mode() string {
	if _, ok := s.engine.(*raycast.SegmentCaster); ok {
		return config.ModeSegment
	}
	return config.ModeDDA
}
