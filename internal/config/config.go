package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"gridcaster/internal/input"
)

// Caster modes for RenderConfig.Mode
const (
	ModeDDA     = "dda"
	ModeSegment = "segment"
)

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig       `yaml:"display"`
	Camera   CameraConfig        `yaml:"camera"`
	Movement MovementConfig      `yaml:"movement"`
	Render   RenderConfig        `yaml:"render"`
	Colors   ColorsConfig        `yaml:"colors"`
	Keys     map[string][]string `yaml:"keys"`
	Level    LevelConfig         `yaml:"level"`
	Terminal TerminalConfig      `yaml:"terminal"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	// RenderScale divides the window size to get the frame size; 2 renders
	// at half resolution and lets the window upscale.
	RenderScale   int     `yaml:"render_scale"`
	ShowHUD       bool    `yaml:"show_hud"`
	ShowMinimap   bool    `yaml:"show_minimap"`
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // seconds
	// FrameAverage keeps a moving average of frame times for the HUD.
	FrameAverage bool `yaml:"frame_average"`
}

type CameraConfig struct {
	// FieldOfView in degrees. Zero keeps the level's plane length.
	FieldOfView float64 `yaml:"field_of_view"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`     // grid units per second
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per second
}

type RenderConfig struct {
	// RaysPerScreenWidth is the column count. Zero casts one ray per frame column.
	RaysPerScreenWidth int     `yaml:"rays_per_screen_width"`
	ProjectionScale    float64 `yaml:"projection_scale"`
	MaxDistance        float64 `yaml:"max_distance"`
	BrightnessMin      float64 `yaml:"brightness_min"`
	SideShade          float64 `yaml:"side_shade"`
	TextureSize        int     `yaml:"texture_size"`
	Mode               string  `yaml:"mode"`
}

// ColorsConfig holds backdrop gradient colors as hex strings ("#rrggbb").
type ColorsConfig struct {
	CeilingTop     string `yaml:"ceiling_top"`
	CeilingHorizon string `yaml:"ceiling_horizon"`
	FloorHorizon   string `yaml:"floor_horizon"`
	FloorBottom    string `yaml:"floor_bottom"`
}

type LevelConfig struct {
	File string `yaml:"file"`
}

type TerminalConfig struct {
	// HoldMs is how long a key press keeps moving without a repeat.
	HoldMs    int `yaml:"hold_ms"`
	FrameRate int `yaml:"frame_rate"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:   800,
			ScreenHeight:  560,
			WindowTitle:   "gridcaster",
			Resizable:     true,
			RenderScale:   2,
			ShowHUD:       true,
			ShowMinimap:   false,
			MaxFrameDelta: 0.1,
			FrameAverage:  true,
		},
		Movement: MovementConfig{
			MoveSpeed:     3,
			RotationSpeed: 2,
		},
		Render: RenderConfig{
			ProjectionScale: 1,
			MaxDistance:     10,
			BrightnessMin:   0,
			SideShade:       0.5,
			TextureSize:     256,
			Mode:            ModeDDA,
		},
		Colors: ColorsConfig{
			CeilingTop:     "#283c6e",
			CeilingHorizon: "#96aac8",
			FloorHorizon:   "#464646",
			FloorBottom:    "#191919",
		},
		Level: LevelConfig{
			File: "assets/levels/demo.yaml",
		},
		Terminal: TerminalConfig{
			HoldMs:    150,
			FrameRate: 30,
		},
	}
}

// LoadConfig reads a YAML file over the defaults and normalizes the result.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	return config.Normalize(), nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Normalize clamps values that would break a frame to safe minimums, one
// log line per fix.
func (c *Config) Normalize() *Config {
	d := Default()
	fix := func(name string, from, to interface{}) {
		log.Printf("[Config] %s %v is invalid, using %v", name, from, to)
	}

	if c.Display.ScreenWidth < 1 {
		fix("display.screen_width", c.Display.ScreenWidth, d.Display.ScreenWidth)
		c.Display.ScreenWidth = d.Display.ScreenWidth
	}
	if c.Display.ScreenHeight < 1 {
		fix("display.screen_height", c.Display.ScreenHeight, d.Display.ScreenHeight)
		c.Display.ScreenHeight = d.Display.ScreenHeight
	}
	if c.Display.RenderScale < 1 {
		fix("display.render_scale", c.Display.RenderScale, 1)
		c.Display.RenderScale = 1
	}
	if c.Display.MaxFrameDelta <= 0 {
		fix("display.max_frame_delta", c.Display.MaxFrameDelta, d.Display.MaxFrameDelta)
		c.Display.MaxFrameDelta = d.Display.MaxFrameDelta
	}
	if c.Camera.FieldOfView < 0 || c.Camera.FieldOfView >= 180 {
		fix("camera.field_of_view", c.Camera.FieldOfView, 0)
		c.Camera.FieldOfView = 0
	}
	if c.Movement.MoveSpeed < 0 {
		fix("movement.move_speed", c.Movement.MoveSpeed, d.Movement.MoveSpeed)
		c.Movement.MoveSpeed = d.Movement.MoveSpeed
	}
	if c.Movement.RotationSpeed < 0 {
		fix("movement.rotation_speed", c.Movement.RotationSpeed, d.Movement.RotationSpeed)
		c.Movement.RotationSpeed = d.Movement.RotationSpeed
	}
	if c.Render.RaysPerScreenWidth < 0 {
		fix("render.rays_per_screen_width", c.Render.RaysPerScreenWidth, 0)
		c.Render.RaysPerScreenWidth = 0
	}
	if c.Render.ProjectionScale <= 0 {
		fix("render.projection_scale", c.Render.ProjectionScale, d.Render.ProjectionScale)
		c.Render.ProjectionScale = d.Render.ProjectionScale
	}
	if c.Render.MaxDistance <= 0 {
		fix("render.max_distance", c.Render.MaxDistance, d.Render.MaxDistance)
		c.Render.MaxDistance = d.Render.MaxDistance
	}
	if c.Render.BrightnessMin < 0 || c.Render.BrightnessMin > 1 {
		fix("render.brightness_min", c.Render.BrightnessMin, d.Render.BrightnessMin)
		c.Render.BrightnessMin = d.Render.BrightnessMin
	}
	if c.Render.SideShade < 0 || c.Render.SideShade > 1 {
		fix("render.side_shade", c.Render.SideShade, d.Render.SideShade)
		c.Render.SideShade = d.Render.SideShade
	}
	if c.Render.TextureSize < 1 {
		fix("render.texture_size", c.Render.TextureSize, d.Render.TextureSize)
		c.Render.TextureSize = d.Render.TextureSize
	}
	if c.Render.Mode != ModeDDA && c.Render.Mode != ModeSegment {
		fix("render.mode", c.Render.Mode, ModeDDA)
		c.Render.Mode = ModeDDA
	}
	if c.Terminal.HoldMs < 1 {
		fix("terminal.hold_ms", c.Terminal.HoldMs, d.Terminal.HoldMs)
		c.Terminal.HoldMs = d.Terminal.HoldMs
	}
	if c.Terminal.FrameRate < 1 {
		fix("terminal.frame_rate", c.Terminal.FrameRate, d.Terminal.FrameRate)
		c.Terminal.FrameRate = d.Terminal.FrameRate
	}
	return c
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetFrameSize returns the rendered frame size for a window size.
func (c *Config) GetFrameSize(windowW, windowH int) (int, int) {
	scale := c.Display.RenderScale
	if scale < 1 {
		scale = 1
	}
	w, h := windowW/scale, windowH/scale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ColumnsFor resolves a configured ray count against a frame width. Zero or
// negative rays means one ray per pixel column, and never fewer than one.
func ColumnsFor(rays, frameWidth int) int {
	if rays > 0 {
		return rays
	}
	if frameWidth < 1 {
		return 1
	}
	return frameWidth
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetMaxFrameDelta returns the longest tick the simulation accepts.
func (c *Config) GetMaxFrameDelta() time.Duration {
	return time.Duration(c.Display.MaxFrameDelta * float64(time.Second))
}

// GetTerminalHold returns the terminal key hold duration.
func (c *Config) GetTerminalHold() time.Duration {
	return time.Duration(c.Terminal.HoldMs) * time.Millisecond
}

// GetColor parses a hex color, falling back to fallback on error.
func GetColor(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		log.Printf("[Config] color %q: %v", hex, err)
		return fallback
	}
	return c
}

// GetBackdropColors returns the four gradient stops, top to bottom.
func (c *Config) GetBackdropColors() (ceilTop, ceilHorizon, floorHorizon, floorBottom color.Color) {
	d := Default().Colors
	return GetColor(c.Colors.CeilingTop, GetColor(d.CeilingTop, color.Black)),
		GetColor(c.Colors.CeilingHorizon, GetColor(d.CeilingHorizon, color.Black)),
		GetColor(c.Colors.FloorHorizon, GetColor(d.FloorHorizon, color.Black)),
		GetColor(c.Colors.FloorBottom, GetColor(d.FloorBottom, color.Black))
}

// GetKeyBindings merges configured keys over the default bindings. Unknown
// action names are logged and skipped.
func (c *Config) GetKeyBindings() input.Bindings {
	b := input.DefaultBindings()
	for name, keys := range c.Keys {
		action, ok := input.ParseAction(name)
		if !ok {
			log.Printf("[Config] unknown key action %q", name)
			continue
		}
		b[action] = append([]string(nil), keys...)
	}
	return b
}
