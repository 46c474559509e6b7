package world

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gridcaster/internal/geom"
)

var (
	// ErrNoStart is returned when a level gives neither a start position nor
	// a '+' marker in its map.
	ErrNoStart = errors.New("level has no start position")
	// ErrUnknownSpawn is returned for a map sprite letter missing from the legend.
	ErrUnknownSpawn = errors.New("sprite letter not in legend")
	// ErrStartBlocked is returned when the start position is inside a wall.
	ErrStartBlocked = errors.New("start position is not an open cell")
)

// LevelFile is the on-disk YAML form of a level.
type LevelFile struct {
	Name     string            `yaml:"name"`
	MapFile  string            `yaml:"map"`
	Rows     []string          `yaml:"rows"`
	Start    []float64         `yaml:"start"`
	Facing   []float64         `yaml:"direction"`
	Plane    float64           `yaml:"plane_length"`
	Textures LevelTextures     `yaml:"textures"`
	Legend   map[string]int    `yaml:"legend"`
	Sprites  []SpritePlacement `yaml:"sprites"`
}

// LevelTextures lists texture file names, resolved relative to the level file.
type LevelTextures struct {
	Walls   []string `yaml:"walls"`
	Sprites []string `yaml:"sprites"`
	Sky     string   `yaml:"sky"`
}

// SpritePlacement is one sprite at a world position.
type SpritePlacement struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Texture int     `yaml:"texture"`
}

// Pos returns the placement as a vector.
func (sp SpritePlacement) Pos() geom.Vec2 {
	return geom.V(sp.X, sp.Y)
}

// Level is a fully resolved level ready to build a scene from.
type Level struct {
	Name           string
	Grid           *GridMap
	Start          geom.Vec2
	Direction      geom.Vec2
	PlaneLength    float64
	WallTextures   []string
	SpriteTextures []string
	SkyTexture     string
	Sprites        []SpritePlacement
}

// DefaultPlaneLength gives a field of view of about 66 degrees with a unit
// direction vector.
const DefaultPlaneLength = 0.66

// LoadLevel reads a YAML level file and the map it references.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", path, err)
	}

	var lf LevelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", path, err)
	}

	level, err := lf.Resolve(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// Resolve turns the file form into a Level. baseDir is used for relative
// map and texture paths.
func (lf *LevelFile) Resolve(baseDir string) (*Level, error) {
	loader := NewMapLoader(lf.Name)

	var md *MapData
	var err error
	switch {
	case lf.MapFile != "":
		md, err = loader.LoadMap(resolvePath(baseDir, lf.MapFile))
	case len(lf.Rows) > 0:
		md, err = loader.ParseRows(lf.Rows)
	default:
		return nil, fmt.Errorf("neither map nor rows given: %w", ErrEmptyMap)
	}
	if err != nil {
		return nil, err
	}

	if err := md.Grid.ValidateEnclosed(); err != nil {
		return nil, err
	}

	level := &Level{
		Name:        lf.Name,
		Grid:        md.Grid,
		Direction:   geom.V(-1, 0),
		PlaneLength: lf.Plane,
		SkyTexture:  "",
	}
	if level.PlaneLength <= 0 {
		level.PlaneLength = DefaultPlaneLength
	}

	switch {
	case len(lf.Start) == 2:
		level.Start = geom.V(lf.Start[0], lf.Start[1])
	case md.HasStart():
		// Center of the marked cell
		level.Start = geom.V(float64(md.StartX)+0.5, float64(md.StartY)+0.5)
	default:
		return nil, ErrNoStart
	}
	if md.Grid.IsTileBlocking(FloorCell(level.Start)) {
		return nil, fmt.Errorf("(%.2f, %.2f): %w", level.Start.X, level.Start.Y, ErrStartBlocked)
	}

	if len(lf.Facing) == 2 {
		level.Direction = geom.V(lf.Facing[0], lf.Facing[1])
	}

	for _, name := range lf.Textures.Walls {
		level.WallTextures = append(level.WallTextures, resolvePath(baseDir, name))
	}
	for _, name := range lf.Textures.Sprites {
		level.SpriteTextures = append(level.SpriteTextures, resolvePath(baseDir, name))
	}
	if lf.Textures.Sky != "" {
		level.SkyTexture = resolvePath(baseDir, lf.Textures.Sky)
	}

	level.Sprites = append(level.Sprites, lf.Sprites...)
	for _, spawn := range md.SpriteSpawns {
		tex, ok := lf.Legend[spawn.Letter]
		if !ok {
			return nil, fmt.Errorf("%q at (%d, %d): %w", spawn.Letter, spawn.X, spawn.Y, ErrUnknownSpawn)
		}
		level.Sprites = append(level.Sprites, SpritePlacement{
			X:       float64(spawn.X) + 0.5,
			Y:       float64(spawn.Y) + 0.5,
			Texture: tex,
		})
	}

	log.Printf("[Level] %s: start (%.1f, %.1f), %d wall textures, %d sprites",
		level.Name, level.Start.X, level.Start.Y, len(level.WallTextures), len(level.Sprites))
	return level, nil
}

// FloorCell returns the grid cell containing p.
func FloorCell(p geom.Vec2) (x, y int) {
	return int(p.X), int(p.Y)
}

func resolvePath(baseDir, name string) string {
	if filepath.IsAbs(name) || baseDir == "" {
		return name
	}
	return filepath.Join(baseDir, name)
}
