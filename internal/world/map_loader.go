package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// ErrBadMapChar is returned for a map character with no meaning.
var ErrBadMapChar = errors.New("unknown map character")

// SpriteSpawn is a sprite placement read from a map file. The letter is
// resolved to a sprite texture by the level's legend.
type SpriteSpawn struct {
	X, Y   int
	Letter string
}

// MapData contains the loaded map information
type MapData struct {
	Width        int
	Height       int
	Grid         *GridMap
	SpriteSpawns []SpriteSpawn
	StartX       int
	StartY       int
}

// HasStart reports whether the map placed a '+' start marker.
func (md *MapData) HasStart() bool {
	return md.StartX >= 0 && md.StartY >= 0
}

// MapLoader reads ASCII tile maps.
//
// Format, one row per line:
//
//	.   or 0   open floor
//	1-9        wall with that tile ID
//	+          player start (open floor)
//	a-z        sprite spawn (open floor), resolved through the level legend
//
// Blank lines and lines starting with ';' are skipped.
type MapLoader struct {
	name string
}

// NewMapLoader creates a new map loader. name only tags log lines.
func NewMapLoader(name string) *MapLoader {
	return &MapLoader{name: name}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	if ml.name == "" {
		ml.name = mapPath
	}
	return ml.Parse(file)
}

// ParseRows parses map rows already split into lines.
func (ml *MapLoader) ParseRows(rows []string) (*MapData, error) {
	return ml.Parse(strings.NewReader(strings.Join(rows, "\n")))
}

// Parse reads a map from r.
func (ml *MapLoader) Parse(r io.Reader) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data: %w", ErrEmptyMap)
	}

	height := len(lines)
	width := len(lines[0])

	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d: %w", i+1, width, len(line), ErrRaggedMap)
		}
	}

	mapData := &MapData{
		Width:  width,
		Height: height,
		StartX: -1, // No default start position - must be set explicitly with +
		StartY: -1,
	}

	rows := make([][]uint8, height)
	for y, line := range lines {
		rows[y] = make([]uint8, width)
		for x, char := range line {
			tileID, spriteLetter, isStart, err := parseMapCharacter(char)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d (%q): %w", y+1, x+1, char, err)
			}
			rows[y][x] = tileID

			if isStart {
				mapData.StartX = x
				mapData.StartY = y
			}
			if spriteLetter != "" {
				mapData.SpriteSpawns = append(mapData.SpriteSpawns, SpriteSpawn{X: x, Y: y, Letter: spriteLetter})
			}
		}
	}

	grid, err := NewGridMap(rows)
	if err != nil {
		return nil, err
	}
	mapData.Grid = grid

	log.Printf("[MapLoader] Loaded %s: %dx%d, %d sprite spawns", ml.name, width, height, len(mapData.SpriteSpawns))
	return mapData, nil
}

// parseMapCharacter converts a map character to a tile ID and optional sprite letter
func parseMapCharacter(char rune) (tileID uint8, spriteLetter string, isStart bool, err error) {
	switch {
	case char == '+':
		return TileEmpty, "", true, nil
	case char == '.' || char == '0':
		return TileEmpty, "", false, nil
	case char >= '1' && char <= '9':
		return uint8(char - '0'), "", false, nil
	case char >= 'a' && char <= 'z':
		// Sprite spawns set the underlying tile to empty
		return TileEmpty, string(char), false, nil
	}
	return TileEmpty, "", false, ErrBadMapChar
}
