package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "room.map", "11111\n1+..1\n1..b1\n11111\n")
	path := writeFile(t, dir, "room.yaml", `
name: room
map: room.map
direction: [0, 1]
textures:
  walls: [brick.png]
  sprites: [barrel.png]
  sky: sky.png
legend:
  b: 0
sprites:
  - {x: 2.5, y: 2.5, texture: 0}
`)

	level, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if level.Start.X != 1.5 || level.Start.Y != 1.5 {
		t.Errorf("Expected start at the '+' cell center (1.5,1.5), got %v", level.Start)
	}
	if level.Direction.X != 0 || level.Direction.Y != 1 {
		t.Errorf("Expected direction (0,1), got %v", level.Direction)
	}
	if level.PlaneLength != DefaultPlaneLength {
		t.Errorf("Expected default plane length, got %f", level.PlaneLength)
	}
	if len(level.WallTextures) != 1 || level.WallTextures[0] != filepath.Join(dir, "brick.png") {
		t.Errorf("Expected wall texture resolved next to the level, got %v", level.WallTextures)
	}
	if level.SkyTexture != filepath.Join(dir, "sky.png") {
		t.Errorf("Expected resolved sky texture, got %q", level.SkyTexture)
	}
	if len(level.Sprites) != 2 {
		t.Fatalf("Expected 2 sprites (1 listed + 1 spawn), got %d", len(level.Sprites))
	}
	if got := level.Sprites[1]; got.X != 3.5 || got.Y != 2.5 || got.Texture != 0 {
		t.Errorf("Expected spawn sprite at (3.5,2.5), got %+v", got)
	}
}

func TestLevelFile_Resolve(t *testing.T) {
	tests := []struct {
		name string
		lf   LevelFile
		want error
	}{
		{"no map", LevelFile{}, ErrEmptyMap},
		{"open border", LevelFile{Rows: []string{"1.1", "1+1", "111"}}, ErrMapNotEnclosed},
		{"no start", LevelFile{Rows: []string{"111", "1.1", "111"}}, ErrNoStart},
		{"start in wall", LevelFile{Rows: []string{"111", "1.1", "111"}, Start: []float64{0.5, 0.5}}, ErrStartBlocked},
		{"unknown letter", LevelFile{Rows: []string{"1111", "1+z1", "1111"}}, ErrUnknownSpawn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.lf.Resolve("")
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLevelFile_ExplicitStart(t *testing.T) {
	lf := LevelFile{Rows: []string{"1111", "1..1", "1111"}, Start: []float64{2.25, 1.75}, Plane: 0.8}
	level, err := lf.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if level.Start.X != 2.25 || level.Start.Y != 1.75 {
		t.Errorf("Expected explicit start, got %v", level.Start)
	}
	if level.Direction.X != -1 || level.Direction.Y != 0 {
		t.Errorf("Expected default direction (-1,0), got %v", level.Direction)
	}
	if level.PlaneLength != 0.8 {
		t.Errorf("Expected plane length 0.8, got %f", level.PlaneLength)
	}
}
