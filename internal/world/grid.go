package world

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMap is returned for a grid with no rows or no columns.
	ErrEmptyMap = errors.New("map has no cells")
	// ErrRaggedMap is returned when rows differ in length.
	ErrRaggedMap = errors.New("map rows have inconsistent width")
	// ErrMapNotEnclosed is returned when a border cell is open. Rays that
	// leave an open map never terminate, so every playable map must be
	// enclosed by solid tiles.
	ErrMapNotEnclosed = errors.New("map is not enclosed by solid tiles")
)

// TileEmpty is the cell ID for open floor. Any other ID is a wall whose
// texture is wall atlas slot ID-1.
const TileEmpty uint8 = 0

// GridMap is a fixed-size tile grid. Cells are stored row-major and
// addressed as (x, y) with x the column and y the row.
type GridMap struct {
	width  int
	height int
	cells  []uint8
}

// NewGridMap builds a map from rows of tile IDs. rows[y][x] is cell (x, y).
func NewGridMap(rows [][]uint8) (*GridMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len(rows[0])
	cells := make([]uint8, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d: %w", y, width, len(row), ErrRaggedMap)
		}
		cells = append(cells, row...)
	}
	return &GridMap{width: width, height: len(rows), cells: cells}, nil
}

// MustGridMap is NewGridMap that panics on error. Intended for tests and
// built-in maps.
func MustGridMap(rows [][]uint8) *GridMap {
	g, err := NewGridMap(rows)
	if err != nil {
		panic("invalid grid map: " + err.Error())
	}
	return g
}

// Width returns the number of columns.
func (g *GridMap) Width() int { return g.width }

// Height returns the number of rows.
func (g *GridMap) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell.
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile ID at (x, y). ok is false outside the grid; callers
// treat that as "no hit", never as an error.
func (g *GridMap) At(x, y int) (id uint8, ok bool) {
	if !g.InBounds(x, y) {
		return TileEmpty, false
	}
	return g.cells[y*g.width+x], true
}

// IsTileBlocking reports whether movement into (x, y) is blocked. Cells
// outside the grid block, so a player can never walk off the map.
func (g *GridMap) IsTileBlocking(x, y int) bool {
	id, ok := g.At(x, y)
	return !ok || id != TileEmpty
}

// GetWorldBounds returns the grid size in tiles.
func (g *GridMap) GetWorldBounds() (width, height int) {
	return g.width, g.height
}

// MaxTileID returns the highest tile ID present.
func (g *GridMap) MaxTileID() uint8 {
	var max uint8
	for _, id := range g.cells {
		if id > max {
			max = id
		}
	}
	return max
}

// ValidateEnclosed checks that every border cell is solid.
func (g *GridMap) ValidateEnclosed() error {
	for x := 0; x < g.width; x++ {
		if g.cells[x] == TileEmpty {
			return fmt.Errorf("open cell (%d, 0): %w", x, ErrMapNotEnclosed)
		}
		if g.cells[(g.height-1)*g.width+x] == TileEmpty {
			return fmt.Errorf("open cell (%d, %d): %w", x, g.height-1, ErrMapNotEnclosed)
		}
	}
	for y := 0; y < g.height; y++ {
		if g.cells[y*g.width] == TileEmpty {
			return fmt.Errorf("open cell (0, %d): %w", y, ErrMapNotEnclosed)
		}
		if g.cells[y*g.width+g.width-1] == TileEmpty {
			return fmt.Errorf("open cell (%d, %d): %w", g.width-1, y, ErrMapNotEnclosed)
		}
	}
	return nil
}

// Rows returns a copy of the grid as rows of tile IDs.
func (g *GridMap) Rows() [][]uint8 {
	rows := make([][]uint8, g.height)
	for y := range rows {
		rows[y] = append([]uint8(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}
