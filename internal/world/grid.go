package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a room rectangle does not fit inside the
// grid. It signals a broken generator invariant and aborts generation.
var ErrOutOfBounds = errors.New("rectangle outside grid bounds")

// Grid is a fixed-size store of tiles, indexed [y][x].
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a new grid filled with walls.
func NewGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is a valid coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position. Positions outside the grid read
// as wall.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Set writes a tile. Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y][x] = t
}

// CarveRect fills r with t. Unlike Set it refuses rectangles that are not
// fully inside the grid.
func (g *Grid) CarveRect(r Rect, t Tile) error {
	if !r.within(g.Width, g.Height) {
		return fmt.Errorf("carve %+v in %dx%d grid: %w", r, g.Width, g.Height, ErrOutOfBounds)
	}
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			g.Tiles[y][x] = t
		}
	}
	return nil
}

// carveHorizontal carves a horizontal run of floor between x1 and x2 inclusive.
func (g *Grid) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.Set(x, y, TileFloor)
	}
}

// carveVertical carves a vertical run of floor between y1 and y2 inclusive.
func (g *Grid) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.Set(x, y, TileFloor)
	}
}

// Count returns how many tiles equal t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, row := range g.Tiles {
		for _, tile := range row {
			if tile == t {
				n++
			}
		}
	}
	return n
}

// positionsOf returns the coordinates of every tile equal to t in row-major order.
func (g *Grid) positionsOf(t Tile) []Point {
	var out []Point
	for y, row := range g.Tiles {
		for x, tile := range row {
			if tile == t {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}
