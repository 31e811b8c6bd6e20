// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Cell is a grid-aligned position. X grows to the right, Y grows downwards.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one step away in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit step on the grid.
// Valid directions are the four axis-aligned steps; the zero value is "none".
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// The four movement directions.
var (
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// IsZero reports whether d is the zero vector.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Valid reports whether d is one of the four unit steps.
func (d Direction) Valid() bool {
	return Abs(d.DX)+Abs(d.DY) == 1
}

// Opposite reports whether d is the exact reverse of other.
func (d Direction) Opposite(other Direction) bool {
	return !d.IsZero() && d.DX == -other.DX && d.DY == -other.DY
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return Direction{}, false
}

// Board describes the play field in board units (pixels on the canvas).
// Width and Height are multiples of CellSize.
type Board struct {
	CellSize int `json:"cellSize"`
	Width    int `json:"width"`
	Height   int `json:"height"`
}

// DefaultBoard returns a 400x400 board with 20-unit cells.
func DefaultBoard() Board {
	return Board{CellSize: 20, Width: 400, Height: 400}
}

// Cols returns the number of grid columns.
func (b Board) Cols() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Width / b.CellSize
}

// Rows returns the number of grid rows.
func (b Board) Rows() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Height / b.CellSize
}

// Cells returns the total number of cells on the board.
func (b Board) Cells() int {
	return b.Cols() * b.Rows()
}

// Contains reports whether c lies on the board.
func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.Cols() && c.Y >= 0 && c.Y < b.Rows()
}

// ToUnits converts a grid cell to the board-unit position of its top-left corner.
func (b Board) ToUnits(c Cell) (x, y int) {
	return c.X * b.CellSize, c.Y * b.CellSize
}

// FromUnits converts a board-unit position to the grid cell containing it.
// Negative coordinates map to negative cells.
func (b Board) FromUnits(x, y int) Cell {
	return Cell{X: floorDiv(x, b.CellSize), Y: floorDiv(y, b.CellSize)}
}

// StepUnits returns the board-unit displacement of one move in direction d.
func (b Board) StepUnits(d Direction) (dx, dy int) {
	return d.DX * b.CellSize, d.DY * b.CellSize
}

// Validate checks that the board is usable.
func (b Board) Validate() error {
	if b.CellSize <= 0 {
		return fmt.Errorf("board: cell size must be positive, got %d", b.CellSize)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("board: dimensions must be positive, got %dx%d", b.Width, b.Height)
	}
	if b.Width%b.CellSize != 0 || b.Height%b.CellSize != 0 {
		return fmt.Errorf("board: %dx%d is not a multiple of cell size %d", b.Width, b.Height, b.CellSize)
	}
	return nil
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
