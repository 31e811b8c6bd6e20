// Package snake implements the game rules: the snake body, food placement,
// the per-tick movement and collision engine, the input controller and the
// session that owns all mutable game state.
//
// Nothing in this package touches the terminal, the network, audio or disk.
// State transitions return a list of Effects that the loop driver hands to
// its collaborators.
package snake

import "github.com/vovakirdan/gridsnake/internal/core"

// Snake is the ordered list of body cells, head first.
// A Snake value is never modified in place once built; Advance returns a new one.
type Snake []core.Cell

// Initialize returns the starting snake for the given board and ruleset.
// The head sits on rules.Start with the rest of the body trailing behind it.
// A start that does not fit on the board is moved to the board centre.
func Initialize(board core.Board, rules core.Rules) Snake {
	n := max(rules.StartLength, 1)
	dir := rules.StartDir
	if !dir.Valid() {
		dir = core.DirRight
	}

	s := layout(rules.Start, dir, n)
	if s.fits(board) {
		return s
	}

	centre := core.Cell{X: board.Cols() / 2, Y: board.Rows() / 2}
	s = layout(centre, dir, n)
	if s.fits(board) {
		return s
	}

	// Board narrower than the snake: keep what fits, head first.
	kept := make(Snake, 0, n)
	for _, c := range s {
		if !board.Contains(c) {
			break
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		kept = append(kept, core.Cell{})
	}
	return kept
}

func layout(head core.Cell, dir core.Direction, n int) Snake {
	s := make(Snake, n)
	for i := range n {
		s[i] = core.Cell{X: head.X - i*dir.DX, Y: head.Y - i*dir.DY}
	}
	return s
}

func (s Snake) fits(board core.Board) bool {
	for _, c := range s {
		if !board.Contains(c) {
			return false
		}
	}
	return true
}

// Head returns the first cell. The zero cell is returned for an empty snake.
func (s Snake) Head() core.Cell {
	if len(s) == 0 {
		return core.Cell{}
	}
	return s[0]
}

// Tail returns the last cell.
func (s Snake) Tail() core.Cell {
	if len(s) == 0 {
		return core.Cell{}
	}
	return s[len(s)-1]
}

// Contains reports whether any segment occupies c.
func (s Snake) Contains(c core.Cell) bool {
	for _, seg := range s {
		if seg == c {
			return true
		}
	}
	return false
}

// Advance moves the snake one step in dir.
// The new head is prepended; the tail is dropped unless ateFood is set,
// in which case the snake grows by one. The receiver is left untouched.
func (s Snake) Advance(dir core.Direction, ateFood bool) Snake {
	keep := len(s)
	if !ateFood && keep > 0 {
		keep--
	}

	next := make(Snake, 0, keep+1)
	next = append(next, s.Head().Add(dir))
	next = append(next, s[:keep]...)
	return next
}

// HitsSelf reports whether the head shares a cell with any segment at index
// from or later. Segments before from cannot reach the head in a single move.
func (s Snake) HitsSelf(from int) bool {
	if len(s) == 0 {
		return false
	}
	head := s[0]
	for i := max(from, 1); i < len(s); i++ {
		if s[i] == head {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the snake.
func (s Snake) Clone() Snake {
	out := make(Snake, len(s))
	copy(out, s)
	return out
}
