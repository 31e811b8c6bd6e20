package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// ErrBoardFull is returned by PlaceFood when the snake covers every cell.
var ErrBoardFull = errors.New("snake: no free cell for food")

// maxFoodSamples bounds rejection sampling before falling back to a scan.
const maxFoodSamples = 64

// PlaceFood picks a uniformly random cell in [0, cols) x [0, rows) that no
// segment occupies. It samples random cells first and, if the board is
// crowded, falls back to choosing among the collected free cells, so it
// always terminates. ErrBoardFull is returned when no free cell exists.
func PlaceFood(s Snake, cols, rows int, rng *rand.Rand) (core.Cell, error) {
	if cols <= 0 || rows <= 0 {
		return core.Cell{}, ErrBoardFull
	}

	occupied := make(map[core.Cell]struct{}, len(s))
	for _, seg := range s {
		if seg.X >= 0 && seg.X < cols && seg.Y >= 0 && seg.Y < rows {
			occupied[seg] = struct{}{}
		}
	}
	free := cols*rows - len(occupied)
	if free <= 0 {
		return core.Cell{}, ErrBoardFull
	}

	for range maxFoodSamples {
		c := core.Cell{X: rng.Intn(cols), Y: rng.Intn(rows)}
		if _, taken := occupied[c]; !taken {
			return c, nil
		}
	}

	// Crowded board: collect all empty cells
	emptyCells := make([]core.Cell, 0, free)
	for y := range rows {
		for x := range cols {
			c := core.Cell{X: x, Y: y}
			if _, taken := occupied[c]; !taken {
				emptyCells = append(emptyCells, c)
			}
		}
	}
	return emptyCells[rng.Intn(len(emptyCells))], nil
}
