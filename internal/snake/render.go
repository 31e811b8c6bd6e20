package snake

import (
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Terminal layout: a HUD line, a separator, then the boxed board.
// Every grid cell is two characters wide so the board looks square.
const (
	hudHeight = 2
	cellWidth = 2
)

// ScreenSize returns the screen dimensions needed to draw the board.
func ScreenSize(board core.Board) (width, height int) {
	return board.Cols()*cellWidth + 2, board.Rows() + 2 + hudHeight
}

// Render draws a snapshot onto dst. Anything outside dst is clipped.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	renderHUD(dst, snap)

	cols, rows := snap.Board.Cols(), snap.Board.Rows()
	dst.DrawBox(0, hudHeight, cols*cellWidth+2, rows+2, core.ColorGray)

	if snap.HasFood {
		x, y := cellOrigin(snap.Food)
		dst.SetColored(x, y, '◖', core.ColorBrightRed)
		dst.SetColored(x+1, y, '◗', core.ColorBrightRed)
	}

	renderSnake(dst, snap)

	switch snap.State {
	case StateEnded:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  Best %d", snap.Score, snap.HighScore), "Enter or R to retry")
	case StateWon:
		renderOverlay(dst, "Board cleared!", fmt.Sprintf("Score %d", snap.Score), "Enter or R to play again")
	case StateIdle:
		renderOverlay(dst, "Snake", "", "Press Enter to start")
	}
}

func cellOrigin(c core.Cell) (int, int) {
	return 1 + c.X*cellWidth, hudHeight + 1 + c.Y
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Snake (%s) Score: %d  High: %d", snap.Variant, snap.Score, snap.HighScore)
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func renderSnake(dst *core.Screen, snap Snapshot) {
	color := snap.Skin.TermColor()
	body := Snake(snap.Snake)

	// Tail first so the head wins if segments overlap after a collision.
	for i := len(body) - 1; i >= 1; i-- {
		x, y := cellOrigin(body[i])
		if !snap.Board.Contains(body[i]) {
			continue
		}
		dst.SetColored(x, y, '█', color)
		dst.SetColored(x+1, y, '█', color)
	}

	head := body.Head()
	if len(body) == 0 || !snap.Board.Contains(head) {
		return
	}
	x, y := cellOrigin(head)
	dst.SetColored(x, y, '█', color)
	dst.SetColored(x+1, y, '█', color)

	// The eye sits on the side the snake is heading to.
	if eye := snap.Skin.HeadRune(); eye != 0 {
		ex := x
		if snap.Dir == core.DirRight {
			ex = x + 1
		}
		dst.SetColored(ex, y, eye, core.ColorBrightWhite)
	}
}

func renderOverlay(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, core.ColorBrightWhite)
	}
}
