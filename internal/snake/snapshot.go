package snake

import "github.com/vovakirdan/gridsnake/internal/core"

// State is the lifecycle state of a session.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateEnded   State = "ended" // collision
	StateWon     State = "won"   // board full
)

// Over reports whether the game has finished.
func (s State) Over() bool {
	return s == StateEnded || s == StateWon
}

// Snapshot is a self-contained copy of the session state.
// It is what renderers receive and what the browser client is sent.
type Snapshot struct {
	Variant   string         `json:"variant"`
	Tick      uint64         `json:"tick"`
	Board     core.Board     `json:"board"`
	Snake     []core.Cell    `json:"snake"`
	Food      core.Cell      `json:"food"`
	HasFood   bool           `json:"hasFood"`
	Dir       core.Direction `json:"dir"`
	Score     int            `json:"score"`
	HighScore int            `json:"highScore"`
	State     State          `json:"state"`
	Skin      Skin           `json:"skin"`
}

// Head returns the head cell of the snapshot.
func (s Snapshot) Head() core.Cell {
	return Snake(s.Snake).Head()
}

// Snapshot returns the current session state. The snake is copied.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Variant:   s.variant,
		Tick:      s.tick,
		Board:     s.board,
		Snake:     s.snake.Clone(),
		Food:      s.food,
		HasFood:   s.hasFood,
		Dir:       s.ctrl.Direction(),
		Score:     s.score,
		HighScore: s.highScore,
		State:     s.state,
		Skin:      s.skin,
	}
}
