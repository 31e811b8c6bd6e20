package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// Session owns all mutable state of one game: snake, food, direction, score,
// high score and lifecycle state. It is not safe for concurrent use; the loop
// driver serialises access.
type Session struct {
	variant string
	rules   core.Rules
	board   core.Board
	rng     *rand.Rand

	tick      uint64
	snake     Snake
	food      core.Cell
	hasFood   bool
	ctrl      Controller
	score     int
	highScore int
	state     State

	skin   Skin // current look
	chosen Skin // player's pick, kept across restarts
}

// NewSession creates an idle session for variant v on the given board.
// A zero seed seeds the RNG from the clock.
func NewSession(v registry.Variant, board core.Board, seed int64, highScore int) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		variant:   v.ID,
		rules:     v.Rules,
		board:     board,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // game RNG
		highScore: max(highScore, 0),
		state:     StateIdle,
		chosen:    DefaultSkin(),
	}
	s.snake = Initialize(board, s.rules)
	s.ctrl = NewController(s.startDir())
	s.skin = s.chosen
	return s
}

func (s *Session) startDir() core.Direction {
	if s.rules.StartDir.Valid() {
		return s.rules.StartDir
	}
	return core.DirRight
}

// Start resets the game and moves it to Running. It is also the restart.
// The high score and the chosen skin survive.
func (s *Session) Start() []Effect {
	s.tick = 0
	s.score = 0
	s.snake = Initialize(s.board, s.rules)
	s.ctrl.Reset(s.startDir())
	s.state = StateRunning

	if s.rules.SkinMode == core.SkinRandom {
		s.skin = RandomSkin(s.rng)
	} else {
		s.skin = s.chosen
	}

	if err := s.placeFood(); err != nil {
		s.state = StateWon
		return []Effect{{Kind: EffectBoardFull, Value: s.score}, {Kind: EffectRender}}
	}
	return []Effect{{Kind: EffectRender}}
}

func (s *Session) placeFood() error {
	food, err := PlaceFood(s.snake, s.board.Cols(), s.board.Rows(), s.rng)
	if err != nil {
		s.hasFood = false
		return err
	}
	s.food = food
	s.hasFood = true
	return nil
}

// Input requests a direction change for the next move.
// It returns false when the request is ignored.
func (s *Session) Input(d core.Direction) bool {
	if s.state != StateRunning {
		return false
	}
	return s.ctrl.Request(d)
}

// SetSkin sets the player's skin. It applies immediately and on every restart.
func (s *Session) SetSkin(skin Skin) error {
	if s.rules.SkinMode != core.SkinChosen {
		return ErrSkinLocked
	}
	if err := skin.Validate(); err != nil {
		return err
	}
	s.chosen = skin
	s.skin = skin
	return nil
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the score of the current game.
func (s *Session) Score() int { return s.score }

// HighScore returns the best score seen by this session.
func (s *Session) HighScore() int { return s.highScore }

// Direction returns the direction the next move will use.
func (s *Session) Direction() core.Direction { return s.ctrl.Direction() }

// Skin returns the skin in use.
func (s *Session) Skin() Skin { return s.skin }

// Rules returns the ruleset the session plays by.
func (s *Session) Rules() core.Rules { return s.rules }

// Variant returns the variant ID.
func (s *Session) Variant() string { return s.variant }
