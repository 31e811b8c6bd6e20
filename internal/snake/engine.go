package snake

import "errors"

// Tick advances the game by one move.
//
// The direction committed since the previous tick is consumed and the
// controller re-armed. The snake advances, growing when the new head lands on
// the food. A head outside the board or on a body segment at index
// rules.SelfCollisionFrom or later ends the game without scoring. Otherwise
// eating scores a point, may raise the high score and places new food; when no
// free cell is left the game is won.
func (s *Session) Tick() []Effect {
	if s.state != StateRunning {
		return nil
	}
	s.tick++

	dir := s.ctrl.Direction()
	s.ctrl.BeginTick()

	next := s.snake.Head().Add(dir)
	ate := s.hasFood && next == s.food
	s.snake = s.snake.Advance(dir, ate)

	if !s.board.Contains(s.snake.Head()) || s.snake.HitsSelf(s.rules.SelfCollisionFrom) {
		s.state = StateEnded
		return []Effect{
			{Kind: EffectGameOver, Value: s.score},
			{Kind: EffectGameOverSound},
			{Kind: EffectRender},
		}
	}

	if !ate {
		return []Effect{{Kind: EffectRender}}
	}

	s.score++
	effects := []Effect{{Kind: EffectEatSound, Value: s.score}}
	if s.score > s.highScore {
		s.highScore = s.score
		effects = append(effects, Effect{Kind: EffectHighScore, Value: s.highScore})
	}
	if err := s.placeFood(); errors.Is(err, ErrBoardFull) {
		s.state = StateWon
		effects = append(effects, Effect{Kind: EffectBoardFull, Value: s.score})
	}
	return append(effects, Effect{Kind: EffectRender})
}
