package snake

// EffectKind identifies a side effect requested by a session transition.
type EffectKind int

const (
	// EffectRender asks for the current snapshot to be drawn.
	EffectRender EffectKind = iota
	// EffectEatSound plays the eat sound. Value is the new score.
	EffectEatSound
	// EffectGameOver shows the game-over screen. Value is the final score.
	EffectGameOver
	// EffectGameOverSound plays the game-over sound.
	EffectGameOverSound
	// EffectBoardFull ends the game as won. Value is the final score.
	EffectBoardFull
	// EffectHighScore persists a new high score. Value is the high score.
	EffectHighScore
)

// Effect is one side effect for the driver to carry out.
type Effect struct {
	Kind  EffectKind
	Value int
}

func (k EffectKind) String() string {
	switch k {
	case EffectRender:
		return "render"
	case EffectEatSound:
		return "eat_sound"
	case EffectGameOver:
		return "game_over"
	case EffectGameOverSound:
		return "game_over_sound"
	case EffectBoardFull:
		return "board_full"
	case EffectHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// Find returns the first effect of the given kind.
func Find(effects []Effect, kind EffectKind) (Effect, bool) {
	for _, e := range effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

// Has reports whether effects contains an effect of the given kind.
func Has(effects []Effect, kind EffectKind) bool {
	_, ok := Find(effects, kind)
	return ok
}
