package snake

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

func newTestSession(t *testing.T, variant string) *Session {
	t.Helper()
	v, err := registry.Get(variant)
	if err != nil {
		t.Fatalf("registry.Get(%q): %v", variant, err)
	}
	s := NewSession(v, core.DefaultBoard(), 42, 0)
	s.Start()
	return s
}

// feed puts the food right in front of the head.
func feed(s *Session) {
	s.food = s.snake.Head().Add(s.Direction())
	s.hasFood = true
}

// starve moves the food out of the snake's way.
func starve(s *Session) {
	s.food = core.Cell{X: 0, Y: 19}
	s.hasFood = true
}

func TestNewSessionIsIdle(t *testing.T) {
	v, _ := registry.Get(VariantClassic)
	s := NewSession(v, core.DefaultBoard(), 1, 7)

	if s.State() != StateIdle {
		t.Errorf("state = %v, expected idle", s.State())
	}
	if s.HighScore() != 7 {
		t.Errorf("high score = %d, expected 7", s.HighScore())
	}
	if s.Tick() != nil {
		t.Error("ticking an idle session should do nothing")
	}
}

func TestStart(t *testing.T) {
	s := newTestSession(t, VariantClassic)

	if s.State() != StateRunning {
		t.Fatalf("state = %v, expected running", s.State())
	}
	if len(s.snake) != 3 || s.Direction() != core.DirRight || s.Score() != 0 {
		t.Errorf("unexpected start: len=%d dir=%v score=%d", len(s.snake), s.Direction(), s.Score())
	}
	if !s.hasFood || s.snake.Contains(s.food) {
		t.Errorf("food %v must be placed off the snake", s.food)
	}
}

func TestTickWithoutFoodKeepsLength(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	starve(s)

	effects := s.Tick()
	if len(s.snake) != 3 {
		t.Errorf("len = %d, expected 3", len(s.snake))
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, expected 0", s.Score())
	}
	if !Has(effects, EffectRender) || Has(effects, EffectEatSound) {
		t.Errorf("unexpected effects %v", effects)
	}
}

func TestTickWithFoodGrows(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	feed(s)

	effects := s.Tick()
	if len(s.snake) != 4 {
		t.Errorf("len = %d, expected 4", len(s.snake))
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if e, ok := Find(effects, EffectEatSound); !ok || e.Value != 1 {
		t.Errorf("expected eat sound with score 1, got %v", effects)
	}
	if e, ok := Find(effects, EffectHighScore); !ok || e.Value != 1 {
		t.Errorf("expected high score 1, got %v", effects)
	}
	if s.snake.Contains(s.food) {
		t.Errorf("new food %v placed on the snake", s.food)
	}
}

func TestTickInUnits(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	starve(s)
	board := core.DefaultBoard()

	units := func() [][2]int {
		var out [][2]int
		for _, c := range s.snake {
			x, y := board.ToUnits(c)
			out = append(out, [2]int{x, y})
		}
		return out
	}

	if got := units(); !reflect.DeepEqual(got, [][2]int{{200, 200}, {180, 200}, {160, 200}}) {
		t.Fatalf("start = %v", got)
	}
	if dx, dy := board.StepUnits(s.Direction()); dx != 20 || dy != 0 {
		t.Fatalf("step = (%d,%d), expected (20,0)", dx, dy)
	}

	s.Tick()
	if got := units(); !reflect.DeepEqual(got, [][2]int{{220, 200}, {200, 200}, {180, 200}}) {
		t.Errorf("after tick = %v", got)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, expected 0", s.Score())
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name  string
		snake Snake
		dir   core.Direction
	}{
		{"right edge", Snake{{19, 10}, {18, 10}, {17, 10}}, core.DirRight},
		{"left edge", Snake{{0, 10}, {1, 10}, {2, 10}}, core.DirLeft},
		{"top edge", Snake{{5, 0}, {5, 1}, {5, 2}}, core.DirUp},
		{"bottom edge", Snake{{5, 19}, {5, 18}, {5, 17}}, core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, VariantClassic)
			s.snake = tc.snake
			s.ctrl.Reset(tc.dir)
			starve(s)
			s.food = core.Cell{X: 10, Y: 10}

			effects := s.Tick()
			if s.State() != StateEnded {
				t.Fatalf("state = %v, expected ended", s.State())
			}
			if !Has(effects, EffectGameOver) || !Has(effects, EffectGameOverSound) || !Has(effects, EffectRender) {
				t.Errorf("missing game-over effects: %v", effects)
			}
			if s.Tick() != nil {
				t.Error("no ticks after game over")
			}
		})
	}
}

func TestRightEdgeInUnits(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	board := core.DefaultBoard()
	starve(s)

	// Run right until the head reaches x = width - cellSize
	for {
		x, _ := board.ToUnits(s.snake.Head())
		if x == board.Width-board.CellSize {
			break
		}
		s.Tick()
		if s.State() != StateRunning {
			t.Fatalf("game ended early at x=%d", x)
		}
	}

	s.Tick()
	if s.State() != StateEnded {
		t.Errorf("state = %v, expected ended after leaving the board", s.State())
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	// Head at (5,5) heading down would close a loop onto old index 3
	s.snake = Snake{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}
	s.ctrl.Reset(core.DirUp)
	starve(s)
	s.Input(core.DirRight)

	effects := s.Tick()
	if s.State() != StateEnded {
		t.Fatalf("state = %v, expected ended", s.State())
	}
	if s.Score() != 0 || Has(effects, EffectEatSound) {
		t.Error("collision must not score")
	}
	// Reported body is the post-advance one
	if s.snake.Head() != (core.Cell{X: 6, Y: 5}) || len(s.snake) != 5 {
		t.Errorf("snake = %v", s.snake)
	}
}

func TestShortSnakeNeverHitsItself(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	// Chasing its own tail: the tail moves away in the same step
	s.snake = Snake{{5, 5}, {5, 6}, {6, 6}, {6, 5}}
	s.ctrl.Reset(core.DirUp)
	starve(s)
	s.Input(core.DirRight)

	for i := range 8 {
		s.Tick()
		if s.State() != StateRunning {
			t.Fatalf("length-4 snake collided at step %d: %v", i, s.snake)
		}
		// keep circling clockwise
		switch s.Direction() {
		case core.DirRight:
			s.Input(core.DirDown)
		case core.DirDown:
			s.Input(core.DirLeft)
		case core.DirLeft:
			s.Input(core.DirUp)
		case core.DirUp:
			s.Input(core.DirRight)
		}
	}
}

func TestInputFirstChangeWins(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	starve(s)

	s.Input(core.DirUp)
	s.Input(core.DirRight)
	if s.Direction() != core.DirUp {
		t.Errorf("direction = %v, expected up", s.Direction())
	}

	s.Tick()
	if s.snake.Head() != (core.Cell{X: 10, Y: 9}) {
		t.Errorf("head = %v, expected (10,9)", s.snake.Head())
	}
}

func TestInputReversalIgnored(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	if s.Input(core.DirLeft) {
		t.Error("reversal accepted")
	}
	if s.Direction() != core.DirRight {
		t.Errorf("direction = %v, expected right", s.Direction())
	}
}

func TestInputIgnoredWhenOver(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	s.state = StateEnded
	if s.Input(core.DirUp) {
		t.Error("input accepted after game over")
	}
}

func TestHighScoreSurvivesRestart(t *testing.T) {
	s := newTestSession(t, VariantClassic)

	for range 5 {
		feed(s)
		s.Tick()
	}
	if s.Score() != 5 || s.HighScore() != 5 {
		t.Fatalf("score=%d high=%d, expected 5/5", s.Score(), s.HighScore())
	}

	s.Start()
	if s.Score() != 0 {
		t.Errorf("score after restart = %d, expected 0", s.Score())
	}
	if s.HighScore() != 5 {
		t.Errorf("high score after restart = %d, expected 5", s.HighScore())
	}
}

func TestHighScoreOnlyRaisedWhenBeaten(t *testing.T) {
	v, _ := registry.Get(VariantClassic)
	s := NewSession(v, core.DefaultBoard(), 42, 3)
	s.Start()

	feed(s)
	effects := s.Tick()
	if Has(effects, EffectHighScore) {
		t.Error("score 1 must not beat high score 3")
	}
	if s.HighScore() != 3 {
		t.Errorf("high score = %d, expected 3", s.HighScore())
	}
}

func TestBoardFullWins(t *testing.T) {
	v, _ := registry.Get(VariantCustom)
	s := NewSession(v, core.Board{CellSize: 1, Width: 2, Height: 1}, 1, 0)
	s.Start()

	s.snake = Snake{{0, 0}}
	s.food = core.Cell{X: 1, Y: 0}
	s.hasFood = true
	s.ctrl.Reset(core.DirRight)

	effects := s.Tick()
	if s.State() != StateWon {
		t.Fatalf("state = %v, expected won", s.State())
	}
	if e, ok := Find(effects, EffectBoardFull); !ok || e.Value != 1 {
		t.Errorf("expected board-full effect with score 1, got %v", effects)
	}
	if Has(effects, EffectGameOverSound) {
		t.Error("winning should not play the game-over sound")
	}
	if s.Tick() != nil {
		t.Error("no ticks after winning")
	}
}

func TestDeterminism(t *testing.T) {
	v, _ := registry.Get(VariantClassic)
	run := func() Snapshot {
		s := NewSession(v, core.DefaultBoard(), 12345, 0)
		s.Start()
		for i := 0; i < 60; i++ {
			switch i {
			case 3:
				s.Input(core.DirDown)
			case 8:
				s.Input(core.DirLeft)
			case 12:
				s.Input(core.DirUp)
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different games:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	snap := s.Snapshot()
	snap.Snake[0] = core.Cell{X: -5, Y: -5}

	if s.snake.Head() == (core.Cell{X: -5, Y: -5}) {
		t.Error("snapshot aliases live state")
	}
	if snap.State != StateRunning || snap.Variant != VariantClassic {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestClassicSkinIsRandomFromPalette(t *testing.T) {
	s := newTestSession(t, VariantClassic)
	for range 10 {
		if !slices.Contains(ClassicColors, s.Skin().BodyColor) {
			t.Fatalf("color %q not in the classic palette", s.Skin().BodyColor)
		}
		s.Start()
	}

	if err := s.SetSkin(DefaultSkin()); !errors.Is(err, ErrSkinLocked) {
		t.Errorf("SetSkin on classic = %v, expected ErrSkinLocked", err)
	}
}

func TestCustomSkinPersistsAcrossRestart(t *testing.T) {
	s := newTestSession(t, VariantCustom)
	if len(s.snake) != 1 {
		t.Errorf("custom start length = %d, expected 1", len(s.snake))
	}

	skin := Skin{BodyColor: "#0000FF", HeadIcon: "👀"}
	if err := s.SetSkin(skin); err != nil {
		t.Fatalf("SetSkin: %v", err)
	}
	s.Start()
	if s.Skin() != skin {
		t.Errorf("skin after restart = %+v, expected %+v", s.Skin(), skin)
	}

	if err := s.SetSkin(Skin{BodyColor: "#123456", HeadIcon: "👀"}); !errors.Is(err, ErrUnknownSkin) {
		t.Errorf("expected ErrUnknownSkin, got %v", err)
	}
}
