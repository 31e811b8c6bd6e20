package loop

import "github.com/vovakirdan/gridsnake/internal/snake"

// Renderer draws a snapshot. It must not block for long; remote renderers queue.
type Renderer interface {
	Render(snap snake.Snapshot)
}

// HighScoreStore persists the best score. Get returns 0 when nothing is stored.
type HighScoreStore interface {
	Get() (int, error)
	Set(score int) error
}

// SoundPlayer plays the game's two sounds without blocking.
type SoundPlayer interface {
	PlayEat()
	PlayGameOver()
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(snap snake.Snapshot)

// Render calls f(snap).
func (f RendererFunc) Render(snap snake.Snapshot) { f(snap) }

type nopRenderer struct{}

func (nopRenderer) Render(snake.Snapshot) {}

type nopSound struct{}

func (nopSound) PlayEat()      {}
func (nopSound) PlayGameOver() {}

type nopStore struct{}

func (nopStore) Get() (int, error) { return 0, nil }
func (nopStore) Set(int) error     { return nil }
