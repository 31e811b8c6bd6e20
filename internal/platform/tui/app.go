package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridsnake/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// AppModel is the top-level terminal model: menu -> game -> menu, with the
// scoreboard reachable from the menu. Local play and SSH sessions both use it.
type AppModel struct {
	opts   GameOptions
	scores *storage.Book
	active screen
	width  int
	height int

	menu  MenuModel
	game  *GameModel
	board ScoreboardModel

	// live is shared by every copy of the model, so whoever holds the
	// original can stop the game Bubble Tea is running.
	live *liveGame

	quitting bool
}

type liveGame struct {
	mu   sync.Mutex
	game *GameModel
}

func (l *liveGame) set(g *GameModel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.game = g
}

func (l *liveGame) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game != nil {
		l.game.Close()
		l.game = nil
	}
}

// NewAppModel creates the app. With menu false it goes straight into a game
// of opts.Variant.
func NewAppModel(opts GameOptions, scores *storage.Book, menu bool) AppModel {
	if opts.Painter == nil {
		opts.Painter = NewPainter(nil)
	}
	m := AppModel{
		opts:   opts,
		scores: scores,
		menu:   NewMenuModel(scores, opts.Painter, 0, 0),
		live:   &liveGame{},
	}
	if !menu {
		m.startGame()
	}
	return m
}

func (m *AppModel) startGame() {
	opts := m.opts
	if m.scores != nil {
		opts.Scores = m.scores.For(opts.Variant.ID)
	}
	game := NewGameModel(opts)
	if m.width > 0 {
		updated, _ := game.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		game = updated.(GameModel)
	}
	m.game = &game
	m.live.set(m.game)
	m.active = screenGame
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.active == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.active {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		m.opts.Variant = *m.menu.Selected()
		m.startGame()
		return m, m.game.Init()

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.scores, m.opts.Painter, m.width, m.height)
		m.active = screenScores
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.game.Update(msg)
	game := updated.(GameModel)
	m.game = &game

	switch {
	case game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case game.BackToMenu():
		m.game = nil
		m.live.set(nil)
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.board.Update(msg)
	m.board = updated.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

func (m *AppModel) toMenu() {
	m.menu = NewMenuModel(m.scores, m.opts.Painter, m.width, m.height)
	m.active = screenMenu
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.active {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Close stops any running game. Safe to call more than once and from any
// goroutine.
func (m AppModel) Close() {
	m.live.close()
}
