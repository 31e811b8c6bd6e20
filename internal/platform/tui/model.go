// Package tui is the terminal client: a Bubble Tea front end for local play
// and for remote play over SSH.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/loop"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// EventMsg delivers a driver event to the Bubble Tea update loop.
type EventMsg struct {
	Event session.Event
	from  *session.ChannelSession
}

// closedMsg is sent once the event stream of a game ends.
type closedMsg struct{}

// waitForEvent blocks until the session has an event or is closed.
func waitForEvent(s *session.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return EventMsg{Event: evt, from: s}
		case <-s.Done():
			return closedMsg{}
		}
	}
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Variant   registry.Variant
	Runtime   core.RuntimeConfig
	Skin      *snake.Skin
	Scores    loop.HighScoreStore
	Sound     loop.SoundPlayer // nil plays nothing
	Logger    *log.Logger
	Painter   *Painter
	SessionID session.ID

	// Scheduler overrides the real-time ticker. Tests use a ManualScheduler.
	Scheduler loop.Scheduler
}

// GameModel runs one snake game in the terminal. The driver ticks on its own
// goroutine and reports frames and sounds through a ChannelSession, which the
// model drains with waitForEvent.
type GameModel struct {
	driver  *loop.Driver
	events  *session.ChannelSession
	sound   loop.SoundPlayer
	screen  *core.Screen
	painter *Painter
	keys    KeyMap
	help    help.Model
	snap    snake.Snapshot
	width   int
	height  int

	quitting   bool
	backToMenu bool
}

// NewGameModel creates the driver for opts.Variant. The game starts Idle;
// Enter starts it.
func NewGameModel(opts GameOptions) GameModel {
	if opts.SessionID == "" {
		opts.SessionID = "local"
	}
	if opts.Sound == nil {
		opts.Sound = audio.Silent{}
	}
	if opts.Painter == nil {
		opts.Painter = NewPainter(nil)
	}

	events := session.NewChannelSession(opts.SessionID, session.DefaultBufferSize)
	driverOpts := []loop.Option{
		loop.WithRenderer(events),
		loop.WithSound(events),
	}
	if opts.Scores != nil {
		driverOpts = append(driverOpts, loop.WithHighScores(opts.Scores))
	}
	if opts.Logger != nil {
		driverOpts = append(driverOpts, loop.WithLogger(opts.Logger))
	}
	if opts.Scheduler != nil {
		driverOpts = append(driverOpts, loop.WithScheduler(opts.Scheduler))
	}

	driver := loop.New(loop.Config{
		Variant:  opts.Variant,
		Board:    opts.Runtime.Board,
		Interval: opts.Runtime.TickInterval,
		Seed:     opts.Runtime.Seed,
		Skin:     opts.Skin,
	}, driverOpts...)

	w, h := snake.ScreenSize(opts.Runtime.Board)
	return GameModel{
		driver:  driver,
		events:  events,
		sound:   opts.Sound,
		screen:  core.NewScreen(w, h),
		painter: opts.Painter,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		snap:    driver.Snapshot(),
	}
}

// Init starts draining driver events.
func (m GameModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case EventMsg:
		// Leftovers from a game that was closed before this one started.
		if msg.from != nil && msg.from != m.events {
			return m, nil
		}
		m.handleEvent(msg.Event)
		return m, waitForEvent(m.events)

	case closedMsg:
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if dir, ok := core.DirectionFromAction(action); ok {
		m.driver.Input(dir)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case core.ActionConfirm:
		m.driver.Confirm()

	case core.ActionRestart:
		m.driver.Restart()

	// Rulesets with a random skin reject both with ErrSkinLocked.
	case core.ActionNextColor:
		_ = m.driver.SetSkin(m.snap.Skin.NextColor())

	case core.ActionNextIcon:
		_ = m.driver.SetSkin(m.snap.Skin.NextIcon())

	case core.ActionNone:
		if key.Matches(msg, m.keys.Back) && m.snap.State != snake.StateRunning {
			m.backToMenu = true
			m.Close()
		}
	}
	return m, nil
}

func (m *GameModel) handleEvent(evt session.Event) {
	switch e := evt.(type) {
	case session.FrameEvent:
		m.snap = e.Snapshot
	case session.SoundEvent:
		switch e.Sound {
		case audio.SoundEat:
			m.sound.PlayEat()
		case audio.SoundGameOver:
			m.sound.PlayGameOver()
		}
	}
}

// View renders the board, or a notice when the terminal is too small.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	if m.width > 0 && m.height > 0 && (m.width < m.screen.Width() || m.height < m.screen.Height()+1) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d\n\nq to quit",
			m.screen.Width(), m.screen.Height()+1, m.width, m.height)
	}

	snake.Render(m.screen, m.snap)
	return m.painter.Paint(m.screen) + "\n" + m.help.View(m.keys)
}

// Snapshot returns the last frame the model received.
func (m GameModel) Snapshot() snake.Snapshot {
	return m.snap
}

// Close stops the driver and ends the event stream. Safe to call twice.
func (m GameModel) Close() {
	m.driver.Close()
	m.events.Close()
}

// IsQuitting reports whether the user asked to exit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked for the variant menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunOptions configures a local terminal session.
type RunOptions struct {
	Game GameOptions

	// Scores is used by the menu and scoreboard. Nil hides the scoreboard.
	Scores *storage.Book

	// Menu starts at the variant picker instead of Game.Variant.
	Menu bool
}

// Run plays in the local terminal until the user quits.
func Run(opts RunOptions) error {
	model := NewAppModel(opts.Game, opts.Scores, opts.Menu)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithOutput(os.Stdout),
	)

	final, err := p.Run()
	if app, ok := final.(AppModel); ok {
		app.Close()
	}
	return err
}
