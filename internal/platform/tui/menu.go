package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// MenuModel lets the player pick a ruleset.
type MenuModel struct {
	variants []registry.Variant
	cursor   int
	scores   *storage.Book
	painter  *Painter
	keys     MenuKeyMap
	help     help.Model
	width    int
	height   int

	quitting       bool
	selected       *registry.Variant
	openScoreboard bool
}

// NewMenuModel creates a menu over all registered variants.
// scores may be nil, in which case best scores and the scoreboard are hidden.
func NewMenuModel(scores *storage.Book, painter *Painter, width, height int) MenuModel {
	if painter == nil {
		painter = NewPainter(nil)
	}
	return MenuModel{
		variants: registry.List(),
		scores:   scores,
		painter:  painter,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.variants)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.variants) > 0 {
			v := m.variants[m.cursor]
			m.selected = &v
		}

	case key.Matches(msg, m.keys.Scores):
		if m.scores != nil {
			m.openScoreboard = true
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	title := m.painter.Style().Bold(true).Foreground(lipgloss.Color("10"))
	dim := m.painter.Style().Foreground(lipgloss.Color("245"))
	active := m.painter.Style().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(title.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dim.Render("Choose a ruleset"), m.width))
	b.WriteString("\n\n")

	for i, v := range m.variants {
		cursor, style := "  ", m.painter.Style()
		if i == m.cursor {
			cursor, style = "> ", active
		}
		line := cursor + v.Title
		if m.scores != nil {
			line += fmt.Sprintf("  (best %d)", m.scores.Get(v.ID))
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
		if v.Description != "" {
			b.WriteString(centerText(dim.Render(v.Description), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *registry.Variant {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers every line of text within width.
func centerText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
