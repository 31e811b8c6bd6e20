package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// ScoreboardModel shows the high score of every ruleset.
type ScoreboardModel struct {
	scores   *storage.Book
	variants []registry.Variant
	table    table.Model
	painter  *Painter
	help     help.Model
	keys     MenuKeyMap
	width    int
	height   int
	err      error

	standalone bool
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard over the given score book.
func NewScoreboardModel(scores *storage.Book, painter *Painter, width, height int) ScoreboardModel {
	if painter == nil {
		painter = NewPainter(nil)
	}
	m := ScoreboardModel{
		scores:   scores,
		variants: registry.List(),
		painter:  painter,
		help:     help.New(),
		keys:     DefaultMenuKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Ruleset", Width: 16},
		{Title: "Best", Width: 8},
		{Title: "Set", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(len(m.variants)+1, min(m.height-8, 12))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload rebuilds the rows: one per registered variant, plus any stored
// variant that is no longer registered.
func (m *ScoreboardModel) reload() {
	entries, err := m.scores.HighScores()
	m.err = err

	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.Variant] = i
	}

	rows := make([]table.Row, 0, len(m.variants)+len(entries))
	seen := make(map[string]bool, len(m.variants))
	for _, v := range m.variants {
		seen[v.ID] = true
		row := table.Row{v.ID, "0", "-"}
		if i, ok := byID[v.ID]; ok {
			row[1] = strconv.Itoa(entries[i].Value)
			if !entries[i].UpdatedAt.IsZero() {
				row[2] = entries[i].UpdatedAt.Local().Format("Jan 02 15:04")
			}
		}
		rows = append(rows, row)
	}
	for _, e := range entries {
		if seen[e.Variant] {
			continue
		}
		row := table.Row{e.Variant, strconv.Itoa(e.Value), "-"}
		if !e.UpdatedAt.IsZero() {
			row[2] = e.UpdatedAt.Local().Format("Jan 02 15:04")
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if row := m.table.SelectedRow(); row != nil {
				m.err = m.scores.Clear(row[0])
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.reload()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := m.painter.Style().Bold(true).Foreground(lipgloss.Color("229"))
	frame := m.painter.Style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dim := m.painter.Style().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(title.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(frame.Render(m.table.View()), m.width))
	b.WriteString("\n")
	if !m.scores.Persistent() {
		b.WriteString(centerText(dim.Render("Scores are not saved: database unavailable"), m.width))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centerText(dim.Render("Error: "+m.err.Error()), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dim.Render(m.help.View(scoreboardHelp{m.keys})), m.width))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard on its own, for `gridsnake scores -i`.
func RunScoreboard(scores *storage.Book) error {
	m := NewScoreboardModel(scores, nil, 80, 24)
	m.standalone = true

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
