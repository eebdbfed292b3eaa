package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/worldforge/internal/worldfile"
	"github.com/vovakirdan/worldforge/internal/worldlist"
)

// WorldsModel is the Bubble Tea model of the world select screen.
type WorldsModel struct {
	lister  *worldlist.Lister
	entries []worldlist.Entry
	loadErr error
	table   table.Model
	help    help.Model
	keys    KeyMap
	width   int
	height  int
}

// NewWorldsModel creates the world select screen.
func NewWorldsModel(lister *worldlist.Lister, width, height int) WorldsModel {
	m := WorldsModel{
		lister: lister,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *WorldsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 27},
		{Title: "Size", Width: 7},
		{Title: "Difficulty", Width: 16},
		{Title: "Created", Width: 13},
		{Title: "Where", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 3)),
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

// load reads the entries and fills the table.
func (m *WorldsModel) load() {
	m.entries, m.loadErr = m.lister.Entries()

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		where := "local"
		if e.Location == worldfile.Cloud {
			where = "cloud"
		}
		rows[i] = table.Row{
			e.Name,
			e.Size.String(),
			e.Label,
			e.CreatedAt.Format("Jan 02 15:04"),
			where,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Entries returns the listed worlds.
func (m WorldsModel) Entries() []worldlist.Entry {
	return m.entries
}

// Selected returns the highlighted world.
func (m WorldsModel) Selected() (worldlist.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return worldlist.Entry{}, false
	}
	return m.entries[i], true
}

// Init initializes the world select screen.
func (m WorldsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the world select screen.
func (m WorldsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			return m, back

		case key.Matches(msg, m.keys.Refresh):
			m.lister.Reset()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.load()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the world select screen.
func (m WorldsModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("S E L E C T   W O R L D", m.width)))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("  cannot list worlds: " + m.loadErr.Error()))
	case len(m.entries) == 0:
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(empty.Render("No worlds yet.\nCreate one from the main menu!"))
	default:
		b.WriteString(panelStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(m.renderSelected())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(worldsHelp{m.keys})))
	return b.String()
}

// renderSelected shows the details of the highlighted world, with the
// difficulty label in its color.
func (m WorldsModel) renderSelected() string {
	e, ok := m.Selected()
	if !ok {
		return ""
	}
	lines := []string{
		titleStyle.Render(e.Name),
		"Difficulty: " + ColorStyle(e.Color).Render(e.Label),
		fmt.Sprintf("Size: %s  Seed: %s", e.Size, e.Seed),
	}
	if e.Err != nil {
		lines = append(lines, errorStyle.Render(e.Err.Error()))
	}
	return lipgloss.NewStyle().MarginLeft(2).Render(strings.Join(lines, "\n"))
}

type worldsHelp struct{ k KeyMap }

func (h worldsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Refresh, h.k.Back, h.k.Quit}
}

func (h worldsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
