package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/worldforge/internal/core"
)

// Screen identifies a screen of a session.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCreate
	ScreenWorlds
)

// MenuItem represents a selectable entry of the main menu.
type MenuItem struct {
	Title  string
	Screen Screen
	Quit   bool
}

// OpenScreenMsg asks the session to switch screens.
type OpenScreenMsg struct {
	Screen Screen
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	footer    string
}

// NewMenuModel creates a new menu model.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Title: "Create World", Screen: ScreenCreate},
			{Title: "Select World", Screen: ScreenWorlds},
			{Title: "Quit", Quit: true},
		},
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// WithFooter returns the menu with a status line under the items.
func (m MenuModel) WithFooter(s string) MenuModel {
	m.footer = s
	return m
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKey(msg) {
	case core.ActionQuit, core.ActionBack:
		return m, tea.Quit

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case core.ActionConfirm:
		item := m.items[m.cursor]
		if item.Quit {
			return m, tea.Quit
		}
		return m, func() tea.Msg { return OpenScreenMsg{Screen: item.Screen} }
	}

	return m, nil
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  W O R L D F O R G E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Create and browse worlds", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, item.Title), m.width))
		b.WriteString("\n")
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(centerText(m.footer, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width)))
	b.WriteString("\n")

	return b.String()
}
