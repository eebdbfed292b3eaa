package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionModel manages the session flow: menu -> create or worlds -> menu.
// It is the top-level model of local runs and SSH sessions.
type SessionModel struct {
	ctx     context.Context
	session Session
	start   Screen
	screen  Screen

	menu     MenuModel
	creation CreationModel
	worlds   WorldsModel

	created []string
	err     error
	width   int
	height  int
}

// NewSessionModel creates a session model opened on start.
func NewSessionModel(ctx context.Context, session Session, start Screen, width, height int) (SessionModel, error) {
	m := SessionModel{
		ctx:     ctx,
		session: session,
		start:   start,
		width:   width,
		height:  height,
		menu:    NewMenuModel(width, height),
	}
	if err := m.open(start); err != nil {
		return SessionModel{}, err
	}
	return m, nil
}

// open switches to screen, building a fresh model for it.
func (m *SessionModel) open(screen Screen) error {
	switch screen {
	case ScreenCreate:
		m.session.Wizard.Refresh()
		m.session.Wizard.SetDefaults(m.session.JourneyPlayer)
		c, err := NewCreationModel(m.ctx, m.session.Wizard, m.session.Generator, m.session.Logger)
		if err != nil {
			return err
		}
		c.width, c.height = m.width, m.height
		m.creation = c
	case ScreenWorlds:
		if m.session.Lister == nil {
			return errors.New("world list unavailable without a database")
		}
		m.worlds = NewWorldsModel(m.session.Lister, m.width, m.height)
	}
	m.screen = screen
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.width, m.menu.height = msg.Width, msg.Height

	case OpenScreenMsg:
		if err := m.open(msg.Screen); err != nil {
			m.err = err
			m.menu = m.menu.WithFooter(err.Error())
		}
		return m, nil

	case BackMsg:
		return m.leave()

	case WorldCreatedMsg:
		m.created = append(m.created, msg.Request.Name)
		if m.start == ScreenCreate {
			return m, tea.Quit
		}
		m.menu = m.menu.WithFooter(fmt.Sprintf("Created %q", msg.Request.Name))
		m.screen = ScreenMenu
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenCreate:
		var next tea.Model
		next, cmd = m.creation.Update(msg)
		if c, ok := next.(CreationModel); ok {
			m.creation = c
		}
	case ScreenWorlds:
		var next tea.Model
		next, cmd = m.worlds.Update(msg)
		if w, ok := next.(WorldsModel); ok {
			m.worlds = w
		}
	default:
		var next tea.Model
		next, cmd = m.menu.Update(msg)
		if mm, ok := next.(MenuModel); ok {
			m.menu = mm
		}
	}
	return m, cmd
}

// leave returns to the menu, or quits when the session started elsewhere.
func (m SessionModel) leave() (tea.Model, tea.Cmd) {
	if m.screen == ScreenMenu || m.start != ScreenMenu {
		return m, tea.Quit
	}
	m.screen = ScreenMenu
	return m, nil
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch m.screen {
	case ScreenCreate:
		return m.creation.View()
	case ScreenWorlds:
		return m.worlds.View()
	default:
		return m.menu.View()
	}
}

// Screen returns the active screen.
func (m SessionModel) Screen() Screen {
	return m.screen
}

// Created returns the names of the worlds created in the session.
func (m SessionModel) Created() []string {
	return m.created
}

// Run starts a local Bubble Tea program for session opened on start and
// returns the names of the worlds created.
func Run(ctx context.Context, session Session, start Screen, width, height int) ([]string, error) {
	model, err := NewSessionModel(ctx, session, start, width, height)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := finalModel.(SessionModel)
	if !ok {
		return nil, nil
	}
	return m.Created(), nil
}
