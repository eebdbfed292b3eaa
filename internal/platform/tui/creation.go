package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/focus"
	"github.com/vovakirdan/worldforge/internal/wizard"
)

// Rows of the creation page. Positions are (column, row) cells used for
// the focus table.
const (
	rowName = iota
	rowSeed
	rowSize
	rowDifficulty
	rowEvil
	rowButtons
)

var (
	sizeLabels = []string{"Small", "Medium", "Large"}
	evilLabels = []string{"Random", "Corruption", "Crimson"}
)

// WorldCreatedMsg is sent when the wizard created a world.
type WorldCreatedMsg struct {
	Request wizard.Request
}

// BackMsg is sent when a screen is left with Back.
type BackMsg struct{}

// CreationModel is the Bubble Tea model of the world creation page.
type CreationModel struct {
	ctx    context.Context
	wiz    *wizard.Wizard
	gen    wizard.Generator
	logger *log.Logger

	graph   *focus.Graph
	points  focus.Table
	focusID int

	keyMapper *KeyMapper
	help      help.Model

	// editing is the group of the text field being edited, or "".
	editing   string
	askName   bool
	nameInput textinput.Model
	seedInput textinput.Model

	status  string
	err     error
	created *wizard.Request
	width   int
	height  int
}

// NewCreationModel creates the creation page for wiz. Created worlds are
// handed to gen.
func NewCreationModel(ctx context.Context, wiz *wizard.Wizard, gen wizard.Generator, logger *log.Logger) (CreationModel, error) {
	if logger == nil {
		logger = log.Default()
	}

	name := textinput.New()
	name.Placeholder = "World name"
	name.CharLimit = wizard.MaxNameLength
	name.Prompt = ""
	seed := textinput.New()
	seed.Placeholder = "Random"
	seed.CharLimit = wizard.MaxSeedLength
	seed.Prompt = ""

	m := CreationModel{
		ctx:       ctx,
		wiz:       wiz,
		gen:       gen,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		nameInput: name,
		seedInput: seed,
		width:     80,
		height:    24,
	}
	if err := m.layout(); err != nil {
		return CreationModel{}, err
	}
	return m, nil
}

// layout places the controls and rebuilds the focus graph. The focus stays
// on the same control when it still exists.
func (m *CreationModel) layout() error {
	controls := []focus.Control{
		{Group: focus.GroupRandomizeName, Position: core.Pt(0, rowName)},
		{Group: focus.GroupName, Position: core.Pt(1, rowName)},
		{Group: focus.GroupRandomizeSeed, Position: core.Pt(0, rowSeed)},
		{Group: focus.GroupSeed, Position: core.Pt(1, rowSeed)},
		{Group: focus.GroupBack, Position: core.Pt(0, rowButtons)},
		{Group: focus.GroupCreate, Position: core.Pt(1, rowButtons)},
	}
	for i := range sizeLabels {
		controls = append(controls, focus.Control{Group: focus.GroupSize, Ordinal: i, Position: core.Pt(i, rowSize)})
	}
	for i := range m.wiz.Options() {
		controls = append(controls, focus.Control{Group: focus.GroupDifficulty, Ordinal: i, Position: core.Pt(i, rowDifficulty)})
	}
	for i := range evilLabels {
		controls = append(controls, focus.Control{Group: focus.GroupEvil, Ordinal: i, Position: core.Pt(i, rowEvil)})
	}

	prev, hadFocus := m.focused()
	points := make(focus.Table)
	graph, err := focus.BuildWorldCreation(controls, points)
	if err != nil {
		return fmt.Errorf("layout creation page: %w", err)
	}
	m.graph = graph
	m.points = points

	target := focus.Control{Group: focus.GroupName}
	if hadFocus {
		target = prev.Control
	}
	if n, ok := graph.Find(target.Group, target.Ordinal); ok {
		m.focusID = n.ID
	} else if n, ok := graph.Find(focus.GroupCreate, 0); ok {
		m.focusID = n.ID
	}
	return nil
}

func (m CreationModel) focused() (*focus.Node, bool) {
	if m.graph == nil {
		return nil, false
	}
	return m.graph.Node(m.focusID)
}

// Init initializes the creation page.
func (m CreationModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the creation page.
func (m CreationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing != "" {
			return m.updateEditing(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input while navigating.
func (m CreationModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Refresh) {
		m.err = m.Reload()
		return m, nil
	}
	action := m.keyMapper.MapKey(msg)
	m.err = nil

	switch {
	case action == core.ActionQuit:
		return m, tea.Quit
	case action == core.ActionBack:
		return m, back
	case action.IsDirection():
		m.focusID = m.graph.Move(m.focusID, action)
	case action == core.ActionRandomize:
		m.randomizeFocused()
	case action == core.ActionConfirm:
		return m.activate()
	}
	return m, nil
}

func back() tea.Msg { return BackMsg{} }

// Reload rebuilds the difficulty options from the registry.
func (m *CreationModel) Reload() error {
	m.wiz.Refresh()
	return m.layout()
}

// randomizeFocused rerolls the name or seed when one of them has focus.
func (m *CreationModel) randomizeFocused() {
	n, ok := m.focused()
	if !ok {
		return
	}
	switch n.Control.Group {
	case focus.GroupName, focus.GroupRandomizeName:
		m.err = m.wiz.RandomizeName()
	case focus.GroupSeed, focus.GroupRandomizeSeed:
		m.err = m.wiz.RandomizeSeed()
	}
}

// activate runs the focused control.
func (m CreationModel) activate() (tea.Model, tea.Cmd) {
	n, ok := m.focused()
	if !ok {
		return m, nil
	}
	c := n.Control

	switch c.Group {
	case focus.GroupBack:
		return m, back
	case focus.GroupCreate:
		return m.create()
	case focus.GroupRandomizeName:
		m.err = m.wiz.RandomizeName()
	case focus.GroupRandomizeSeed:
		m.err = m.wiz.RandomizeSeed()
	case focus.GroupName:
		return m, m.startEditing(focus.GroupName)
	case focus.GroupSeed:
		return m, m.startEditing(focus.GroupSeed)
	case focus.GroupSize:
		m.err = m.wiz.SelectSize(core.WorldSize(c.Ordinal))
	case focus.GroupDifficulty:
		m.err = m.wiz.SelectOption(c.Ordinal)
	case focus.GroupEvil:
		m.err = m.wiz.SelectEvil(core.Evil(c.Ordinal))
	}
	return m, nil
}

func (m *CreationModel) startEditing(group string) tea.Cmd {
	m.editing = group
	if group == focus.GroupName {
		m.nameInput.SetValue(m.wiz.Name())
		m.nameInput.CursorEnd()
		return m.nameInput.Focus()
	}
	m.seedInput.SetValue(m.wiz.Seed())
	m.seedInput.CursorEnd()
	return m.seedInput.Focus()
}

func (m *CreationModel) stopEditing() {
	m.editing = ""
	m.askName = false
	m.nameInput.Blur()
	m.seedInput.Blur()
}

// updateEditing routes keys to the text field being edited.
func (m CreationModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	case tea.KeyEnter:
		return m.commitEditing()
	}

	var cmd tea.Cmd
	if m.editing == focus.GroupName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.seedInput, cmd = m.seedInput.Update(msg)
	}
	return m, cmd
}

func (m CreationModel) commitEditing() (tea.Model, tea.Cmd) {
	group, ask := m.editing, m.askName
	m.stopEditing()

	if group == focus.GroupSeed {
		m.err = m.wiz.SetSeed(m.seedInput.Value())
		return m, nil
	}
	if !ask {
		m.err = m.wiz.SetName(m.nameInput.Value())
		return m, nil
	}

	req, err := m.wiz.FinalizeWithName(m.nameInput.Value())
	if err != nil {
		return m.finalizeFailed(err)
	}
	return m.commit(req)
}

// create finalizes the wizard. Without a name the name field opens first.
func (m CreationModel) create() (tea.Model, tea.Cmd) {
	req, err := m.wiz.Finalize()
	if err != nil {
		return m.finalizeFailed(err)
	}
	return m.commit(req)
}

func (m CreationModel) finalizeFailed(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, wizard.ErrNameRequired) {
		m.status = "Enter a world name"
		if n, ok := m.graph.Find(focus.GroupName, 0); ok {
			m.focusID = n.ID
		}
		cmd := m.startEditing(focus.GroupName)
		m.askName = true
		return m, cmd
	}
	m.err = err
	return m, nil
}

func (m CreationModel) commit(req wizard.Request) (tea.Model, tea.Cmd) {
	if err := m.wiz.Commit(m.ctx, m.gen); err != nil {
		m.logger.Error("world creation failed", "name", req.Name, "err", err)
		m.err = err
		m.status = ""
		return m, nil
	}
	m.created = &req
	m.status = fmt.Sprintf("Created %q", req.Name)
	return m, func() tea.Msg { return WorldCreatedMsg{Request: req} }
}

// Created returns the request of the created world, if any.
func (m CreationModel) Created() (wizard.Request, bool) {
	if m.created == nil {
		return wizard.Request{}, false
	}
	return *m.created, true
}

// Wizard returns the wizard driven by the page.
func (m CreationModel) Wizard() *wizard.Wizard {
	return m.wiz
}

// FocusedControl returns the control that has focus.
func (m CreationModel) FocusedControl() focus.Control {
	if n, ok := m.focused(); ok {
		return n.Control
	}
	return focus.Control{}
}

// FocusPosition returns the cell of the focused control.
func (m CreationModel) FocusPosition() core.Point {
	return m.points[m.focusID]
}

// Err returns the error of the last action.
func (m CreationModel) Err() error {
	return m.err
}

// View renders the creation page.
func (m CreationModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C R E A T E   W O R L D", m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTextRow(focus.GroupRandomizeName, focus.GroupName, "Name", m.nameInput, m.wiz.Name()))
	b.WriteString("\n")
	b.WriteString(m.renderTextRow(focus.GroupRandomizeSeed, focus.GroupSeed, "Seed", m.seedInput, m.wiz.Seed()))
	b.WriteString("\n\n")

	b.WriteString(m.renderRow("Size", focus.GroupSize, sizeLabels, int(m.wiz.Size()), nil))
	b.WriteString("\n")

	opts := m.wiz.Options()
	labels := make([]string, len(opts))
	colors := make([]core.Color, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
		colors[i] = o.Color
	}
	b.WriteString(m.renderRow("Difficulty", focus.GroupDifficulty, labels, m.wiz.SelectedOption(), colors))
	b.WriteString("\n")
	b.WriteString(m.renderRow("Evil", focus.GroupEvil, evilLabels, int(m.wiz.Evil()), nil))
	b.WriteString("\n\n")

	b.WriteString(m.renderDetails())
	b.WriteString("\n\n")

	b.WriteString("  " + m.button("Back", focus.GroupBack) + "  " + m.button("Create", focus.GroupCreate))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(dimStyle.Render("  " + m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

func (m CreationModel) isFocused(group string, ordinal int) bool {
	n, ok := m.focused()
	return ok && n.Control.Group == group && n.Control.Ordinal == ordinal
}

func (m CreationModel) button(label, group string) string {
	text := "[ " + label + " ]"
	if m.isFocused(group, 0) {
		return focusStyle.Render(text)
	}
	return text
}

func (m CreationModel) renderTextRow(randGroup, group, label string, input textinput.Model, value string) string {
	field := value
	if m.editing == group {
		field = input.View()
	} else if field == "" {
		field = dimStyle.Render(input.Placeholder)
	}
	if m.isFocused(group, 0) && m.editing != group {
		field = focusStyle.Render(field)
	}
	return fmt.Sprintf("  %s %-11s %s", m.button("R", randGroup), label+":", field)
}

func (m CreationModel) renderRow(label, group string, items []string, selected int, colors []core.Color) string {
	cells := make([]string, len(items))
	for i, item := range items {
		text := " " + item + " "
		if i == selected {
			text = "*" + item + "*"
		}
		style := lipgloss.NewStyle()
		if colors != nil {
			style = ColorStyle(colors[i])
		}
		if m.isFocused(group, i) {
			style = focusStyle
		}
		cells[i] = style.Render(text)
	}
	return fmt.Sprintf("  %-15s %s", label+":", strings.Join(cells, " "))
}

// renderDetails shows the description of the selected difficulty and the
// preview plate.
func (m CreationModel) renderDetails() string {
	var b strings.Builder

	opts := m.wiz.Options()
	idx := m.wiz.SelectedOption()
	if n, ok := m.focused(); ok && n.Control.Group == focus.GroupDifficulty {
		idx = n.Control.Ordinal
	}
	if idx >= 0 && idx < len(opts) {
		o := opts[idx]
		b.WriteString(ColorStyle(o.Color).Render(o.Icon + " " + o.Label))
		b.WriteString("\n")
		b.WriteString(o.Description)
		b.WriteString("\n\n")
	}

	p := m.wiz.Preview()
	plate := fmt.Sprintf("sky: %s\nbunny: %s\nsize: %s  evil: %s", p.Sky, p.Bunny, p.Size, p.Evil)
	if p.Unloaded {
		plate += "\n" + ColorStyle(core.ColorGray).Render("difficulty not loaded")
	}
	if flags := m.wiz.Flags(); flags.Any() {
		plate += "\nseed: " + strings.Join(flags.Names(), ", ")
	}
	b.WriteString(ColorStyle(p.Tint).Inherit(panelStyle).Render(plate))

	return lipgloss.NewStyle().MarginLeft(2).Render(b.String())
}
