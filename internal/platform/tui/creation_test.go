package tui

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/focus"
	"github.com/vovakirdan/worldforge/internal/wizard"
)

type ember struct{ difficulty.Base }

func (ember) Origin() string        { return "Fire" }
func (ember) DisplayName() string   { return "Ember" }
func (ember) TextColor() core.Color { return core.ColorOrange }

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

type recorder struct {
	requests []wizard.Request
	err      error
}

func (r *recorder) Generate(_ context.Context, req wizard.Request) error {
	if r.err != nil {
		return r.err
	}
	r.requests = append(r.requests, req)
	return nil
}

func newCreation(t *testing.T, gen wizard.Generator) CreationModel {
	t.Helper()
	reg := difficulty.NewRegistry()
	if err := reg.Register(ember{}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	sys := difficulty.NewSystem(reg)
	wiz := wizard.New(sys, wizard.Config{Rand: rand.New(rand.NewSource(7))})
	m, err := NewCreationModel(context.Background(), wiz, gen, log.New(&discard{}))
	if err != nil {
		t.Fatalf("NewCreationModel() failed: %v", err)
	}
	return m
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func press(t *testing.T, m CreationModel, keys ...tea.KeyMsg) (CreationModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(CreationModel)
		if !ok {
			t.Fatalf("Update() returned %T", next)
		}
	}
	return m, cmd
}

func TestCreationInitialFocus(t *testing.T) {
	m := newCreation(t, &recorder{})
	if got := m.FocusedControl().Group; got != focus.GroupName {
		t.Errorf("initial focus = %q, expected %q", got, focus.GroupName)
	}
	if got := m.FocusPosition(); got != core.Pt(1, rowName) {
		t.Errorf("FocusPosition() = %v", got)
	}
}

func TestCreationSelectAndCreate(t *testing.T) {
	rec := &recorder{}
	m := newCreation(t, rec)

	// Name -> Seed -> size[0] -> size[1], pick Medium.
	m, _ = press(t, m, keyDown, keyDown, keyRight, keyEnter)
	if m.Wizard().Size() != core.SizeMedium {
		t.Fatalf("Size() = %v, expected Medium", m.Wizard().Size())
	}

	// size[1] -> difficulty[1] -> difficulty[3], pick Master.
	m, _ = press(t, m, keyDown, keyRight, keyRight, keyEnter)
	if m.Wizard().Difficulty() != difficulty.Master {
		t.Fatalf("Difficulty() = %v, expected Master", m.Wizard().Difficulty())
	}

	// difficulty[3] -> evil[2], pick Crimson.
	m, _ = press(t, m, keyDown, keyEnter)
	if m.Wizard().Evil() != core.EvilCrimson {
		t.Fatalf("Evil() = %v, expected Crimson", m.Wizard().Evil())
	}

	// Last evil button leads to Create.
	m, _ = press(t, m, keyDown)
	if got := m.FocusedControl().Group; got != focus.GroupCreate {
		t.Fatalf("focus = %q, expected Create", got)
	}
	m, cmd := press(t, m, keyEnter)
	if cmd == nil {
		t.Fatal("expected a command after Create")
	}
	msg, ok := cmd().(WorldCreatedMsg)
	if !ok {
		t.Fatalf("command produced %T, expected WorldCreatedMsg", cmd())
	}
	if len(rec.requests) != 1 {
		t.Fatalf("generator called %d times", len(rec.requests))
	}
	req := rec.requests[0]
	if req != msg.Request {
		t.Error("message request differs from generated request")
	}
	if req.Size != core.SizeMedium || req.Width != 6400 || req.Selector != difficulty.Master || req.Evil != 1 {
		t.Errorf("unexpected request: %+v", req)
	}
	if _, ok := m.Created(); !ok {
		t.Error("Created() should report the world")
	}
}

func TestCreationSelectCustomDifficulty(t *testing.T) {
	m := newCreation(t, &recorder{})
	m, _ = press(t, m, keyDown, keyDown, keyDown, keyRight, keyRight, keyRight, keyRight, keyEnter)

	sel := m.Wizard().Difficulty()
	if !sel.IsCustom() || sel.Origin != "Fire" || sel.Name != "ember" {
		t.Errorf("Difficulty() = %v, expected Fire/ember", sel)
	}
}

func TestCreationAsksForName(t *testing.T) {
	rec := &recorder{}
	m := newCreation(t, rec)
	if err := m.Wizard().SetName("   "); err != nil {
		t.Fatal(err)
	}

	// Jump to Create: Name -> Seed -> size -> difficulty -> evil -> Create.
	m, _ = press(t, m, keyDown, keyDown, keyDown, keyDown, keyRight, keyRight, keyDown, keyEnter)
	if len(rec.requests) != 0 {
		t.Fatal("generator called without a name")
	}
	if m.editing != focus.GroupName || !m.askName {
		t.Fatalf("expected the name prompt, editing=%q", m.editing)
	}

	for _, r := range "Terra" {
		m, _ = press(t, m, runeKey(r))
	}
	_, cmd := press(t, m, keyEnter)
	if cmd == nil || len(rec.requests) != 1 {
		t.Fatalf("world not created after entering a name")
	}
	if rec.requests[0].Name != "Terra" {
		t.Errorf("Name = %q, expected Terra", rec.requests[0].Name)
	}
}

func TestCreationSeedOverrides(t *testing.T) {
	m := newCreation(t, &recorder{})
	m, _ = press(t, m, keyDown, keyEnter)
	if m.editing != focus.GroupSeed {
		t.Fatalf("editing = %q, expected seed", m.editing)
	}

	m.seedInput.SetValue("3.3.2.12345")
	m, _ = press(t, m, keyEnter)

	w := m.Wizard()
	if w.Seed() != "12345" || w.Size() != core.SizeLarge || w.Difficulty() != difficulty.Master || w.Evil() != core.EvilCrimson {
		t.Errorf("seed not applied: seed=%q size=%v difficulty=%v evil=%v", w.Seed(), w.Size(), w.Difficulty(), w.Evil())
	}
}

func TestCreationEscapeCancelsEditing(t *testing.T) {
	m := newCreation(t, &recorder{})
	name := m.Wizard().Name()

	m, _ = press(t, m, keyEnter)
	m.nameInput.SetValue("Discarded")
	m, _ = press(t, m, keyEsc)

	if m.editing != "" {
		t.Error("editing not stopped")
	}
	if m.Wizard().Name() != name {
		t.Errorf("Name() = %q, expected %q", m.Wizard().Name(), name)
	}
}

func TestCreationGeneratorFailure(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	m := newCreation(t, rec)

	m, _ = press(t, m, keyDown, keyDown, keyDown, keyDown, keyRight, keyRight, keyDown, keyEnter)
	if m.Err() == nil {
		t.Fatal("expected the generator error")
	}
	if m.Wizard().State() != wizard.Editing {
		t.Errorf("State() = %v, expected editing", m.Wizard().State())
	}
	if _, ok := m.Created(); ok {
		t.Error("Created() reported a failed world")
	}
}

func TestCreationRandomize(t *testing.T) {
	m := newCreation(t, &recorder{})
	before := m.Wizard().Seed()

	m, _ = press(t, m, keyDown, runeKey('r'))
	if m.Wizard().Seed() == before {
		t.Error("seed not rerolled")
	}
	m, _ = press(t, m, keyUp)
	if got := m.FocusedControl().Group; got != focus.GroupName {
		t.Errorf("focus = %q, expected Name", got)
	}
}
