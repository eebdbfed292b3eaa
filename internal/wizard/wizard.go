// Package wizard holds the in-progress choices of the world creation page
// and turns them into a creation request for a world generator.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/seed"
)

// Input limits of the name and seed fields.
const (
	MaxNameLength = 27
	MaxSeedLength = 40
)

var (
	// ErrNameRequired is returned by Finalize when the world has no name.
	// The caller should ask for one and call FinalizeWithName.
	ErrNameRequired = errors.New("wizard: world name required")

	// ErrInvalidState is returned when an event does not apply to the
	// current state.
	ErrInvalidState = errors.New("wizard: invalid state")
)

// State is the lifecycle stage of a wizard.
type State int

const (
	Editing State = iota
	Finalizing
	Created
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Finalizing:
		return "finalizing"
	case Created:
		return "created"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Request is a finalized world creation request.
type Request struct {
	Name string

	// Seed is the processed seed. RandomSeed is set when it is empty and
	// the generator must pick one.
	Seed       string
	RandomSeed bool

	Size     core.WorldSize
	Width    int
	Height   int
	Selector difficulty.Selector
	Profile  difficulty.Profile

	// Evil is the generator parameter: -1 random, 0 corruption, 1 crimson.
	Evil  int
	Flags seed.Flags
	Cloud bool
}

// Generator creates a world from a finalized request.
type Generator interface {
	Generate(ctx context.Context, req Request) error
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) error

func (f GeneratorFunc) Generate(ctx context.Context, req Request) error {
	return f(ctx, req)
}

// Config configures a new wizard.
type Config struct {
	// JourneyPlayer selects Journey as the default difficulty.
	JourneyPlayer bool

	// Cloud marks created worlds for cloud storage.
	Cloud bool

	// Rand drives random names and seeds. Nil means time seeded.
	Rand *rand.Rand
}

// Wizard is the world creation state machine.
type Wizard struct {
	sys *difficulty.System
	reg *difficulty.Registry
	rng *rand.Rand
	cfg Config

	state State
	name  string
	seed  string
	size  core.WorldSize
	sel   difficulty.Selector
	evil  core.Evil
	flags seed.Flags

	options []Option
	preview Preview
	request Request
}

// New creates a wizard in the Editing state with default options.
func New(sys *difficulty.System, cfg Config) *Wizard {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	w := &Wizard{
		sys: sys,
		reg: sys.Registry(),
		rng: rng,
		cfg: cfg,
	}
	w.Refresh()
	w.SetDefaults(cfg.JourneyPlayer)
	return w
}

// Refresh rebuilds the difficulty options from the registry.
func (w *Wizard) Refresh() {
	w.options = DifficultyOptions(w.reg)
	w.updatePreview()
}

// SetDefaults resets every option: random name and seed, Small, random
// evil, and Journey or Classic difficulty.
func (w *Wizard) SetDefaults(journey bool) {
	w.state = Editing
	w.name = RandomName(w.rng)
	w.seed = seed.Random(w.rng)
	w.flags = seed.Flags{}
	w.size = core.SizeSmall
	w.evil = core.EvilRandom
	if journey {
		w.sel = difficulty.Journey
	} else {
		w.sel = difficulty.Classic
	}
	w.updatePreview()
}

func (w *Wizard) State() State                    { return w.state }
func (w *Wizard) Name() string                    { return w.name }
func (w *Wizard) Seed() string                    { return w.seed }
func (w *Wizard) Size() core.WorldSize            { return w.size }
func (w *Wizard) Difficulty() difficulty.Selector { return w.sel }
func (w *Wizard) Evil() core.Evil                 { return w.evil }
func (w *Wizard) Flags() seed.Flags               { return w.flags }
func (w *Wizard) Options() []Option               { return w.options }
func (w *Wizard) Preview() Preview                { return w.preview }

// Request returns the last finalized request.
func (w *Wizard) Request() Request {
	return w.request
}

// SelectedOption returns the index of the selected difficulty in Options.
func (w *Wizard) SelectedOption() int {
	for i, o := range w.options {
		if o.Selector == w.sel {
			return i
		}
	}
	return -1
}

func (w *Wizard) editing() error {
	if w.state != Editing {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}
	return nil
}

// SetName sets the trimmed world name, cut to MaxNameLength.
func (w *Wizard) SetName(name string) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.name = truncate(strings.TrimSpace(name), MaxNameLength)
	return nil
}

// SetSeed decodes the trimmed seed, cut to MaxSeedLength. Overrides in the
// seed replace the current size, difficulty and evil choices, and the
// processed seed replaces the input.
func (w *Wizard) SetSeed(raw string) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.seed = truncate(strings.TrimSpace(raw), MaxSeedLength)
	w.seed = w.processSeed()
	w.updatePreview()
	return nil
}

// SelectSize chooses the world size.
func (w *Wizard) SelectSize(s core.WorldSize) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.size = s
	w.updatePreview()
	return nil
}

// SelectDifficulty chooses the difficulty and re-derives the preview.
func (w *Wizard) SelectDifficulty(sel difficulty.Selector) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.sel = sel
	w.updatePreview()
	return nil
}

// SelectOption chooses the difficulty at index i of Options.
func (w *Wizard) SelectOption(i int) error {
	if i < 0 || i >= len(w.options) {
		return fmt.Errorf("wizard: difficulty option %d out of range", i)
	}
	return w.SelectDifficulty(w.options[i].Selector)
}

// SelectEvil chooses the world evil.
func (w *Wizard) SelectEvil(e core.Evil) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.evil = e
	w.updatePreview()
	return nil
}

// RandomizeName draws a new random name.
func (w *Wizard) RandomizeName() error {
	if err := w.editing(); err != nil {
		return err
	}
	w.name = RandomName(w.rng)
	return nil
}

// RandomizeSeed draws a new numeric seed.
func (w *Wizard) RandomizeSeed() error {
	if err := w.editing(); err != nil {
		return err
	}
	w.seed = seed.Random(w.rng)
	w.flags = seed.Flags{}
	return nil
}

// Finalize freezes the choices into a request and moves to Finalizing. The
// stored seed is processed once more, so its overrides and generation
// flags apply to the request.
func (w *Wizard) Finalize() (Request, error) {
	if err := w.editing(); err != nil {
		return Request{}, err
	}
	if w.name == "" {
		return Request{}, ErrNameRequired
	}

	processed := w.processSeed()
	width, height := w.size.Bounds()
	w.request = Request{
		Name:       strings.TrimSpace(w.name),
		Seed:       processed,
		RandomSeed: processed == "",
		Size:       w.size,
		Width:      width,
		Height:     height,
		Selector:   w.sel,
		Profile:    w.sys.ProfileFor(w.sel),
		Evil:       w.evil.Param(),
		Flags:      w.flags,
		Cloud:      w.cfg.Cloud,
	}
	w.state = Finalizing
	w.updatePreview()
	return w.request, nil
}

// FinalizeWithName sets the name obtained after ErrNameRequired and
// finalizes.
func (w *Wizard) FinalizeWithName(name string) (Request, error) {
	if err := w.SetName(name); err != nil {
		return Request{}, err
	}
	return w.Finalize()
}

// Cancel returns a finalizing wizard to Editing.
func (w *Wizard) Cancel() error {
	if w.state != Finalizing {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}
	w.state = Editing
	return nil
}

// Commit activates the request's difficulty and hands the request to gen.
// A generator failure returns the wizard to Editing and is not retried.
func (w *Wizard) Commit(ctx context.Context, gen Generator) error {
	if w.state != Finalizing {
		return fmt.Errorf("%w: %s", ErrInvalidState, w.state)
	}

	w.sys.BeginWorld(w.request.Selector)
	if err := gen.Generate(ctx, w.request); err != nil {
		w.state = Editing
		return fmt.Errorf("wizard: generate %q: %w", w.request.Name, err)
	}
	w.state = Created
	return nil
}

// Create finalizes and commits in one step.
func (w *Wizard) Create(ctx context.Context, gen Generator) (Request, error) {
	req, err := w.Finalize()
	if err != nil {
		return Request{}, err
	}
	if err := w.Commit(ctx, gen); err != nil {
		return req, err
	}
	return req, nil
}

// processSeed decodes the stored seed, applies its overrides and flags, and
// returns the processed seed.
func (w *Wizard) processSeed() string {
	tok := seed.Decode(w.seed)
	w.flags = tok.Flags
	if tok.HasSize {
		w.size = tok.Size
	}
	if tok.HasDifficulty {
		if sel, ok := difficulty.BuiltinSelector(tok.Difficulty); ok {
			w.sel = sel
		}
	}
	if tok.HasEvil {
		w.evil = tok.Evil
	}
	return tok.Raw
}

func (w *Wizard) updatePreview() {
	w.preview = PreviewFor(w.reg, w.sel, w.size, w.evil)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
