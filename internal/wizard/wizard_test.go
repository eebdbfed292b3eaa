package wizard

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
)

type inferno struct{ difficulty.Base }

func (inferno) Origin() string              { return "Fire" }
func (inferno) DisplayName() string         { return "Inferno" }
func (inferno) TextColor() core.Color       { return core.ColorRed }
func (inferno) PreviewSky() string          { return "fire/sky" }
func (inferno) PreviewBunny() string        { return "fire/bunny" }
func (inferno) PreviewTint() core.Color     { return core.ColorOrange }
func (inferno) Profile() difficulty.Profile { return difficulty.MasterProfile }

func newWizard(t *testing.T, cfg Config) (*Wizard, *difficulty.System) {
	t.Helper()
	reg := difficulty.NewRegistry()
	if err := reg.Register(inferno{}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	sys := difficulty.NewSystem(reg)
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(42))
	}
	return New(sys, cfg), sys
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		name    string
		journey bool
		want    difficulty.Selector
	}{
		{"classic player", false, difficulty.Classic},
		{"journey player", true, difficulty.Journey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newWizard(t, Config{JourneyPlayer: tc.journey})
			if w.Difficulty() != tc.want {
				t.Errorf("Difficulty() = %v, expected %v", w.Difficulty(), tc.want)
			}
			if w.Size() != core.SizeSmall || w.Evil() != core.EvilRandom {
				t.Errorf("size/evil = %v/%v, expected Small/Random", w.Size(), w.Evil())
			}
			if w.Name() == "" || len([]rune(w.Name())) > MaxNameLength {
				t.Errorf("Name() = %q", w.Name())
			}
			if w.Seed() == "" {
				t.Error("expected a random seed")
			}
			if w.State() != Editing {
				t.Errorf("State() = %v", w.State())
			}
		})
	}
}

func TestOptionsOrder(t *testing.T) {
	w, _ := newWizard(t, Config{})
	opts := w.Options()

	want := []string{"Journey", "Classic", "Expert", "Master", "Inferno"}
	if len(opts) != len(want) {
		t.Fatalf("len(Options()) = %d, expected %d", len(opts), len(want))
	}
	for i, label := range want {
		if opts[i].Label != label {
			t.Errorf("Options()[%d] = %q, expected %q", i, opts[i].Label, label)
		}
	}
	if opts[4].Selector != difficulty.Custom("Fire", "inferno") {
		t.Errorf("custom selector = %v", opts[4].Selector)
	}
	if w.SelectedOption() != 1 {
		t.Errorf("SelectedOption() = %d, expected Classic", w.SelectedOption())
	}
}

func TestSelectDifficultyPreview(t *testing.T) {
	w, _ := newWizard(t, Config{})

	tests := []struct {
		name  string
		sel   difficulty.Selector
		sky   string
		bunny string
		tint  core.Color
	}{
		{"classic", difficulty.Classic, difficulty.PreviewSkyNormal, difficulty.PreviewBunnyNormal, core.ColorWhite},
		{"journey", difficulty.Journey, difficulty.PreviewSkyNormal, bunnyCreative, core.ColorWhite},
		{"expert", difficulty.Expert, skyExpert, bunnyExpert, core.ColorDarkGray},
		{"master", difficulty.Master, skyMaster, bunnyMaster, core.ColorDarkGray},
		{"custom", difficulty.Custom("Fire", "inferno"), "fire/sky", "fire/bunny", core.ColorOrange},
		{"unloaded", difficulty.Custom("Gone", "Mode"), difficulty.PreviewSkyNormal, bunnyCreative, core.ColorWhite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := w.SelectDifficulty(tc.sel); err != nil {
				t.Fatalf("SelectDifficulty() failed: %v", err)
			}
			p := w.Preview()
			if p.Sky != tc.sky || p.Bunny != tc.bunny || p.Tint != tc.tint {
				t.Errorf("Preview() = %+v", p)
			}
		})
	}
	if !w.Preview().Unloaded {
		t.Error("expected unloaded preview for unregistered difficulty")
	}
}

func TestSeedOverridesLastWins(t *testing.T) {
	w, _ := newWizard(t, Config{})
	_ = w.SelectSize(core.SizeSmall)
	_ = w.SelectDifficulty(difficulty.Custom("Fire", "inferno"))
	_ = w.SelectEvil(core.EvilRandom)

	if err := w.SetSeed("  2.3.2.hello  "); err != nil {
		t.Fatalf("SetSeed() failed: %v", err)
	}
	if w.Size() != core.SizeMedium {
		t.Errorf("Size() = %v, expected Medium", w.Size())
	}
	if w.Difficulty() != difficulty.Master {
		t.Errorf("Difficulty() = %v, expected Master", w.Difficulty())
	}
	if w.Evil() != core.EvilCrimson {
		t.Errorf("Evil() = %v, expected Crimson", w.Evil())
	}
	if w.Seed() != "hello" {
		t.Errorf("Seed() = %q, expected processed seed", w.Seed())
	}

	// A later manual choice still wins over the stored seed.
	_ = w.SelectSize(core.SizeLarge)
	req, err := w.Finalize()
	if err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if req.Size != core.SizeLarge || req.Width != 8400 || req.Height != 2400 {
		t.Errorf("request size = %v %dx%d", req.Size, req.Width, req.Height)
	}
}

func TestInputLimits(t *testing.T) {
	w, _ := newWizard(t, Config{})

	_ = w.SetName(strings.Repeat("n", 40))
	if got := len(w.Name()); got != MaxNameLength {
		t.Errorf("len(Name()) = %d, expected %d", got, MaxNameLength)
	}

	_ = w.SetSeed(strings.Repeat("7", 60))
	if got := len(w.Seed()); got != MaxSeedLength {
		t.Errorf("len(Seed()) = %d, expected %d", got, MaxSeedLength)
	}
}

func TestFinalizeRequiresName(t *testing.T) {
	w, _ := newWizard(t, Config{})
	_ = w.SetName("   ")

	if _, err := w.Finalize(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if w.State() != Editing {
		t.Errorf("State() = %v, expected Editing", w.State())
	}

	req, err := w.FinalizeWithName("Terra")
	if err != nil {
		t.Fatalf("FinalizeWithName() failed: %v", err)
	}
	if req.Name != "Terra" || w.State() != Finalizing {
		t.Errorf("request name %q, state %v", req.Name, w.State())
	}
}

func TestFinalizeRequest(t *testing.T) {
	w, _ := newWizard(t, Config{Cloud: true})
	_ = w.SetName("Alpha")
	_ = w.SelectDifficulty(difficulty.Custom("Fire", "inferno"))
	_ = w.SelectEvil(core.EvilCorruption)
	_ = w.SetSeed("for the worthy")

	req, err := w.Finalize()
	if err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if req.Seed != "for the worthy" || req.RandomSeed {
		t.Errorf("seed = %q random=%v", req.Seed, req.RandomSeed)
	}
	if !req.Flags.ForTheWorthy {
		t.Error("expected for-the-worthy flag")
	}
	if req.Evil != 0 {
		t.Errorf("Evil = %d, expected 0", req.Evil)
	}
	if !req.Cloud {
		t.Error("expected cloud request")
	}
	if req.Profile != difficulty.MasterProfile {
		t.Error("expected descriptor profile")
	}

	if err := w.SetName("Beta"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("SetName() while finalizing = %v, expected ErrInvalidState", err)
	}
	if err := w.Cancel(); err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}
	if w.State() != Editing {
		t.Errorf("State() = %v after Cancel", w.State())
	}
}

func TestEmptySeedIsRandom(t *testing.T) {
	w, _ := newWizard(t, Config{})
	_ = w.SetSeed("")

	req, err := w.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if !req.RandomSeed {
		t.Error("expected RandomSeed for empty seed")
	}
}

func TestCommit(t *testing.T) {
	w, sys := newWizard(t, Config{})
	_ = w.SelectDifficulty(difficulty.Custom("Fire", "inferno"))

	var got Request
	gen := GeneratorFunc(func(_ context.Context, req Request) error {
		got = req
		return nil
	})

	if err := w.Commit(context.Background(), gen); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Commit() before Finalize = %v", err)
	}

	req, err := w.Create(context.Background(), gen)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if got.Name != req.Name {
		t.Errorf("generator got %q, expected %q", got.Name, req.Name)
	}
	if w.State() != Created {
		t.Errorf("State() = %v, expected Created", w.State())
	}
	if sys.Current() != difficulty.Custom("Fire", "inferno") {
		t.Errorf("system selector = %v", sys.Current())
	}
}

func TestCommitFailure(t *testing.T) {
	w, _ := newWizard(t, Config{})
	boom := errors.New("boom")
	calls := 0
	gen := GeneratorFunc(func(context.Context, Request) error {
		calls++
		return boom
	})

	if _, err := w.Create(context.Background(), gen); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("generator called %d times, expected 1", calls)
	}
	if w.State() != Editing {
		t.Errorf("State() = %v, expected Editing", w.State())
	}
}

func TestRandomName(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		if n := RandomName(rng); n == "" || len([]rune(n)) > MaxNameLength {
			t.Fatalf("RandomName() = %q", n)
		}
	}
}
