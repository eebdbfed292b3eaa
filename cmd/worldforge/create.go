package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/platform/tui"
)

var (
	flagName       string
	flagSeed       string
	flagSize       string
	flagDifficulty string
	flagEvil       string
	flagCloud      bool
	flagJourney    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a world",
	Long: `Create a world.

Without flags the interactive creation page opens. With --name the world
is created directly from the flags.

Controls:
  Arrows/hjkl  - Move focus
  Enter/Space  - Select option, edit name or seed
  R            - Randomize the focused name or seed
  Esc          - Back
  Q/Ctrl+C     - Quit

Difficulty:
  classic, expert, master, journey or origin/name of a pack difficulty

Examples:
  worldforge create
  worldforge create --name Terra
  worldforge create --name Terra --size large --difficulty expert --evil crimson
  worldforge create --name Ashlands --difficulty WorldForge/Legendary --cloud
  worldforge create --name Bees --seed "not the bees"`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&flagName, "name", "", "World name (skips the interactive page)")
	createCmd.Flags().StringVar(&flagSeed, "seed", "", "World seed, empty for random")
	createCmd.Flags().StringVar(&flagSize, "size", "small", "World size: small, medium, large")
	createCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: classic, expert, master, journey or origin/name")
	createCmd.Flags().StringVar(&flagEvil, "evil", "random", "World evil: random, corruption, crimson")
	createCmd.Flags().BoolVar(&flagCloud, "cloud", false, "Store the world in the cloud location")
	createCmd.Flags().BoolVar(&flagJourney, "journey", false, "Default to Journey difficulty")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	services := a.services()
	if cmd.Flags().Changed("cloud") {
		services.Wizard.Cloud = flagCloud
	}
	if flagJourney {
		services.Wizard.JourneyPlayer = true
	}
	sess := services.NewSession()
	ctx := cmd.Context()

	if flagName == "" {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		created, err := tui.Run(ctx, sess, tui.ScreenCreate, width, height)
		if err != nil {
			return err
		}
		for _, name := range created {
			fmt.Printf("Created world %q\n", name)
		}
		return nil
	}

	w := sess.Wizard
	size, ok := core.ParseWorldSize(strings.ToLower(flagSize))
	if !ok {
		return fmt.Errorf("unknown size %q (small, medium, large)", flagSize)
	}
	evil, ok := core.ParseEvil(strings.ToLower(flagEvil))
	if !ok {
		return fmt.Errorf("unknown evil %q (random, corruption, crimson)", flagEvil)
	}
	if err := w.SelectSize(size); err != nil {
		return err
	}
	if err := w.SelectEvil(evil); err != nil {
		return err
	}
	if flagDifficulty != "" {
		sel, err := parseSelector(a.reg, flagDifficulty)
		if err != nil {
			return err
		}
		if err := w.SelectDifficulty(sel); err != nil {
			return err
		}
	}
	// The seed goes last so its overrides win over the flags.
	if cmd.Flags().Changed("seed") {
		if err := w.SetSeed(flagSeed); err != nil {
			return err
		}
	}
	if err := w.SetName(flagName); err != nil {
		return err
	}

	req, err := w.Create(ctx, sess.Generator)
	if err != nil {
		return err
	}

	fmt.Printf("Created world %q\n", req.Name)
	fmt.Printf("  Size:       %s (%dx%d)\n", req.Size, req.Width, req.Height)
	fmt.Printf("  Difficulty: %s\n", req.Selector)
	fmt.Printf("  Evil:       %s\n", w.Evil())
	if flags := req.Flags.Names(); len(flags) > 0 {
		fmt.Printf("  Seed flags: %s\n", strings.Join(flags, ", "))
	}
	return nil
}

// parseSelector resolves a --difficulty value. Unknown pack difficulties
// fail with the closest registered names.
func parseSelector(reg *difficulty.Registry, s string) (difficulty.Selector, error) {
	switch strings.ToLower(s) {
	case "classic", "normal":
		return difficulty.Classic, nil
	case "expert":
		return difficulty.Expert, nil
	case "master":
		return difficulty.Master, nil
	case "journey", "creative":
		return difficulty.Journey, nil
	}

	origin, name, ok := strings.Cut(s, "/")
	if ok {
		if d, found := reg.FindByIdentity(origin, name); found {
			return difficulty.CustomOf(d), nil
		}
	}

	msg := fmt.Sprintf("unknown difficulty %q", s)
	if hints := reg.Suggest(s, 3); len(hints) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(hints, ", "))
	}
	return difficulty.Selector{}, errors.New(msg)
}
