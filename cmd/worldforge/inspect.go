package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/platform/tui"
	"github.com/vovakirdan/worldforge/internal/worldfile"
	"github.com/vovakirdan/worldforge/internal/worldgen"
)

var flagInspectCloud bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <world>",
	Short: "Show the difficulty record of a world file",
	Long: `Reads the header and the tag container of a world and resolves its
difficulty against the loaded packs.

Examples:
  worldforge inspect ~/.worldforge/worlds/Terra.wld
  worldforge inspect worlds/Terra.wld --cloud`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectCloud, "cloud", false, "Read the world from the cloud location")
}

func runInspect(_ *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	loc := worldfile.Local
	if flagInspectCloud {
		loc = worldfile.Cloud
	}

	sess := a.services().NewSession()
	cache := tui.NewFileCache(a.store)
	header, err := worldgen.ReadHeader(cache.Source(), path, loc)
	if err != nil {
		return err
	}

	reader := worldfile.NewReader(cache, a.logger)
	tag, err := reader.ReadTag(path, loc, difficulty.SystemIdentity)
	if err != nil {
		return err
	}

	fmt.Printf("World:      %s\n", header.Name)
	fmt.Printf("Location:   %s\n", loc)
	fmt.Printf("Size:       %dx%d\n", header.Width, header.Height)
	fmt.Printf("Seed:       %s\n", header.Seed)
	fmt.Printf("Game mode:  %s\n", difficulty.Kind(header.GameMode))

	if tag == nil {
		fmt.Println("Record:     none")
	} else {
		origin, _ := tag.TryGetString(difficulty.KeySource)
		name, _ := tag.TryGetString(difficulty.KeyName)
		fmt.Printf("Record:     %s=%q %s=%q\n", difficulty.KeySource, origin, difficulty.KeyName, name)
	}
	sess.System.LoadWorldData(tag, difficulty.Kind(header.GameMode))

	sel := sess.System.Current()
	fmt.Printf("Difficulty: %s\n", sel)
	if d, ok := sess.System.Resolve(); ok {
		fmt.Printf("Resolved:   %s (%s)\n", d.DisplayName(), difficulty.FullName(d))
	} else if sel.IsCustom() {
		fmt.Println("Resolved:   not loaded, using the default profile")
	}
	p := sess.System.Profile()
	fmt.Printf("Profile:    life x%.2f  damage x%.2f  debuffs x%.2f\n", p.EnemyMaxLife, p.EnemyDamage, p.DebuffTime)
	return nil
}
