package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worldforge/internal/difficulty"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List registered difficulties",
	Long: `Shows the built-in modes and every difficulty loaded from packs,
in the order the creation page offers them.`,
	Args: cobra.NoArgs,
	RunE: runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	profiles := a.cfg.Profiles.DifficultyProfiles()

	fmt.Println("Built-in modes:")
	for _, k := range []difficulty.Kind{difficulty.KindJourney, difficulty.KindClassic, difficulty.KindExpert, difficulty.KindMaster} {
		p := profiles.For(k)
		fmt.Printf("  %-28s life x%.2f  damage x%.2f\n", k, p.EnemyMaxLife, p.EnemyDamage)
	}

	fmt.Println()
	if a.reg.Len() == 0 {
		fmt.Println("No pack difficulties loaded.")
		return nil
	}

	fmt.Println("Pack difficulties:")
	a.reg.Each(func(_ int, d difficulty.Descriptor) bool {
		p := d.Profile()
		fmt.Printf("  %-28s life x%.2f  damage x%.2f  %s\n", difficulty.FullName(d), p.EnemyMaxLife, p.EnemyDamage, d.DisplayName())
		return true
	})

	for _, pk := range a.packs.Packs() {
		a.logger.Debug("pack loaded", "origin", pk.Origin, "source", pk.Source, "difficulties", len(pk.Difficulties))
	}
	return nil
}
