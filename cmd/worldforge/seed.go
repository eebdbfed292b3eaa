package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worldforge/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <text>",
	Short: "Decode a seed string",
	Long: `Shows what a seed does on the creation page: the size, difficulty and
evil it selects, the seed passed to generation, and any special world
flags it enables.

Examples:
  worldforge seed 12345
  worldforge seed 3.2.1.12345
  worldforge seed "not the bees"`,
	Args: cobra.ExactArgs(1),
	Run:  runSeed,
}

func runSeed(_ *cobra.Command, args []string) {
	tok := seed.Decode(args[0])

	override := func(ok bool, v fmt.Stringer) string {
		if !ok {
			return "unchanged"
		}
		return v.String()
	}

	fmt.Printf("Seed:       %q\n", tok.Raw)
	fmt.Printf("Size:       %s\n", override(tok.HasSize, tok.Size))
	fmt.Printf("Difficulty: %s\n", override(tok.HasDifficulty, tok.Difficulty))
	fmt.Printf("Evil:       %s\n", override(tok.HasEvil, tok.Evil))

	flags := "none"
	if tok.Flags.Any() {
		flags = strings.Join(tok.Flags.Names(), ", ")
	}
	fmt.Printf("Flags:      %s\n", flags)
	if tok.Raw == "" {
		fmt.Println("An empty seed is replaced by a random one.")
	}
}
