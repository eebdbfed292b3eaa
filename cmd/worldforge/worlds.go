package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worldforge/internal/worldfile"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List saved worlds",
	Long: `Shows every indexed world with its size and difficulty.

Worlds whose pack difficulty is not loaded are labelled "Unloaded".`,
	Args: cobra.NoArgs,
	RunE: runWorlds,
}

func runWorlds(_ *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	sess := a.services().NewSession()
	entries, err := sess.Lister.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No worlds yet.")
		fmt.Println()
		fmt.Println("Run 'worldforge create' to create one.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, e := range entries {
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	fmt.Printf("  %-*s  %-6s  %-16s  %-5s  %s\n", maxNameLen, "Name", "Size", "Difficulty", "Where", "Path")
	fmt.Printf("  %-*s  %-6s  %-16s  %-5s  %s\n", maxNameLen, "----", "----", "----------", "-----", "----")

	for _, e := range entries {
		where := "local"
		if e.Location == worldfile.Cloud {
			where = "cloud"
		}
		fmt.Printf("  %-*s  %-6s  %-16s  %-5s  %s\n", maxNameLen, e.Name, e.Size, e.Label, where, e.Path)
		if e.Err != nil {
			fmt.Printf("  %-*s  error: %v\n", maxNameLen, "", e.Err)
		}
	}
	return nil
}
