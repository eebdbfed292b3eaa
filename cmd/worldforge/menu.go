package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/worldforge/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start worldforge with the main menu",
	Long: `Start worldforge in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After creating a world you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  F5           - Reload the world list
  Q            - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	created, err := tui.Run(cmd.Context(), a.services().NewSession(), tui.ScreenMenu, width, height)
	if err != nil {
		return err
	}
	for _, name := range created {
		fmt.Printf("Created world %q\n", name)
	}
	return nil
}
