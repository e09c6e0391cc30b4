package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows every campaign level of the loaded config with its target tile,
4-spawn chance and the special tiles it starts with. The difficulty preset
is applied, so --difficulty changes the numbers shown.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := t2048.LoadLevels()

	if len(levels) == 0 {
		fmt.Println("No levels configured.")
		return
	}

	fmt.Printf("Campaign levels (%s):\n", preset)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range levels {
		if n := len([]rune(lvl.Name)); n > maxNameLen {
			maxNameLen = n
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %6s  %5s  %s\n", "#", maxNameLen, "Name", "Target", "4s", "Specials")
	fmt.Printf("  %-3s  %-*s  %6s  %5s  %s\n", "-", maxNameLen, "----", "------", "--", "--------")

	// Print levels
	for _, lvl := range levels {
		fmt.Printf("  %-3d  %-*s  %6d  %4.0f%%  %s\n",
			lvl.ID, maxNameLen, lvl.Name, lvl.Target, lvl.Spawn4*100, lvl.Specials())
	}

	fmt.Println()
	fmt.Println("Run 'tilemerge play' and choose Select Level to start at any of them.")
}
