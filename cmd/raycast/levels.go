package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and any levels found in the configured level directory.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	_, _, catalog := setup()

	lvls, err := catalog.All()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "----")

	// Print levels
	for _, l := range lvls {
		name := l.Name
		if name == "" {
			name = l.FilePath
		}
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, l.ID, size, name)
	}

	fmt.Println()
	fmt.Println("Run 'raycast cast <id>' to cast rays through a level.")
}
