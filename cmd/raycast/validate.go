package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/levels"
	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a level file",
	Long: `Parses a level file and checks that its grid matches the declared size.

Examples:
  raycast validate ./levels/arena.yaml
  raycast validate ./levels/maze.map`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	lvl, err := levels.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := lvl.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var shapeErr *raycast.ShapeMismatchError
		if errors.As(err, &shapeErr) {
			fmt.Fprintf(os.Stderr, "  declared: %dx%d\n", shapeErr.ExpectedWidth, shapeErr.ExpectedHeight)
			if shapeErr.Row >= 0 {
				fmt.Fprintf(os.Stderr, "  row %d has %d columns\n", shapeErr.Row, shapeErr.ActualWidth)
			} else {
				fmt.Fprintf(os.Stderr, "  grid has %d rows\n", shapeErr.ActualHeight)
			}
		}
		os.Exit(1)
	}

	fmt.Printf("%s: ok (%s, %dx%d", args[0], lvl.ID, lvl.Width, lvl.Height)
	if len(lvl.Transparent) > 0 {
		fmt.Printf(", transparent %v", lvl.Transparent)
	}
	fmt.Println(")")
}
