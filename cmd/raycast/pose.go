package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/storage"
)

var poseCmd = &cobra.Command{
	Use:   "pose",
	Short: "Manage saved caster poses",
	Long: `Saves, lists and removes named caster poses. A pose is a position and
facing angle in a level, usable with 'raycast cast <level> --pose <name>'.

Examples:
  raycast pose save hangar door --x 7.5 --y 2.5 --angle -90
  raycast pose list
  raycast pose list hangar
  raycast pose rm hangar door`,
}

var poseSaveCmd = &cobra.Command{
	Use:   "save <level> <name>",
	Short: "Save a pose for a level",
	Long: `Saves a named pose. Position and angle default to the level's spawn
point; --x, --y and --angle override them. Saving an existing name replaces it.`,
	Args: cobra.ExactArgs(2),
	Run:  runPoseSave,
}

var poseListCmd = &cobra.Command{
	Use:   "list [level]",
	Short: "List saved poses",
	Args:  cobra.MaximumNArgs(1),
	Run:   runPoseList,
}

var poseRmCmd = &cobra.Command{
	Use:   "rm <level> <name>",
	Short: "Remove a saved pose",
	Args:  cobra.ExactArgs(2),
	Run:   runPoseRm,
}

func init() {
	poseSaveCmd.Flags().Float64Var(&flagX, "x", 0, "Caster X position")
	poseSaveCmd.Flags().Float64Var(&flagY, "y", 0, "Caster Y position")
	poseSaveCmd.Flags().Float64Var(&flagAngle, "angle", 0, "Facing angle in degrees")

	poseCmd.AddCommand(poseSaveCmd)
	poseCmd.AddCommand(poseListCmd)
	poseCmd.AddCommand(poseRmCmd)
}

func openStore(dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening pose database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runPoseSave(cmd *cobra.Command, args []string) {
	cfg, _, catalog := setup()
	levelRef, name := args[0], args[1]

	lvl, err := catalog.Find(levelRef)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'raycast levels' to see available levels.")
		os.Exit(1)
	}

	pos, angle := lvl.SpawnPose()
	if cmd.Flags().Changed("x") {
		pos.X = flagX
	}
	if cmd.Flags().Changed("y") {
		pos.Y = flagY
	}
	if cmd.Flags().Changed("angle") {
		angle = core.Radians(flagAngle)
	}

	store := openStore(cfg.Storage.DBPath)
	defer store.Close()

	if _, err := store.SavePose(storage.Pose{
		LevelID: lvl.ID,
		Name:    name,
		X:       pos.X,
		Y:       pos.Y,
		Angle:   angle,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving pose: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved pose %q for %s at (%.3f, %.3f) facing %.2f°\n",
		name, lvl.ID, pos.X, pos.Y, core.Degrees(angle))
}

func runPoseList(cmd *cobra.Command, args []string) {
	cfg, _, _ := setup()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	store := openStore(cfg.Storage.DBPath)
	defer store.Close()

	poses, err := store.Poses(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving poses: %v\n", err)
		os.Exit(1)
	}

	if len(poses) == 0 {
		fmt.Println("No poses saved yet.")
		fmt.Println()
		fmt.Println("Run 'raycast pose save <level> <name>' to save one.")
		return
	}

	// Print header
	fmt.Printf("  %-12s  %-12s  %8s  %8s  %8s  %s\n", "Level", "Name", "X", "Y", "Angle°", "Saved")
	fmt.Printf("  %-12s  %-12s  %8s  %8s  %8s  %s\n", "-----", "----", "-", "-", "------", "-----")

	// Print poses
	for _, p := range poses {
		dateStr := p.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-12s  %-12s  %8.3f  %8.3f  %8.2f  %s\n",
			p.LevelID, p.Name, p.X, p.Y, core.Degrees(p.Angle), dateStr)
	}
}

func runPoseRm(cmd *cobra.Command, args []string) {
	cfg, _, _ := setup()

	store := openStore(cfg.Storage.DBPath)
	defer store.Close()

	if err := store.DeletePose(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed pose %q from %s\n", args[1], args[0])
}
