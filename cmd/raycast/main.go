// raycast casts grid rays through tile-based levels from the terminal.
//
// Usage:
//
//	raycast levels               - List available levels
//	raycast validate <file>      - Check a level file
//	raycast cast <level>         - Cast a frame of rays and report the hits
//	raycast pose save|list|rm    - Manage saved caster poses
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.raycast/config.yaml)
//	--levels <dir>      - Extra level directory
//	--db <path>         - Pose database path (default: ~/.raycast/poses.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/config"
	"github.com/vovakirdan/tui-raycast/internal/levels"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagDBPath    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycast",
	Short: "Raycast - Cast grid rays through tile levels",
	Long: `Raycast walks rays through a tile grid the way a pseudo-3D renderer does
and reports every tile each ray hits, nearest first.

Available commands:
  levels    - Show all available levels
  validate  - Check that a level file parses and matches its size
  cast      - Cast one frame of rays from a pose
  pose      - Save, list and remove named poses

Examples:
  raycast levels
  raycast cast hangar
  raycast cast corridor --x 1.5 --y 1.5 --angle 0 --rays 9
  raycast cast ./my-level.map --format yaml
  raycast pose save hangar door --x 7.5 --y 2.5 --angle -90`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Extra level directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to pose database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(castCmd)
	rootCmd.AddCommand(poseCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the stderr logger used for warnings and diagnostics.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cfg.Log.Timestamp,
		Prefix:          "raycast",
	})

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// newCatalog combines the built-in levels with the configured directory.
func newCatalog(cfg config.Config, logger *log.Logger) (*levels.Catalog, error) {
	builtin := levels.NewBuiltinLoader()
	builtin.Logger = logger

	if cfg.Levels.Dir == "" {
		return levels.NewCatalog(builtin), nil
	}

	dir, err := config.ExpandHome(cfg.Levels.Dir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("level directory %s is not readable", dir)
	}

	user := levels.NewLoader(dir)
	user.Logger = logger
	logger.Debug("using level directory", "dir", dir)

	return levels.NewCatalog(builtin, user), nil
}

// setup loads config, logger and level catalog, exiting on failure.
func setup() (config.Config, *log.Logger, *levels.Catalog) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	catalog, err := newCatalog(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return cfg, logger, catalog
}
