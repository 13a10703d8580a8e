// ai2048 plays 2048 in the terminal with a Monte Carlo AI at your side.
//
// Usage:
//
//	ai2048 play              - Play interactively, AI on demand
//	ai2048 solve             - Let the AI play one game headless
//	ai2048 bench             - Play many games with a strategy and summarize
//	ai2048 scores [strategy] - Show the best stored runs
//	ai2048 backup ...        - Manage named board backups
//	ai2048 list              - List strategies and intelligence presets
//	ai2048 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>      - RNG seed for reproducible games (0 = random)
//	--db <path>         - Database path (default: ~/.ai2048/ai2048.db)
//	--config <path>     - Config file (default search: ~/.ai2048, ./configs)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai2048/internal/config"
	"github.com/vovakirdan/ai2048/internal/storage"
)

var (
	// Global flags
	flagSeed     uint64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ai2048",
	Short: "2048 with a Monte Carlo AI",
	Long: `ai2048 is a terminal 2048 game with a built-in AI that picks moves by
playing random games to the end and averaging their scores.

Available commands:
  play     - Play interactively, AI on demand
  solve    - Let the AI play one game headless
  bench    - Play many games with a strategy and summarize
  scores   - View the best runs
  backup   - Save, load, list and delete board backups
  list     - Show strategies and presets
  serve    - Start SSH server for remote play

Examples:
  ai2048 play
  ai2048 play --preset low --backup opening
  ai2048 solve --seed 42 --save
  ai2048 bench --games 20 --strategy greedy
  ai2048 serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the configuration, applies preset and the global seed,
// and validates the result.
func loadConfig(preset string) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, config.IntelligencePreset(preset)); err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Solver.Seed = flagSeed
	}
	return cfg, cfg.Validate()
}

// exitOnErr prints err and exits when it is non-nil.
func exitOnErr(what string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
		os.Exit(1)
	}
}
