package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ai2048/internal/core"
	"github.com/vovakirdan/ai2048/internal/game"
	"github.com/vovakirdan/ai2048/internal/platform/tui"
	"github.com/vovakirdan/ai2048/internal/storage"
)

var (
	flagPreset     string
	flagBackup     string
	flagSaveBackup string
	flagAutoplay   bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Play 2048 in the terminal. The AI can play single moves, drive the
game on its own, or answer tiles you place by hand.

Controls:
  Arrows/WASD  - Move
  Space        - Toggle autoplay
  O            - AI plays one move (no new tile)
  +/-          - Intelligence up/down by 5
  </>          - Autoplay delay down/up by 100ms
  B            - Back up the board
  R            - Reset (restores the backup if there is one)
  I/J/K/L      - Move the placement cursor
  [/]          - Placement value down/up
  Enter        - Place a tile at the cursor
  Ctrl+S       - Save a screenshot
  ?            - All keys
  Q/Ctrl+C     - Quit

Presets: off, low, normal, high.

Examples:
  ai2048 play
  ai2048 play --preset high --autoplay
  ai2048 play --backup opening
  ai2048 play --save-backup opening`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Intelligence preset: off, low, normal, high")
	playCmd.Flags().StringVar(&flagBackup, "backup", "", "Start from a stored backup")
	playCmd.Flags().StringVar(&flagSaveBackup, "save-backup", "", "Store the session backup under this name on exit")
	playCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Start with autoplay on")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(flagPreset)
	exitOnErr("loading config", err)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	logger, closeLog, err := playLogger(flagLogFile)
	exitOnErr("opening log file", err)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := game.OptionsFromConfig(cfg)
	opts.Logger = logger
	if flagBackup != "" {
		if store == nil {
			exitOnErr("loading backup", errors.New("no database"))
		}
		board, loadErr := store.LoadBackup(flagBackup)
		exitOnErr("loading backup", loadErr)
		opts.Size = board.Size()
		opts.Initial = board
	}

	session := game.New(opts)
	session.SetAutoplay(flagAutoplay)

	rt := core.RuntimeConfig{ScreenW: width, ScreenH: height}
	runErr := tui.Run(session, store, logger, rt)

	if flagSaveBackup != "" && session.HasBackup() && store != nil {
		if err := store.SaveBackup(flagSaveBackup, session.BackupBoard()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not store backup: %v\n", err)
		} else {
			fmt.Printf("Backup stored as %q\n", flagSaveBackup)
		}
	}

	exitOnErr("running game", runErr)
}

// playLogger returns a logger that stays off the alternate screen: it writes
// to path when given and discards otherwise.
func playLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "ai2048",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, func() { f.Close() }, nil
}
