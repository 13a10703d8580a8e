package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai2048/internal/game"
	"github.com/vovakirdan/ai2048/internal/solver"
	"github.com/vovakirdan/ai2048/internal/storage"
)

var (
	flagSolveBackup   string
	flagSolveSave     bool
	flagSolveEvery    int
	flagSolveMaxMoves int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Let the AI play one game to the end",
	Long: `Run the Monte Carlo AI from a fresh board (or a stored backup) until no
move is left, then print the final board.

Examples:
  ai2048 solve
  ai2048 solve --preset low --every 50
  ai2048 solve --backup opening --save
  ai2048 solve --seed 7 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagPreset, "preset", "", "Intelligence preset: off, low, normal, high")
	solveCmd.Flags().StringVar(&flagSolveBackup, "backup", "", "Start from a stored backup")
	solveCmd.Flags().BoolVar(&flagSolveSave, "save", false, "Store the finished run")
	solveCmd.Flags().IntVar(&flagSolveEvery, "every", 100, "Log progress every N moves (0 = never)")
	solveCmd.Flags().IntVar(&flagSolveMaxMoves, "max-moves", 0, "Stop after N moves (0 = play to the end)")
}

func runSolve(cmd *cobra.Command, args []string) {
	logger := newLogger("solve")

	cfg, err := loadConfig(flagPreset)
	exitOnErr("loading config", err)

	var store *storage.Store
	if flagSolveSave || flagSolveBackup != "" {
		store, err = storage.Open(flagDBPath)
		exitOnErr("opening runs database", err)
		defer store.Close()
	}

	opts := game.OptionsFromConfig(cfg)
	opts.Logger = logger
	if flagSolveBackup != "" {
		board, loadErr := store.LoadBackup(flagSolveBackup)
		exitOnErr("loading backup", loadErr)
		opts.Size = board.Size()
		opts.Initial = board
	}

	session := game.New(opts)
	logger.Info("solving",
		"intelligence", session.Intelligence(),
		"workers", session.Solver().Workers(),
		"size", opts.Size,
	)

	solveSession(session, flagSolveMaxMoves, func(s *game.Session) {
		if flagSolveEvery > 0 && s.Moves()%flagSolveEvery == 0 {
			logger.Info("progress",
				"moves", s.Moves(),
				"score", s.Score(),
				"max", s.Board().MaxTile(),
				"runs", solver.NumRuns(s.Intelligence(), s.Score()),
			)
		}
	})

	snap := session.Snapshot()
	fmt.Println(session.Board())
	fmt.Printf("Score: %d  Max tile: %d  Moves: %d\n", snap.Score, snap.MaxTile, snap.Moves)

	if flagSolveSave {
		run, err := store.SaveRun(storage.Run{
			Strategy:     solver.MonteCarloID,
			Score:        snap.Score,
			MaxTile:      snap.MaxTile,
			Moves:        snap.Moves,
			Intelligence: snap.Intelligence,
			BoardSize:    len(snap.Board),
		})
		exitOnErr("saving run", err)
		logger.Info("run saved", "run", run.RunID)
		fmt.Printf("Run: %s (ai2048 scores --run %s)\n", run.RunID, run.RunID)
	}
}

// solveSession plays AI moves with spawning until the game ends or maxMoves
// is reached (0 means no limit). after runs once per effective move.
func solveSession(s *game.Session, maxMoves int, after func(*game.Session)) {
	for !s.IsGameOver() {
		if maxMoves > 0 && s.Moves() >= maxMoves {
			return
		}
		if _, moved := s.AIStep(true); !moved {
			return
		}
		if after != nil {
			after(s)
		}
	}
}
