package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai2048/internal/config"
	"github.com/vovakirdan/ai2048/internal/engine"
	"github.com/vovakirdan/ai2048/internal/registry"
	"github.com/vovakirdan/ai2048/internal/solver"
	"github.com/vovakirdan/ai2048/internal/storage"
)

var (
	flagBenchGames    int
	flagBenchStrategy string
	flagBenchNoSave   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Play many games with one strategy and summarize",
	Long: `Play --games games with the chosen strategy, store each run under one
batch id, and print mean and best scores with the max tile reached.

Run 'ai2048 list' to see the strategies.

Examples:
  ai2048 bench --games 10
  ai2048 bench --games 100 --strategy greedy
  ai2048 bench --strategy montecarlo --preset low --seed 1`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchGames, "games", 10, "Number of games to play")
	benchCmd.Flags().StringVar(&flagBenchStrategy, "strategy", solver.MonteCarloID, "Strategy ID")
	benchCmd.Flags().StringVar(&flagPreset, "preset", "", "Intelligence preset: off, low, normal, high")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not store the runs")
}

// benchResult is one finished game.
type benchResult struct {
	Score   int
	MaxTile int
	Moves   int
}

func runBench(cmd *cobra.Command, args []string) {
	logger := newLogger("bench")

	if !registry.Exists(flagBenchStrategy) {
		exitOnErr("choosing strategy", fmt.Errorf("unknown strategy %q (run 'ai2048 list')", flagBenchStrategy))
	}

	cfg, err := loadConfig(flagPreset)
	exitOnErr("loading config", err)

	var store *storage.Store
	if !flagBenchNoSave {
		store, err = storage.Open(flagDBPath)
		exitOnErr("opening runs database", err)
		defer store.Close()
	}

	batch := storage.NewBatchID()
	logger.Info("bench started", "batch", batch, "strategy", flagBenchStrategy, "games", flagBenchGames)

	seed := cfg.Solver.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	seeds := rand.New(rand.NewPCG(seed, 0))

	start := time.Now()
	results := make([]benchResult, 0, flagBenchGames)
	for i := range flagBenchGames {
		res, err := benchGame(flagBenchStrategy, cfg, seeds.Uint64(), seeds.Uint64(), logger)
		exitOnErr("creating strategy", err)
		results = append(results, res)

		logger.Info("game finished", "game", i+1, "score", res.Score, "max", res.MaxTile, "moves", res.Moves)
		if store != nil {
			_, err := store.SaveRun(storage.Run{
				BatchID:      batch,
				Strategy:     flagBenchStrategy,
				Score:        res.Score,
				MaxTile:      res.MaxTile,
				Moves:        res.Moves,
				Intelligence: cfg.Solver.Intelligence,
				BoardSize:    cfg.Board.Size,
			})
			if err != nil {
				logger.Error("could not save run", "error", err)
			}
		}
	}

	printBenchSummary(flagBenchStrategy, results, time.Since(start))
	if store != nil {
		fmt.Printf("\nBatch: %s (ai2048 scores --batch %s)\n", batch, batch)
	}
}

// benchGame plays one game with strategy id from a fresh board.
func benchGame(id string, cfg config.Config, engineSeed, strategySeed uint64, logger *log.Logger) (benchResult, error) {
	e := engine.New(cfg.Board.Size,
		engine.WithSeed(engineSeed),
		engine.WithSpawn4Prob(cfg.Board.Spawn4Prob),
	)
	e.SpawnRandom()
	e.SpawnRandom()

	strategy, err := registry.Create(id, e, registry.Options{
		Intelligence: cfg.Solver.Intelligence,
		Workers:      cfg.Solver.Workers,
		Seed:         strategySeed,
		Logger:       logger,
	})
	if err != nil {
		return benchResult{}, err
	}

	moves := playStrategy(e, strategy)
	return benchResult{Score: e.Score(), MaxTile: e.Board().MaxTile(), Moves: moves}, nil
}

// playStrategy plays strategy on e until the game is over and returns the
// number of effective moves. A move that changes nothing is replaced by the
// first direction that does.
func playStrategy(e *engine.Engine, strategy registry.Strategy) int {
	moves := 0
	for !e.IsGameOver() {
		if !e.Move(strategy.NextMove(), true) {
			for _, dir := range engine.Directions() {
				if e.Move(dir, true) {
					break
				}
			}
		}
		moves++
	}
	return moves
}

func printBenchSummary(id string, results []benchResult, elapsed time.Duration) {
	if len(results) == 0 {
		fmt.Println("No games played.")
		return
	}

	total, best, bestTile := 0, 0, 0
	tiles := make(map[int]int)
	for _, r := range results {
		total += r.Score
		best = max(best, r.Score)
		bestTile = max(bestTile, r.MaxTile)
		tiles[r.MaxTile]++
	}

	fmt.Printf("Strategy: %s  Games: %d  Time: %s\n", id, len(results), elapsed.Round(time.Millisecond))
	fmt.Printf("Mean score: %s  Best score: %s  Best tile: %d\n",
		humanize.Comma(int64(total/len(results))), humanize.Comma(int64(best)), bestTile)
	fmt.Println()

	values := make([]int, 0, len(tiles))
	for v := range tiles {
		values = append(values, v)
	}
	slices.Sort(values)
	slices.Reverse(values)

	fmt.Printf("  %-8s  %-6s  %s\n", "Max tile", "Games", "Share")
	fmt.Printf("  %-8s  %-6s  %s\n", "--------", "-----", "-----")
	for _, v := range values {
		fmt.Printf("  %-8d  %-6d  %.0f%%\n", v, tiles[v], 100*float64(tiles[v])/float64(len(results)))
	}
}
