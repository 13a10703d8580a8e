package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ai2048/internal/platform/tui"
	"github.com/vovakirdan/ai2048/internal/solver"
	"github.com/vovakirdan/ai2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresBatch string
	flagScoresRun   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [strategy]",
	Short: "Show the best stored runs",
	Long: `Display the best runs for a strategy (default: montecarlo). Manual games
are stored under "manual".

Examples:
  ai2048 scores
  ai2048 scores manual --limit 20
  ai2048 scores --all
  ai2048 scores --tui
  ai2048 scores greedy --clear
  ai2048 scores --batch 5f0c...  # games of one bench invocation
  ai2048 scores --run 9a1e...    # a single run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every strategy")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the strategy's runs")
	scoresCmd.Flags().StringVar(&flagScoresBatch, "batch", "", "Show the runs of one bench batch")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by id")
}

func runScores(cmd *cobra.Command, args []string) {
	strategy := solver.MonteCarloID
	if len(args) > 0 {
		strategy = args[0]
	}

	store, err := storage.Open(flagDBPath)
	exitOnErr("opening runs database", err)
	defer store.Close()

	switch {
	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		exitOnErr("running scoreboard", tui.RunScoreboard(store, strategy, width, height))

	case flagScoresClear:
		exitOnErr("clearing runs", store.ClearRuns(strategy))
		fmt.Printf("Cleared runs for %s.\n", strategy)

	case flagScoresRun != "":
		printRun(store, flagScoresRun)

	case flagScoresBatch != "":
		printBatch(store, flagScoresBatch)

	case flagScoresAll:
		printAllStats(store)

	default:
		printTopRuns(store, strategy, flagScoresLimit)
	}
}

func printTopRuns(store *storage.Store, strategy string, limit int) {
	runs, err := store.TopRuns(strategy, limit)
	exitOnErr("retrieving runs", err)

	fmt.Printf("Best runs - %s\n", strategy)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ai2048 play' or 'ai2048 bench' to record some!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-5s  %s\n", "Rank", "Score", "Tile", "Moves", "Intel", "Played")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-5s  %s\n", "----", "-----", "----", "-----", "-----", "------")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-6d  %-6d  %-5d  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.MaxTile, r.Moves, r.Intelligence, humanize.Time(r.CreatedAt))
	}

	fmt.Println()
	if best, err := store.HighScore(strategy); err == nil {
		fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllStrategyStats()
	exitOnErr("retrieving stats", err)

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %-6s  %s\n", "Strategy", "Games", "Best", "Average", "Tile", "Last played")
	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %-6s  %s\n", "--------", "-----", "----", "-------", "----", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %-6d  %-10s  %-10s  %-6d  %s\n",
			id, st.GamesCount,
			humanize.Comma(int64(st.HighScore)),
			humanize.Comma(int64(st.AvgScore)),
			st.BestTile,
			humanize.Time(st.LastPlayed),
		)
	}
}

func printRun(store *storage.Store, runID string) {
	run, err := store.RunByID(runID)
	exitOnErr("retrieving run", err)
	if run == nil {
		exitOnErr("retrieving run", fmt.Errorf("no run %q", runID))
	}

	fmt.Printf("Run:          %s\n", run.RunID)
	if run.BatchID != "" {
		fmt.Printf("Batch:        %s\n", run.BatchID)
	}
	fmt.Printf("Strategy:     %s\n", run.Strategy)
	fmt.Printf("Score:        %s\n", humanize.Comma(int64(run.Score)))
	fmt.Printf("Max tile:     %d\n", run.MaxTile)
	fmt.Printf("Moves:        %d\n", run.Moves)
	fmt.Printf("Intelligence: %d\n", run.Intelligence)
	fmt.Printf("Board:        %dx%d\n", run.BoardSize, run.BoardSize)
	fmt.Printf("Played:       %s\n", humanize.Time(run.CreatedAt))
}

func printBatch(store *storage.Store, batchID string) {
	runs, err := store.BatchRuns(batchID)
	exitOnErr("retrieving batch", err)

	if len(runs) == 0 {
		fmt.Printf("No runs in batch %s.\n", batchID)
		return
	}

	fmt.Printf("Batch %s - %s\n", batchID, runs[0].Strategy)
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "Game", "Score", "Tile", "Moves", "Run")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "---")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-6d  %-6d  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.MaxTile, r.Moves, r.RunID)
	}
}
