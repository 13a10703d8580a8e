// Package solver picks moves by flat Monte Carlo search: every candidate
// first move is scored by the average result of full random playouts on a
// cloned board.
package solver

import (
	"io"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/ai2048/internal/engine"
)

// MaxIntelligence is the top of the UI slider. The solver itself only
// requires intelligence to be non-negative.
const MaxIntelligence = 100

// Solver chooses moves for a live engine. It only ever reads the live board
// (by cloning it) and never mutates the live engine.
type Solver struct {
	live         *engine.Engine
	intelligence atomic.Int64
	workers      int
	logger       *log.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Solver.
type Option func(*Solver)

// WithIntelligence sets the initial playout budget knob.
func WithIntelligence(v int) Option {
	return func(s *Solver) {
		s.SetIntelligence(v)
	}
}

// WithWorkers bounds the number of concurrent playouts. Values < 1 mean one
// worker per CPU.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		s.workers = n
	}
}

// WithSeed makes move selection reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Solver) {
		s.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// WithLogger sets the logger used for per-decision debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		s.logger = l
	}
}

// New creates a solver bound to the live engine.
func New(live *engine.Engine, opts ...Option) *Solver {
	s := &Solver{live: live}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// SetIntelligence updates the playout budget knob. Negative values become 0.
// Safe to call while a search is running; the next search picks it up.
func (s *Solver) SetIntelligence(v int) {
	if v < 0 {
		v = 0
	}
	s.intelligence.Store(int64(v))
}

// Intelligence returns the current playout budget knob.
func (s *Solver) Intelligence() int {
	return int(s.intelligence.Load())
}

// Workers returns the playout concurrency limit.
func (s *Solver) Workers() int {
	return s.workers
}

// NumRuns returns the number of playouts per candidate direction for the
// given intelligence and current score.
func NumRuns(intelligence, score int) int {
	if intelligence <= 0 {
		return 0
	}
	return int(float64(intelligence) * (0.1 + 0.00005*float64(score)))
}

// Evaluation is the playout average for one candidate first move.
type Evaluation struct {
	Direction engine.Direction
	Average   int
}

// Analysis is the outcome of one move decision.
type Analysis struct {
	Best        engine.Direction
	NumRuns     int
	Evaluations []Evaluation // empty when NumRuns is 0
}

// Playouts returns the total number of simulated games.
func (a Analysis) Playouts() int {
	return a.NumRuns * len(a.Evaluations)
}

// FindBestMove returns the direction with the highest playout average for
// the live board.
func (s *Solver) FindBestMove() engine.Direction {
	return s.Analyze().Best
}

// Analyze runs the search on a snapshot of the live board.
func (s *Solver) Analyze() Analysis {
	return s.AnalyzeBoard(s.live.Board(), s.live.Score())
}

// AnalyzeBoard runs the search on a caller-provided snapshot. score is the
// score of the game the snapshot came from; it only scales the budget.
func (s *Solver) AnalyzeBoard(board *engine.Board, score int) Analysis {
	numRuns := NumRuns(s.Intelligence(), score)

	// Seeds are drawn up front in (direction, run) order so the outcome
	// doesn't depend on how playouts get scheduled.
	s.mu.Lock()
	fallback := engine.RandomDirection(s.rng)
	seeds := make([]uint64, numRuns*len(engine.Directions()))
	for i := range seeds {
		seeds[i] = s.rng.Uint64()
	}
	s.mu.Unlock()

	a := Analysis{Best: fallback, NumRuns: numRuns}
	if numRuns == 0 {
		s.logger.Debug("no playout budget, moving at random", "move", fallback)
		return a
	}

	dirs := engine.Directions()
	spawn4 := s.live.Spawn4Prob()
	results := make([]int, len(seeds))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, seed := range seeds {
		dir := dirs[i/numRuns]
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			results[i] = Playout(board, dir, rng, spawn4)
			return nil
		})
	}
	// Playouts don't fail
	_ = g.Wait()

	best := -1
	for d, dir := range dirs {
		sum := 0
		for _, r := range results[d*numRuns : (d+1)*numRuns] {
			sum += r
		}
		avg := sum / numRuns
		a.Evaluations = append(a.Evaluations, Evaluation{Direction: dir, Average: avg})

		// Strictly greater, so ties keep the earlier direction
		if avg > best {
			best = avg
			a.Best = dir
		}
	}

	s.logger.Debug("move chosen",
		"move", a.Best,
		"runs", numRuns,
		"score", score,
		"up", a.Evaluations[0].Average,
		"down", a.Evaluations[1].Average,
		"left", a.Evaluations[2].Average,
		"right", a.Evaluations[3].Average,
	)
	return a
}

// Playout plays first on a private copy of board, then random moves until
// the game is over, spawning after every effective move. It returns the
// score earned during the playout. A first move that changes nothing ends
// the playout immediately.
func Playout(board *engine.Board, first engine.Direction, rng *rand.Rand, spawn4Prob float64) int {
	game := engine.NewFromBoard(board,
		engine.WithRand(rng),
		engine.WithSpawn4Prob(spawn4Prob),
	)

	if !game.Move(first, true) {
		return game.Score()
	}

	for !game.IsGameOver() {
		game.Move(engine.RandomDirection(rng), true)
	}
	return game.Score()
}
