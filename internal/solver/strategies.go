package solver

import (
	"math/rand/v2"

	"github.com/vovakirdan/ai2048/internal/engine"
	"github.com/vovakirdan/ai2048/internal/registry"
)

// Strategy IDs as stored with each run.
const (
	MonteCarloID = "montecarlo"
	RandomID     = "random"
	GreedyID     = "greedy"
)

func init() {
	registry.Register(MonteCarloID, func(live *engine.Engine, opts registry.Options) registry.Strategy {
		return New(live,
			WithIntelligence(opts.Intelligence),
			WithWorkers(opts.Workers),
			WithSeed(seedOrRandom(opts.Seed)),
			WithLogger(opts.Logger),
		)
	})
	registry.Register(RandomID, func(live *engine.Engine, opts registry.Options) registry.Strategy {
		return &randomStrategy{rng: rand.New(rand.NewPCG(seedOrRandom(opts.Seed), 0))}
	})
	registry.Register(GreedyID, func(live *engine.Engine, _ registry.Options) registry.Strategy {
		return &greedyStrategy{live: live}
	})
}

func seedOrRandom(seed uint64) uint64 {
	if seed == 0 {
		return rand.Uint64()
	}
	return seed
}

// ID implements registry.Strategy.
func (s *Solver) ID() string { return MonteCarloID }

// Title implements registry.Strategy.
func (s *Solver) Title() string { return "Monte Carlo rollouts" }

// NextMove implements registry.Strategy.
func (s *Solver) NextMove() engine.Direction { return s.FindBestMove() }

type randomStrategy struct {
	rng *rand.Rand
}

func (r *randomStrategy) ID() string    { return RandomID }
func (r *randomStrategy) Title() string { return "Uniform random" }

func (r *randomStrategy) NextMove() engine.Direction {
	return engine.RandomDirection(r.rng)
}

// greedyStrategy takes the move with the largest immediate merge score.
// Only moves that change the board are considered; ties keep canonical order.
type greedyStrategy struct {
	live *engine.Engine
}

func (g *greedyStrategy) ID() string    { return GreedyID }
func (g *greedyStrategy) Title() string { return "Greedy merge" }

func (g *greedyStrategy) NextMove() engine.Direction {
	board := g.live.Board()

	best, bestGain := engine.Up, -1
	for _, dir := range engine.Directions() {
		trial := engine.NewFromBoard(board, engine.WithSeed(0))
		if !trial.Move(dir, false) {
			continue
		}
		if gain := trial.Score(); gain > bestGain {
			best, bestGain = dir, gain
		}
	}
	return best
}

var (
	_ registry.Strategy = (*Solver)(nil)
	_ registry.Strategy = (*randomStrategy)(nil)
	_ registry.Strategy = (*greedyStrategy)(nil)
)
