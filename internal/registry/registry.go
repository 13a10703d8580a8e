// Package registry provides a global registry for move strategies.
// Strategies register themselves in init() functions, so the CLI and the
// benchmark can discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ai2048/internal/engine"
)

// Strategy picks the next move for the engine it was created with.
// Strategies only read the engine; the caller applies the move.
type Strategy interface {
	// ID returns a unique identifier (e.g., "montecarlo", "greedy").
	// Used for CLI flags and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// NextMove returns the direction to play from the current position.
	NextMove() engine.Direction
}

// Options carries the knobs a factory may use. Strategies ignore the ones
// that don't apply to them.
type Options struct {
	Intelligence int
	Workers      int
	Seed         uint64 // 0 means pick a random seed
	Logger       *log.Logger
}

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	ID    string
	Title string
}

// Factory creates a strategy bound to a live engine.
type Factory func(live *engine.Engine, opts Options) Strategy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from an init() function.
// Panics if a strategy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	s := f(engine.New(engine.DefaultSize), Options{Seed: 1})
	titles[id] = s.Title()
}

// List returns information about all registered strategies, sorted by ID.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, StrategyInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a strategy by its ID for the given engine.
// Returns an error if the ID is not registered.
func Create(id string, live *engine.Engine, opts Options) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", id)
	}

	return f(live, opts), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
