package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ai2048/internal/config"
	"github.com/vovakirdan/ai2048/internal/engine"
	"github.com/vovakirdan/ai2048/internal/game"
	"github.com/vovakirdan/ai2048/internal/registry"
	"github.com/vovakirdan/ai2048/internal/solver"
)

func TestParseBoard(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMax int
		wantErr bool
	}{
		{"commas", "0,0,0,0/0,0,0,0/0,2,0,0/2,4,8,64", 64, false},
		{"spaces", " 2 0 / 0 4 ", 4, false},
		{"bad cell", "0,x/0,0", 0, true},
		{"not square", "0,0,0/0,0,0", 0, true},
		{"bad value", "3,0/0,0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := parseBoard(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBoard(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && b.MaxTile() != tt.wantMax {
				t.Errorf("MaxTile() = %d, want %d", b.MaxTile(), tt.wantMax)
			}
		})
	}
}

func TestPlayStrategyEndsGame(t *testing.T) {
	for _, id := range []string{solver.RandomID, solver.GreedyID} {
		t.Run(id, func(t *testing.T) {
			e := engine.New(4, engine.WithSeed(9))
			e.SpawnRandom()
			e.SpawnRandom()

			s, err := registry.Create(id, e, registry.Options{Seed: 4})
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}

			moves := playStrategy(e, s)
			if !e.IsGameOver() {
				t.Error("game not over after playStrategy")
			}
			if moves == 0 || e.Score() == 0 {
				t.Errorf("moves = %d, score = %d, want both > 0", moves, e.Score())
			}
		})
	}
}

func TestBenchGameDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Solver.Intelligence = 5
	cfg.Solver.Workers = 2
	logger := log.New(io.Discard)

	a, err := benchGame(solver.MonteCarloID, cfg, 11, 12, logger)
	if err != nil {
		t.Fatalf("benchGame() failed: %v", err)
	}
	b, _ := benchGame(solver.MonteCarloID, cfg, 11, 12, logger)
	if a != b {
		t.Errorf("same seeds gave %+v and %+v", a, b)
	}

	if _, err := benchGame("nope", cfg, 1, 2, logger); err == nil {
		t.Error("benchGame() with unknown strategy should fail")
	}
}

func TestSolveSession(t *testing.T) {
	opts := game.Options{Size: 4, Intelligence: 5, Workers: 2, Seed: 3}

	t.Run("to the end", func(t *testing.T) {
		s := game.New(opts)
		calls := 0
		solveSession(s, 0, func(*game.Session) { calls++ })

		if !s.IsGameOver() {
			t.Error("game not over")
		}
		if calls != s.Moves() {
			t.Errorf("callback ran %d times for %d moves", calls, s.Moves())
		}
	})

	t.Run("move limit", func(t *testing.T) {
		s := game.New(opts)
		solveSession(s, 15, nil)
		if s.Moves() != 15 {
			t.Errorf("Moves = %d, want 15", s.Moves())
		}
	})
}
