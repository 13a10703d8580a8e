package solver

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ai2048/internal/engine"
)

// checkerboard is full and has no equal neighbours, so nothing can move.
var checkerboard = [][]int{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func engineFromRows(t *testing.T, rows [][]int) *engine.Engine {
	t.Helper()
	b, err := engine.BoardFromRows(rows)
	if err != nil {
		t.Fatalf("BoardFromRows() failed: %v", err)
	}
	return engine.NewFromBoard(b, engine.WithSeed(1))
}

func TestNumRuns(t *testing.T) {
	tests := []struct {
		name         string
		intelligence int
		score        int
		want         int
	}{
		{"zero intelligence", 0, 5000, 0},
		{"negative intelligence", -10, 0, 0},
		{"fraction floors to zero", 1, 0, 0},
		{"max at start", 100, 0, 10},
		{"max mid game", 100, 1000, 15},
		{"half late game", 50, 2000, 10},
		{"slider step", 5, 10000, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumRuns(tt.intelligence, tt.score); got != tt.want {
				t.Errorf("NumRuns(%d, %d) = %d, want %d", tt.intelligence, tt.score, got, tt.want)
			}
		})
	}
}

func TestZeroIntelligenceSkipsPlayouts(t *testing.T) {
	e := engine.New(4, engine.WithSeed(3))
	e.AddTile(engine.Position{Row: 0, Col: 0}, 2)

	s := New(e, WithIntelligence(0), WithSeed(3))
	a := s.Analyze()

	if a.NumRuns != 0 {
		t.Errorf("NumRuns = %d, want 0", a.NumRuns)
	}
	if len(a.Evaluations) != 0 {
		t.Errorf("Evaluations = %v, want none", a.Evaluations)
	}
	if a.Playouts() != 0 {
		t.Errorf("Playouts() = %d, want 0", a.Playouts())
	}
	if !a.Best.Valid() {
		t.Errorf("Best = %d, want a valid direction", a.Best)
	}
}

func TestTiesGoToFirstDirection(t *testing.T) {
	e := engineFromRows(t, checkerboard)
	s := New(e, WithIntelligence(100), WithSeed(11))

	a := s.Analyze()
	if a.NumRuns != 10 {
		t.Fatalf("NumRuns = %d, want 10", a.NumRuns)
	}
	for _, ev := range a.Evaluations {
		if ev.Average != 0 {
			t.Errorf("average for %s = %d, want 0", ev.Direction, ev.Average)
		}
	}
	if a.Best != engine.Up {
		t.Errorf("Best = %s, want up", a.Best)
	}
}

func TestOnlyEffectiveDirectionWins(t *testing.T) {
	// Top row is full with no merges and the rest is empty: only Down moves.
	e := engineFromRows(t, [][]int{
		{2, 4, 8, 16},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s := New(e, WithIntelligence(30), WithSeed(5))

	a := s.Analyze()
	if a.Best != engine.Down {
		t.Errorf("Best = %s, want down", a.Best)
	}
	for _, ev := range a.Evaluations {
		if ev.Direction != engine.Down && ev.Average != 0 {
			t.Errorf("average for no-op %s = %d, want 0", ev.Direction, ev.Average)
		}
	}
	if got := a.Evaluations[1].Average; got <= 0 {
		t.Errorf("average for down = %d, want > 0", got)
	}
}

func TestDeterministicAcrossWorkerCounts(t *testing.T) {
	rows := [][]int{
		{2, 0, 0, 2},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{2, 0, 0, 0},
	}

	var results []Analysis
	for _, workers := range []int{1, 3, 8} {
		e := engineFromRows(t, rows)
		s := New(e, WithIntelligence(20), WithWorkers(workers), WithSeed(42))
		results = append(results, s.Analyze())
	}

	want := results[0]
	for i, got := range results[1:] {
		if got.Best != want.Best || got.NumRuns != want.NumRuns {
			t.Errorf("run %d: Best/NumRuns = %s/%d, want %s/%d", i+1, got.Best, got.NumRuns, want.Best, want.NumRuns)
		}
		for d := range want.Evaluations {
			if got.Evaluations[d] != want.Evaluations[d] {
				t.Errorf("run %d: evaluation %d = %+v, want %+v", i+1, d, got.Evaluations[d], want.Evaluations[d])
			}
		}
	}
}

func TestAnalyzeDoesNotTouchLiveEngine(t *testing.T) {
	e := engineFromRows(t, [][]int{
		{2, 2, 0, 0},
		{0, 4, 4, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 8},
	})
	before := e.Board()
	scoreBefore := e.Score()

	var events int
	hooked := engine.NewFromBoard(before, engine.WithObserver(engine.Hooks{
		OnTileMoved: func(engine.Position, engine.Position, int) { events++ },
		OnTileAdded: func(engine.Position, int) { events++ },
	}))

	for _, live := range []*engine.Engine{e, hooked} {
		s := New(live, WithIntelligence(10), WithSeed(9))
		s.FindBestMove()
	}

	if !e.Board().Equal(before) {
		t.Errorf("live board changed:\n%s\nwant:\n%s", e.Board(), before)
	}
	if e.Score() != scoreBefore {
		t.Errorf("live score = %d, want %d", e.Score(), scoreBefore)
	}
	if events != 0 {
		t.Errorf("live observer got %d events, want 0", events)
	}
}

func TestPlayout(t *testing.T) {
	full, _ := engine.BoardFromRows(checkerboard)
	rng := rand.New(rand.NewPCG(1, 0))

	if got := Playout(full, engine.Left, rng, engine.DefaultSpawn4Prob); got != 0 {
		t.Errorf("Playout() on a dead board = %d, want 0", got)
	}

	seeded := engine.New(4, engine.WithSeed(2))
	seeded.SpawnRandom()
	seeded.SpawnRandom()
	board := seeded.Board()

	got := Playout(board, engine.Up, rng, engine.DefaultSpawn4Prob)
	if got < 0 || got%4 != 0 {
		t.Errorf("Playout() = %d, want a non-negative multiple of 4", got)
	}
	if !board.Equal(seeded.Board()) {
		t.Error("Playout() mutated its input board")
	}
}

func TestSetIntelligence(t *testing.T) {
	s := New(engine.New(4), WithIntelligence(40))
	if got := s.Intelligence(); got != 40 {
		t.Errorf("Intelligence() = %d, want 40", got)
	}

	s.SetIntelligence(-3)
	if got := s.Intelligence(); got != 0 {
		t.Errorf("Intelligence() after negative = %d, want 0", got)
	}

	if s.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", s.Workers())
	}
}

func TestDecisionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	e := engineFromRows(t, checkerboard)
	s := New(e, WithIntelligence(100), WithSeed(1), WithLogger(logger))
	s.FindBestMove()

	out := buf.String()
	if !strings.Contains(out, "move chosen") {
		t.Errorf("log output = %q, want a decision line", out)
	}
	if !strings.Contains(out, "runs=10") {
		t.Errorf("log output = %q, want runs=10", out)
	}
}
