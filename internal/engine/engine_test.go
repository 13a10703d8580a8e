package engine

import (
	"testing"
)

// newTestEngine builds a seeded engine from literal rows.
func newTestEngine(t *testing.T, rows [][]int, opts ...Option) *Engine {
	t.Helper()
	b, err := BoardFromRows(rows)
	if err != nil {
		t.Fatalf("BoardFromRows() failed: %v", err)
	}
	opts = append([]Option{WithSeed(1)}, opts...)
	return NewFromBoard(b, opts...)
}

func rowsOf(e *Engine) [][]int {
	return e.Board().Rows()
}

func equalRows(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

type recorder struct {
	moves []moveEvent
	added []Tile
}

func (r *recorder) TileMoved(from, to Position, value int) {
	r.moves = append(r.moves, moveEvent{from: from, to: to, value: value})
}

func (r *recorder) TileAdded(at Position, value int) {
	r.added = append(r.added, Tile{Pos: at, Value: value})
}

func TestMoveLeftSingleRow(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		moved    bool
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
			moved:    true,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "one merge per tile",
			input:    []int{4, 4, 4, 4},
			expected: []int{8, 8, 0, 0},
			score:    16,
			moved:    true,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			score:    0,
			moved:    false,
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "no change needed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
			score:    0,
			moved:    false,
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			score:    0,
			moved:    false,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    0,
			moved:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, [][]int{
				tt.input,
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			})

			moved := e.Move(Left, false)
			got := rowsOf(e)[0]

			if !equalRows([][]int{got}, [][]int{tt.expected}) {
				t.Errorf("Move(Left) row %v = %v, want %v", tt.input, got, tt.expected)
			}
			if e.Score() != tt.score {
				t.Errorf("Move(Left) row %v score = %d, want %d", tt.input, e.Score(), tt.score)
			}
			if moved != tt.moved {
				t.Errorf("Move(Left) row %v moved = %v, want %v", tt.input, moved, tt.moved)
			}
		})
	}
}

func TestMoveAllDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		board    [][]int
		expected [][]int
		score    int
	}{
		{
			name: "left",
			dir:  Left,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "right",
			dir:  Right,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "up",
			dir:  Up,
			board: [][]int{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: [][]int{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "down",
			dir:  Down,
			board: [][]int{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
			score: 4 + 8 + 4 + 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.board)
			if !e.Move(tt.dir, false) {
				t.Fatalf("Move(%s) should indicate board changed", tt.dir)
			}
			if got := rowsOf(e); !equalRows(got, tt.expected) {
				t.Errorf("Move(%s): got\n%v\nwant\n%v", tt.dir, got, tt.expected)
			}
			if e.Score() != tt.score {
				t.Errorf("Move(%s) score = %d, want %d", tt.dir, e.Score(), tt.score)
			}
		})
	}
}

func TestMergeConservation(t *testing.T) {
	rec := &recorder{}
	e := New(4, WithSeed(7), WithObserver(rec))
	e.SpawnRandom()
	e.SpawnRandom()

	for i := 0; i < 300 && !e.IsGameOver(); i++ {
		before := e.Board()
		scoreBefore := e.Score()
		rec.moves = nil

		e.Move(Directions()[i%4], false)

		// A merging tile arrives with a value different from the one it left
		merges, mergedSum := 0, 0
		for _, ev := range rec.moves {
			if ev.value != before.Value(ev.from) {
				merges++
				mergedSum += ev.value
			}
		}

		after := e.Board()
		if gained := e.Score() - scoreBefore; gained != mergedSum {
			t.Fatalf("move %d: score gained %d, want sum of merges %d", i, gained, mergedSum)
		}
		if dropped := before.Count() - after.Count(); dropped != merges {
			t.Fatalf("move %d: tile count dropped by %d, want %d merges", i, dropped, merges)
		}
		if after.Sum() != before.Sum() {
			t.Fatalf("move %d: tile sum %d, want %d", i, after.Sum(), before.Sum())
		}

		e.SpawnRandom()
	}
}

func TestNoOpMoveLeavesBoardIdentical(t *testing.T) {
	rec := &recorder{}
	rows := [][]int{
		{2, 4, 8, 16},
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 0},
	}
	e := newTestEngine(t, rows, WithObserver(rec))
	before := e.Board()

	if e.Move(Left, true) {
		t.Error("Move(Left) on left-aligned board should report no move")
	}
	if !e.Board().Equal(before) {
		t.Errorf("board changed on no-op move:\n%v\nwant\n%v", e.Board(), before)
	}
	if e.Score() != 0 {
		t.Errorf("score = %d after no-op, want 0", e.Score())
	}
	if len(rec.moves) != 0 || len(rec.added) != 0 {
		t.Errorf("no-op move fired events: moves=%v added=%v", rec.moves, rec.added)
	}
}

func TestMoveEventsFollowScanOrder(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		rows [][]int
		want []moveEvent
	}{
		{
			name: "right with gap",
			dir:  Right,
			rows: [][]int{
				{2, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: []moveEvent{
				{from: Position{0, 0}, to: Position{0, 2}, value: 2},
				{from: Position{0, 2}, to: Position{0, 3}, value: 4},
			},
		},
		{
			name: "right with merges",
			dir:  Right,
			rows: [][]int{
				{2, 2, 2, 2},
				{0, 0, 0, 0},
				{0, 4, 0, 0},
				{0, 0, 0, 0},
			},
			want: []moveEvent{
				{from: Position{0, 0}, to: Position{0, 2}, value: 4},
				{from: Position{0, 1}, to: Position{0, 2}, value: 2},
				{from: Position{0, 2}, to: Position{0, 3}, value: 4},
				{from: Position{2, 1}, to: Position{2, 3}, value: 4},
			},
		},
		{
			name: "down",
			dir:  Down,
			rows: [][]int{
				{0, 8, 0, 0},
				{0, 0, 0, 0},
				{0, 2, 0, 0},
				{0, 0, 0, 0},
			},
			want: []moveEvent{
				{from: Position{0, 1}, to: Position{2, 1}, value: 8},
				{from: Position{2, 1}, to: Position{3, 1}, value: 2},
			},
		},
		{
			name: "left",
			dir:  Left,
			rows: [][]int{
				{0, 2, 0, 4},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: []moveEvent{
				{from: Position{0, 1}, to: Position{0, 0}, value: 2},
				{from: Position{0, 3}, to: Position{0, 1}, value: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(t, tt.rows, WithObserver(rec))

			if !e.Move(tt.dir, false) {
				t.Fatalf("Move(%s) reported no move", tt.dir)
			}
			if len(rec.moves) != len(tt.want) {
				t.Fatalf("got %d events, want %d: %v", len(rec.moves), len(tt.want), rec.moves)
			}
			for i := range tt.want {
				if rec.moves[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, rec.moves[i], tt.want[i])
				}
			}
		})
	}
}

func TestSpawnAfterMove(t *testing.T) {
	rows := [][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 8},
	}

	for _, dir := range Directions() {
		t.Run(dir.String(), func(t *testing.T) {
			plain := newTestEngine(t, rows)
			rec := &recorder{}
			spawned := newTestEngine(t, rows, WithObserver(rec))

			movedPlain := plain.Move(dir, false)
			movedSpawn := spawned.Move(dir, true)

			if movedPlain != movedSpawn {
				t.Fatalf("moved = %v with spawn, %v without", movedSpawn, movedPlain)
			}
			want := plain.Board().Count()
			if movedSpawn {
				want++
			}
			if got := spawned.Board().Count(); got != want {
				t.Errorf("occupied cells = %d, want %d", got, want)
			}
			if movedSpawn && len(rec.added) != 1 {
				t.Errorf("TileAdded fired %d times, want 1", len(rec.added))
			}
		})
	}
}

func TestSpawnValues(t *testing.T) {
	e := New(4, WithSeed(99))
	twos, fours := 0, 0
	for range 2000 {
		e.Reset()
		if !e.SpawnRandom() {
			t.Fatal("SpawnRandom() on empty board returned false")
		}
		switch v := e.Board().MaxTile(); v {
		case 2:
			twos++
		case 4:
			fours++
		default:
			t.Fatalf("spawned value %d", v)
		}
	}

	ratio := float64(fours) / float64(twos+fours)
	if ratio < 0.05 || ratio > 0.15 {
		t.Errorf("spawn ratio of 4s = %.3f, want about 0.10", ratio)
	}
}

func TestSpawnOnFullBoard(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 4},
		{4, 2},
	})
	if e.SpawnRandom() {
		t.Error("SpawnRandom() on full board should return false")
	}
}

func TestAddTile(t *testing.T) {
	rec := &recorder{}
	e := New(4, WithSeed(1), WithObserver(rec))

	if !e.AddTile(Position{1, 2}, 8) {
		t.Fatal("AddTile() on empty cell should succeed")
	}
	if e.AddTile(Position{1, 2}, 2) {
		t.Error("AddTile() on occupied cell should fail")
	}
	if v := e.Value(Position{1, 2}); v != 8 {
		t.Errorf("Value(1,2) = %d, want 8", v)
	}
	if len(rec.added) != 1 || rec.added[0] != (Tile{Pos: Position{1, 2}, Value: 8}) {
		t.Errorf("TileAdded events = %v, want one (1,2)=8", rec.added)
	}
}

func TestContractViolationsPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"invalid direction", func() { New(4).Move(Direction(9), false) }},
		{"position out of range", func() { New(4).AddTile(Position{4, 0}, 2) }},
		{"negative position", func() { New(4).AddTile(Position{0, -1}, 2) }},
		{"non power of two", func() { New(4).AddTile(Position{0, 0}, 6) }},
		{"value one", func() { New(4).AddTile(Position{0, 0}, 1) }},
		{"zero size", func() { New(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s should panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestGameOver(t *testing.T) {
	// Board with no empty cells and no possible merges
	e := newTestEngine(t, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})
	if !e.IsGameOver() {
		t.Error("Board with no moves should be game over")
	}

	// Board with no empty cells but possible merges
	withMerge := newTestEngine(t, [][]int{
		{2, 2, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})
	if withMerge.IsGameOver() {
		t.Error("Board with possible merge should not be game over")
	}

	// Vertical neighbours count too
	withVertical := newTestEngine(t, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 4096},
	})
	if withVertical.IsGameOver() {
		t.Error("Board with vertical merge should not be game over")
	}

	// Board with empty cells
	withEmpty := newTestEngine(t, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	})
	if withEmpty.IsGameOver() {
		t.Error("Board with empty cell should not be game over")
	}
}

func TestIsGameOverHasNoSideEffects(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := e.Board()
	e.IsGameOver()
	if !e.Board().Equal(before) || e.Score() != 0 {
		t.Error("IsGameOver() mutated engine state")
	}
}

func TestCloneIndependence(t *testing.T) {
	original, err := BoardFromRows([][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 16},
	})
	if err != nil {
		t.Fatalf("BoardFromRows() failed: %v", err)
	}
	snapshot := original.Rows()

	clone := original.Clone()
	clone.set(Position{3, 0}, 1024)

	e := NewFromBoard(original, WithSeed(3))
	e.Move(Left, true)
	e.AddTile(Position{2, 3}, 2)

	if !equalRows(original.Rows(), snapshot) {
		t.Errorf("original board changed:\n%v", original)
	}
	if e.Board().Equal(original) {
		t.Error("engine board should have diverged from original")
	}

	// Snapshots returned by Board() are independent of the engine too
	snap := e.Board()
	snap.clear()
	if e.Board().Count() == 0 {
		t.Error("clearing a Board() snapshot cleared the engine")
	}
}

func TestReset(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, WithObserver(rec))
	e.Move(Left, false)
	rec.moves = nil

	e.Reset()

	if e.Score() != 0 {
		t.Errorf("Score() after Reset = %d, want 0", e.Score())
	}
	if e.Board().Count() != 0 {
		t.Errorf("Board after Reset has %d tiles, want 0", e.Board().Count())
	}
	if len(rec.moves) != 0 || len(rec.added) != 0 {
		t.Error("Reset() should not fire tile events")
	}
}

func TestEndToEndScenario(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if !e.Move(Left, false) {
		t.Fatal("Move(Left) should report a move")
	}

	want := [][]int{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if got := rowsOf(e); !equalRows(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	if e.Score() != 4 {
		t.Errorf("Score() = %d, want 4", e.Score())
	}
}

func TestLargerBoard(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 2, 2, 0, 2},
		{0, 0, 0, 0, 0},
		{4, 4, 8, 8, 16},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})

	e.Move(Left, false)

	want := [][]int{
		{4, 4, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{8, 16, 16, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}
	if got := rowsOf(e); !equalRows(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	if e.Score() != 4+4+8+16 {
		t.Errorf("Score() = %d, want %d", e.Score(), 4+4+8+16)
	}
}
