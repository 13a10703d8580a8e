package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// Engine owns one board and the cumulative score.
// It is not safe for concurrent use.
type Engine struct {
	board      *Board
	score      int
	rng        *rand.Rand
	spawn4Prob float64
	observer   Observer

	// Scratch buffers reused across moves.
	line   []Position
	merged []bool
	events []moveEvent
}

type moveEvent struct {
	from  Position
	to    Position
	value int
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers the observer notified of tile events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithRand sets the random source used for spawning.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed seeds a dedicated PCG source for spawning.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// WithSpawn4Prob sets the probability (0..1) that a spawned tile is a 4.
func WithSpawn4Prob(p float64) Option {
	return func(e *Engine) {
		e.spawn4Prob = p
	}
}

// New creates an engine with an empty board of the given size.
func New(size int, opts ...Option) *Engine {
	return newEngine(NewBoard(size), opts)
}

// NewFromBoard creates an engine playing on a copy of board.
// The caller's board is never aliased.
func NewFromBoard(board *Board, opts ...Option) *Engine {
	return newEngine(board.Clone(), opts)
}

func newEngine(board *Board, opts []Option) *Engine {
	e := &Engine{
		board:      board,
		spawn4Prob: DefaultSpawn4Prob,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	n := board.Size()
	e.line = make([]Position, n)
	e.merged = make([]bool, n)
	e.events = make([]moveEvent, 0, n)
	return e
}

// Size returns the board side length.
func (e *Engine) Size() int {
	return e.board.Size()
}

// Score returns the cumulative score.
func (e *Engine) Score() int {
	return e.score
}

// Spawn4Prob returns the probability that a spawned tile is a 4.
func (e *Engine) Spawn4Prob() float64 {
	return e.spawn4Prob
}

// Board returns a snapshot of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Value returns the value at p without copying the board.
func (e *Engine) Value(p Position) int {
	return e.board.Value(p)
}

// Move slides every line toward dir, merging equal neighbours once per move.
// If anything changed and addRandom is set, one random tile is spawned.
// Returns whether any tile changed position or value.
// Panics if dir is not a valid direction.
func (e *Engine) Move(dir Direction, addRandom bool) bool {
	if !dir.Valid() {
		panic(fmt.Sprintf("engine: invalid direction %d", int(dir)))
	}

	moved := false
	for i := range e.board.Size() {
		e.fillLine(dir, i)
		if e.slideLine(dir) {
			moved = true
		}
	}

	if moved && addRandom {
		e.SpawnRandom()
	}
	return moved
}

// fillLine stores the positions of line i ordered from the target edge inward.
func (e *Engine) fillLine(dir Direction, i int) {
	n := e.board.Size()
	for k := range n {
		switch dir {
		case Left:
			e.line[k] = Position{Row: i, Col: k}
		case Right:
			e.line[k] = Position{Row: i, Col: n - 1 - k}
		case Up:
			e.line[k] = Position{Row: k, Col: i}
		case Down:
			e.line[k] = Position{Row: n - 1 - k, Col: i}
		}
	}
}

// slideLine compacts and merges e.line toward e.line[0] in place.
// Cells between write and read are always empty, so writing ahead of the
// read cursor never clobbers an unread tile.
func (e *Engine) slideLine(dir Direction) bool {
	b := e.board
	line := e.line
	merged := e.merged
	clear(merged)
	events := e.events[:0]

	write := 0
	for read, from := range line {
		v := b.Value(from)
		if v == 0 {
			continue
		}

		if write > 0 && !merged[write-1] && b.Value(line[write-1]) == v {
			// Merge into the tile ahead; it can't take another merge this move
			to := line[write-1]
			doubled := v * 2
			b.set(to, doubled)
			b.set(from, 0)
			merged[write-1] = true
			e.score += doubled
			events = append(events, moveEvent{from: from, to: to, value: doubled})
			continue
		}

		if write != read {
			to := line[write]
			b.set(to, v)
			b.set(from, 0)
			events = append(events, moveEvent{from: from, to: to, value: v})
		}
		write++
	}

	// Observers see a line in scan order: left to right, top to bottom.
	// Right and Down walk the line from the far end, so flip the buffer.
	if e.observer != nil {
		if dir == Right || dir == Down {
			slices.Reverse(events)
		}
		for _, ev := range events {
			e.observer.TileMoved(ev.from, ev.to, ev.value)
		}
	}

	e.events = events[:0]
	return len(events) > 0
}

// AddTile places value at p if and only if the cell is empty.
// Returns false when the cell is occupied.
// Panics if p is off the board or value is not a power of two >= 2.
func (e *Engine) AddTile(p Position, value int) bool {
	if !IsTileValue(value) {
		panic(fmt.Sprintf("engine: invalid tile value %d", value))
	}
	if !e.board.IsEmpty(p) {
		return false
	}

	e.board.set(p, value)
	if e.observer != nil {
		e.observer.TileAdded(p, value)
	}
	return true
}

// SpawnRandom adds a 2 (or a 4 with probability Spawn4Prob) to a uniformly
// chosen empty cell. Returns false if the board is full.
func (e *Engine) SpawnRandom() bool {
	cells := e.board.cells
	empty := 0
	for _, v := range cells {
		if v == 0 {
			empty++
		}
	}
	if empty == 0 {
		return false
	}

	// Pick the k-th empty cell in row-major order
	k := e.rng.IntN(empty)
	idx := -1
	for i, v := range cells {
		if v != 0 {
			continue
		}
		if k == 0 {
			idx = i
			break
		}
		k--
	}

	value := 2
	if e.rng.Float64() < e.spawn4Prob {
		value = 4
	}

	n := e.board.Size()
	return e.AddTile(Position{Row: idx / n, Col: idx % n}, value)
}

// IsGameOver reports whether the board is full and no neighbours can merge.
// It never mutates state.
func (e *Engine) IsGameOver() bool {
	return !e.board.HasEmptyCell() && !e.board.HasPossibleMerge()
}

// CanMove reports whether at least one direction would change the board.
func (e *Engine) CanMove() bool {
	return !e.IsGameOver()
}

// Reset clears the board and zeroes the score. No tile events are fired.
func (e *Engine) Reset() {
	e.board.clear()
	e.score = 0
}
