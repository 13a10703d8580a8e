// Package engine implements the sliding-tile board, move/merge rules, tile
// spawning and terminal-state detection.
//
// The package has no knowledge of rendering or input. Consumers observe
// per-tile effects through the Observer interface.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSize is the product board dimension.
const DefaultSize = 4

// Position addresses a board cell.
type Position struct {
	Row int
	Col int
}

// String returns "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Tile is a cell snapshot. Value 0 means the cell is empty.
type Tile struct {
	Pos   Position
	Value int
}

// IsEmpty reports whether the tile holds no value.
func (t Tile) IsEmpty() bool {
	return t.Value == 0
}

// Board is a square grid of tiles stored row-major.
// Occupied cells always hold a power of two >= 2.
type Board struct {
	size  int
	cells []int
}

// NewBoard returns an empty board of the given side length.
// Panics if size is not positive.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("engine: invalid board size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]int, size*size),
	}
}

// BoardFromRows builds a board from a square matrix of values.
// Unlike the engine operations it validates its input and returns an error,
// since rows usually come from outside the process (tests, storage, config).
func BoardFromRows(rows [][]int) (*Board, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("engine: empty board")
	}

	b := NewBoard(size)
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", r, len(row), size)
		}
		for c, v := range row {
			if v != 0 && !IsTileValue(v) {
				return nil, fmt.Errorf("engine: invalid tile value %d at (%d,%d)", v, r, c)
			}
			b.cells[r*size+c] = v
		}
	}
	return b, nil
}

// IsTileValue reports whether v is a legal tile value (a power of two >= 2).
func IsTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Clone returns a fully independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Size returns the side length.
func (b *Board) Size() int {
	return b.size
}

// Contains reports whether p lies on the board.
func (b *Board) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

func (b *Board) index(p Position) int {
	if !b.Contains(p) {
		panic(fmt.Sprintf("engine: position %s out of range for size %d", p, b.size))
	}
	return p.Row*b.size + p.Col
}

// Value returns the value at p (0 if empty). Panics if p is off the board.
func (b *Board) Value(p Position) int {
	return b.cells[b.index(p)]
}

// Tile returns the tile at p. Panics if p is off the board.
func (b *Board) Tile(p Position) Tile {
	return Tile{Pos: p, Value: b.Value(p)}
}

// IsEmpty reports whether the cell at p is empty.
func (b *Board) IsEmpty(p Position) bool {
	return b.Value(p) == 0
}

func (b *Board) set(p Position, v int) {
	b.cells[b.index(p)] = v
}

func (b *Board) clear() {
	for i := range b.cells {
		b.cells[i] = 0
	}
}

// Tiles returns every cell in row-major order, empty ones included.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, len(b.cells))
	for i, v := range b.cells {
		tiles = append(tiles, Tile{
			Pos:   Position{Row: i / b.size, Col: i % b.size},
			Value: v,
		})
	}
	return tiles
}

// Rows returns the board as a freshly allocated matrix.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for r := range b.size {
		rows[r] = make([]int, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b *Board) EmptyCells() []Position {
	var cells []Position
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Position{Row: i / b.size, Col: i % b.size})
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b *Board) HasEmptyCell() bool {
	for _, v := range b.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if any two orthogonal neighbours hold the
// same non-zero value.
func (b *Board) HasPossibleMerge() bool {
	n := b.size
	for r := range n {
		for c := range n {
			val := b.cells[r*n+c]
			if val == 0 {
				continue
			}
			if c < n-1 && b.cells[r*n+c+1] == val {
				return true
			}
			if r < n-1 && b.cells[(r+1)*n+c] == val {
				return true
			}
		}
	}
	return false
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	count := 0
	for _, v := range b.cells {
		if v != 0 {
			count++
		}
	}
	return count
}

// Sum returns the total of all tile values.
func (b *Board) Sum() int {
	sum := 0
	for _, v := range b.cells {
		sum += v
	}
	return sum
}

// MaxTile returns the maximum tile value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Equal reports whether both boards have the same size and cell values.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// String renders the board as right-aligned rows, '.' for empty cells.
func (b *Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	if width < 1 {
		width = 1
	}

	var sb strings.Builder
	for r := range b.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := b.cells[r*b.size+c]
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}
