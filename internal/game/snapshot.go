package game

import "github.com/vovakirdan/ai2048/internal/engine"

// StateType is the coarse state of a session.
type StateType string

const (
	StatePlaying  StateType = "playing"
	StateGameOver StateType = "game_over"
)

// Snapshot captures the session state for tests and headless callers.
type Snapshot struct {
	Board        [][]int
	Score        int
	MaxTile      int
	Moves        int
	Intelligence int
	Autoplay     bool
	PlaceValue   int
	Cursor       engine.Position
	HasBackup    bool
	State        StateType
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	board := s.engine.Board()
	state := StatePlaying
	if s.engine.IsGameOver() {
		state = StateGameOver
	}

	return Snapshot{
		Board:        board.Rows(),
		Score:        s.engine.Score(),
		MaxTile:      board.MaxTile(),
		Moves:        s.moves,
		Intelligence: s.intelligence,
		Autoplay:     s.autoplay,
		PlaceValue:   s.PlaceValue(),
		Cursor:       s.cursor,
		HasBackup:    s.backup != nil,
		State:        state,
	}
}
