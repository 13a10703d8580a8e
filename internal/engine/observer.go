package engine

// Observer receives per-tile effects of engine operations.
// The engine never owns its observer and never depends on how it renders.
type Observer interface {
	// TileMoved is called once per relocated tile, in line-scan order.
	// For a merge, value is the doubled value now sitting at to.
	TileMoved(from, to Position, value int)

	// TileAdded is called once per spawned or manually placed tile.
	TileAdded(at Position, value int)
}

// Hooks adapts plain callbacks to Observer. Nil fields are ignored.
//
// OnScoreChanged is not called by the engine; callers fire it after reading
// Engine.Score.
type Hooks struct {
	OnTileMoved    func(from, to Position, value int)
	OnTileAdded    func(at Position, value int)
	OnScoreChanged func(score int)
}

// TileMoved implements Observer.
func (h Hooks) TileMoved(from, to Position, value int) {
	if h.OnTileMoved != nil {
		h.OnTileMoved(from, to, value)
	}
}

// TileAdded implements Observer.
func (h Hooks) TileAdded(at Position, value int) {
	if h.OnTileAdded != nil {
		h.OnTileAdded(at, value)
	}
}

// ScoreChanged forwards to OnScoreChanged if set.
func (h Hooks) ScoreChanged(score int) {
	if h.OnScoreChanged != nil {
		h.OnScoreChanged(score)
	}
}

var _ Observer = Hooks{}
