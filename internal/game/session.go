// Package game runs one interactive 2048 session on top of the engine and
// the solver: manual and AI moves, autoplay state, a single backup board,
// manual tile placement and score notifications.
package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ai2048/internal/config"
	"github.com/vovakirdan/ai2048/internal/core"
	"github.com/vovakirdan/ai2048/internal/engine"
	"github.com/vovakirdan/ai2048/internal/solver"
)

// Strategy names recorded for finished sessions.
const (
	StrategyManual = "manual"
)

const (
	startTiles       = 2
	intelligenceStep = 5
)

// Options configures a Session.
type Options struct {
	Size              int
	Spawn4Prob        float64
	Intelligence      int
	Workers           int
	Seed              uint64 // 0 means random
	SpawnOnManualMove bool
	AutoRespond       bool
	PlaceExponent     int
	DelayMS           int
	Initial           *engine.Board // becomes the backup and the starting board
	Logger            *log.Logger
}

// OptionsFromConfig maps the loaded configuration to session options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Size:              cfg.Board.Size,
		Spawn4Prob:        cfg.Board.Spawn4Prob,
		Intelligence:      cfg.Solver.Intelligence,
		Workers:           cfg.Solver.Workers,
		Seed:              cfg.Solver.Seed,
		SpawnOnManualMove: cfg.Autoplay.SpawnOnManualMove,
		AutoRespond:       cfg.Autoplay.AutoRespond,
		PlaceExponent:     cfg.Autoplay.PlaceValueExponent,
		DelayMS:           cfg.Autoplay.DelayMS,
	}
}

// Session owns a live engine and its solver. It is not safe for concurrent
// use, except that Solver().AnalyzeBoard may run on another goroutine with a
// board taken from AIRequest.
type Session struct {
	opts   Options
	engine *engine.Engine
	solver *solver.Solver
	logger *log.Logger

	backup       *engine.Board
	autoplay     bool
	intelligence int
	placeExp     int
	delayMS      int
	cursor       engine.Position

	moves   int
	aiMoves int
	gen     uint64

	lastScore    int
	onScore      func(score int)
	lastAnalysis *solver.Analysis

	// Highlights for the most recent change
	before *engine.Board
	moved  map[engine.Position]bool
	merged map[engine.Position]bool
	added  map[engine.Position]bool
}

// New creates a session and deals the starting board: the Initial board if
// given, otherwise two random tiles.
func New(opts Options) *Session {
	if opts.Size < config.MinBoardSize {
		opts.Size = engine.DefaultSize
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	seeds := rand.New(rand.NewPCG(seed, 0))

	s := &Session{
		opts:   opts,
		logger: opts.Logger,
		moved:  make(map[engine.Position]bool),
		merged: make(map[engine.Position]bool),
		added:  make(map[engine.Position]bool),
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.engine = engine.New(opts.Size,
		engine.WithSeed(seeds.Uint64()),
		engine.WithSpawn4Prob(opts.Spawn4Prob),
		engine.WithObserver(engine.Hooks{
			OnTileMoved: s.tileMoved,
			OnTileAdded: s.tileAdded,
		}),
	)
	s.solver = solver.New(s.engine,
		solver.WithSeed(seeds.Uint64()),
		solver.WithWorkers(opts.Workers),
		solver.WithLogger(s.logger),
	)
	s.SetIntelligence(opts.Intelligence)
	s.SetPlaceExponent(opts.PlaceExponent)
	s.SetDelayMS(opts.DelayMS)

	if opts.Initial != nil {
		s.backup = opts.Initial.Clone()
	}
	s.Reset()
	return s
}

func (s *Session) tileMoved(from, to engine.Position, value int) {
	s.moved[to] = true
	if s.before != nil && s.before.Value(from) != value {
		s.merged[to] = true
	}
}

func (s *Session) tileAdded(at engine.Position, _ int) {
	s.added[at] = true
}

// beginChange clears the highlights of the previous change.
func (s *Session) beginChange() {
	s.before = s.engine.Board()
	clear(s.moved)
	clear(s.merged)
	clear(s.added)
}

// endChange fires the score hook when the score moved and stops autoplay
// once the game is over.
func (s *Session) endChange() {
	if score := s.engine.Score(); score != s.lastScore {
		s.lastScore = score
		s.fireScore()
	}
	if s.autoplay && s.engine.IsGameOver() {
		s.autoplay = false
		s.logger.Info("game over, autoplay stopped", "score", s.engine.Score(), "moves", s.moves)
	}
}

func (s *Session) fireScore() {
	if s.onScore != nil {
		s.onScore(s.lastScore)
	}
}

// OnScoreChanged registers the score callback. It fires after every change
// of the score and after every Reset.
func (s *Session) OnScoreChanged(fn func(score int)) {
	s.onScore = fn
}

// Move plays a manual move. It spawns a tile only when SpawnOnManualMove is
// set. Returns whether the board changed.
func (s *Session) Move(dir engine.Direction) bool {
	if s.engine.IsGameOver() {
		return false
	}
	s.beginChange()
	moved := s.engine.Move(dir, s.opts.SpawnOnManualMove)
	if moved {
		s.moves++
		s.gen++
	}
	s.endChange()
	return moved
}

// AIStep asks the solver for a move on the live board and plays it.
// Autoplay passes spawn=true; a one-off AI move passes spawn=false.
func (s *Session) AIStep(spawn bool) (engine.Direction, bool) {
	if s.engine.IsGameOver() {
		return engine.Up, false
	}
	a := s.solver.Analyze()
	moved := s.ApplyAnalysis(a, s.gen, spawn)
	return a.Best, moved
}

// AIRequest is a snapshot handed to the solver off the update loop.
type AIRequest struct {
	Board *engine.Board
	Score int
	Gen   uint64
}

// AIRequest snapshots the live board for an asynchronous search.
func (s *Session) AIRequest() AIRequest {
	return AIRequest{Board: s.engine.Board(), Score: s.engine.Score(), Gen: s.gen}
}

// ApplyAnalysis records a for display and plays its best move.
func (s *Session) ApplyAnalysis(a solver.Analysis, gen uint64, spawn bool) bool {
	if gen != s.gen {
		return false
	}
	s.lastAnalysis = &a
	return s.ApplyAIMove(a.Best, gen, spawn)
}

// ApplyAIMove plays dir if the session hasn't changed since generation gen.
// If dir doesn't change the board, the first direction in canonical order
// that does is played instead, so autoplay never stalls on a live board.
func (s *Session) ApplyAIMove(dir engine.Direction, gen uint64, spawn bool) bool {
	if gen != s.gen || s.engine.IsGameOver() {
		return false
	}

	s.beginChange()
	moved := s.engine.Move(dir, spawn)
	if !moved {
		for _, alt := range engine.Directions() {
			if s.engine.Move(alt, spawn) {
				s.logger.Debug("AI move had no effect, played fallback", "chosen", dir, "played", alt)
				moved = true
				break
			}
		}
	}
	if moved {
		s.moves++
		s.aiMoves++
		s.gen++
	}
	s.endChange()
	return moved
}

// Backup remembers a copy of the current board.
func (s *Session) Backup() {
	s.backup = s.engine.Board()
	s.logger.Debug("board backed up", "tiles", s.backup.Count())
}

// HasBackup reports whether a backup exists.
func (s *Session) HasBackup() bool {
	return s.backup != nil
}

// BackupBoard returns a copy of the backup, or nil.
func (s *Session) BackupBoard() *engine.Board {
	if s.backup == nil {
		return nil
	}
	return s.backup.Clone()
}

// Restore replaces the backup with board and resets onto it.
func (s *Session) Restore(board *engine.Board) {
	s.backup = board.Clone()
	s.Reset()
}

// Reset empties the board and zeroes the score, then replays the backup tile
// by tile. Without a backup it deals two random tiles. The score callback
// always fires.
func (s *Session) Reset() {
	s.beginChange()
	s.engine.Reset()

	if s.backup != nil && s.backup.Size() == s.engine.Size() {
		for _, t := range s.backup.Tiles() {
			if !t.IsEmpty() {
				s.engine.AddTile(t.Pos, t.Value)
			}
		}
	} else {
		for range startTiles {
			s.engine.SpawnRandom()
		}
	}

	s.moves = 0
	s.aiMoves = 0
	s.gen++
	s.lastAnalysis = nil
	s.lastScore = s.engine.Score()
	s.fireScore()
	s.endChange()
}

// PlaceTile puts a tile of PlaceValue on an empty cell. When AutoRespond is
// set and autoplay is off, the AI answers at once with one move without
// spawning. Interactive callers that search off-loop use AddTile and
// RespondsToPlacement instead.
func (s *Session) PlaceTile(pos engine.Position) bool {
	added := s.AddTile(pos)
	if added && s.RespondsToPlacement() {
		s.AIStep(false)
	}
	return added
}

// AddTile puts a tile of PlaceValue on an empty cell and nothing else.
// Returns false off the board or on an occupied cell.
func (s *Session) AddTile(pos engine.Position) bool {
	n := s.engine.Size()
	if pos.Row < 0 || pos.Row >= n || pos.Col < 0 || pos.Col >= n {
		return false
	}

	s.beginChange()
	added := s.engine.AddTile(pos, s.PlaceValue())
	if added {
		s.gen++
	}
	s.endChange()
	return added
}

// RespondsToPlacement reports whether a placed tile should get an AI answer.
func (s *Session) RespondsToPlacement() bool {
	return s.opts.AutoRespond && !s.autoplay && !s.engine.IsGameOver()
}

// SetPlaceExponent sets k where the placed value is 2^(k+1), clamped to 0..10.
func (s *Session) SetPlaceExponent(k int) {
	s.placeExp = core.Clamp(k, 0, config.MaxPlaceExponent)
}

// PlaceValue returns the value PlaceTile will place.
func (s *Session) PlaceValue() int {
	return 1 << (s.placeExp + 1)
}

// MoveCursor moves the placement cursor, staying on the board.
func (s *Session) MoveCursor(dRow, dCol int) {
	last := s.engine.Size() - 1
	s.cursor.Row = core.Clamp(s.cursor.Row+dRow, 0, last)
	s.cursor.Col = core.Clamp(s.cursor.Col+dCol, 0, last)
}

// Cursor returns the placement cursor.
func (s *Session) Cursor() engine.Position {
	return s.cursor
}

// SetIntelligence sets the solver budget, clamped to 0..100.
func (s *Session) SetIntelligence(v int) {
	s.intelligence = core.Clamp(v, 0, config.MaxIntelligence)
	s.solver.SetIntelligence(s.intelligence)
}

// Intelligence returns the solver budget.
func (s *Session) Intelligence() int {
	return s.intelligence
}

// SetDelayMS sets the autoplay delay, clamped to 0..1000ms.
func (s *Session) SetDelayMS(ms int) {
	s.delayMS = core.Clamp(ms, 0, config.MaxAutoplayDelayMS)
}

// Delay returns the pause between autoplay moves.
func (s *Session) Delay() time.Duration {
	return time.Duration(s.delayMS) * time.Millisecond
}

// ToggleAutoplay flips autoplay and returns the new state. Autoplay can't
// start on a finished game.
func (s *Session) ToggleAutoplay() bool {
	s.SetAutoplay(!s.autoplay)
	return s.autoplay
}

// SetAutoplay turns autoplay on or off.
func (s *Session) SetAutoplay(on bool) {
	if on && s.engine.IsGameOver() {
		on = false
	}
	if on != s.autoplay {
		s.gen++ // drop any search started under the old mode
	}
	s.autoplay = on
}

// Autoplay reports whether the AI is driving.
func (s *Session) Autoplay() bool {
	return s.autoplay
}

// Step applies one frame of semantic input. The AI moves it triggers run
// synchronously on the caller's goroutine.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Empty() {
		return core.StepResult{State: s.State()}
	}
	moved := false

	switch {
	case in.Has(core.ActionMoveUp):
		moved = s.Move(engine.Up)
	case in.Has(core.ActionMoveDown):
		moved = s.Move(engine.Down)
	case in.Has(core.ActionMoveLeft):
		moved = s.Move(engine.Left)
	case in.Has(core.ActionMoveRight):
		moved = s.Move(engine.Right)
	case in.Has(core.ActionAIOnce):
		_, moved = s.AIStep(false)
	case in.Has(core.ActionPlace):
		moved = s.PlaceTile(s.cursor)
	}

	if in.Has(core.ActionToggleAutoplay) {
		s.ToggleAutoplay()
	}
	if in.Has(core.ActionBackup) {
		s.Backup()
	}
	if in.Has(core.ActionRestart) {
		s.Reset()
	}
	if in.Has(core.ActionSmarter) {
		s.SetIntelligence(s.intelligence + intelligenceStep)
	}
	if in.Has(core.ActionDumber) {
		s.SetIntelligence(s.intelligence - intelligenceStep)
	}
	if in.Has(core.ActionValueUp) {
		s.SetPlaceExponent(s.placeExp + 1)
	}
	if in.Has(core.ActionValueDown) {
		s.SetPlaceExponent(s.placeExp - 1)
	}
	if in.Has(core.ActionSlower) {
		s.SetDelayMS(s.delayMS + config.AutoplayDelayStepMS)
	}
	if in.Has(core.ActionFaster) {
		s.SetDelayMS(s.delayMS - config.AutoplayDelayStepMS)
	}
	if in.Has(core.ActionCursorUp) {
		s.MoveCursor(-1, 0)
	}
	if in.Has(core.ActionCursorDown) {
		s.MoveCursor(1, 0)
	}
	if in.Has(core.ActionCursorLeft) {
		s.MoveCursor(0, -1)
	}
	if in.Has(core.ActionCursorRight) {
		s.MoveCursor(0, 1)
	}

	return core.StepResult{State: s.State(), Moved: moved}
}

// State returns the platform-visible state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.engine.Score(),
		GameOver: s.engine.IsGameOver(),
		Autoplay: s.autoplay,
	}
}

// Board returns a copy of the live board.
func (s *Session) Board() *engine.Board {
	return s.engine.Board()
}

// Score returns the live score.
func (s *Session) Score() int {
	return s.engine.Score()
}

// IsGameOver reports whether no move is possible.
func (s *Session) IsGameOver() bool {
	return s.engine.IsGameOver()
}

// Moves returns the number of effective moves since the last reset.
func (s *Session) Moves() int {
	return s.moves
}

// Generation changes whenever the board or the autoplay mode changes.
func (s *Session) Generation() uint64 {
	return s.gen
}

// Solver returns the session's solver.
func (s *Session) Solver() *solver.Solver {
	return s.solver
}

// LastAnalysis returns the most recent AI decision, or nil.
func (s *Session) LastAnalysis() *solver.Analysis {
	return s.lastAnalysis
}

// Strategy names who played this game for run storage: the solver if it
// made any move, otherwise manual.
func (s *Session) Strategy() string {
	if s.aiMoves > 0 {
		return solver.MonteCarloID
	}
	return StrategyManual
}
