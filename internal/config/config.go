// Package config provides YAML-based configuration loading and intelligence
// presets for the board, the solver and autoplay.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Limits shared by validation and the UI.
const (
	MinBoardSize        = 2
	MaxIntelligence     = 100
	MaxPlaceExponent    = 10
	MaxAutoplayDelayMS  = 1000
	AutoplayDelayStepMS = 100
)

// Config contains all configuration for ai2048.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Solver   SolverConfig   `yaml:"solver"`
	Autoplay AutoplayConfig `yaml:"autoplay"`
}

// BoardConfig defines the grid and spawning parameters.
type BoardConfig struct {
	Size       int     `yaml:"size"`
	Spawn4Prob float64 `yaml:"spawn4_prob"` // chance a spawned tile is a 4
}

// SolverConfig defines the Monte Carlo budget.
type SolverConfig struct {
	Intelligence int    `yaml:"intelligence"` // 0..100
	Workers      int    `yaml:"workers"`      // 0 = one per CPU
	Seed         uint64 `yaml:"seed"`         // 0 = random
}

// AutoplayConfig defines interactive session behaviour.
type AutoplayConfig struct {
	DelayMS            int  `yaml:"delay_ms"`
	SpawnOnManualMove  bool `yaml:"spawn_on_manual_move"`
	AutoRespond        bool `yaml:"auto_respond"`         // AI answers a manually placed tile
	PlaceValueExponent int  `yaml:"place_value_exponent"` // placed value is 2^(k+1)
}

// Delay returns the pause between autoplay moves.
func (a AutoplayConfig) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// Validate checks every field and returns an error wrapping ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.Board.Size < MinBoardSize:
		return fmt.Errorf("config: board.size %d is below %d: %w", c.Board.Size, MinBoardSize, ErrInvalid)
	case c.Board.Spawn4Prob < 0 || c.Board.Spawn4Prob > 1:
		return fmt.Errorf("config: board.spawn4_prob %v is outside [0, 1]: %w", c.Board.Spawn4Prob, ErrInvalid)
	case c.Solver.Intelligence < 0 || c.Solver.Intelligence > MaxIntelligence:
		return fmt.Errorf("config: solver.intelligence %d is outside 0..%d: %w", c.Solver.Intelligence, MaxIntelligence, ErrInvalid)
	case c.Solver.Workers < 0:
		return fmt.Errorf("config: solver.workers %d is negative: %w", c.Solver.Workers, ErrInvalid)
	case c.Autoplay.DelayMS < 0 || c.Autoplay.DelayMS > MaxAutoplayDelayMS:
		return fmt.Errorf("config: autoplay.delay_ms %d is outside 0..%d: %w", c.Autoplay.DelayMS, MaxAutoplayDelayMS, ErrInvalid)
	case c.Autoplay.PlaceValueExponent < 0 || c.Autoplay.PlaceValueExponent > MaxPlaceExponent:
		return fmt.Errorf("config: autoplay.place_value_exponent %d is outside 0..%d: %w", c.Autoplay.PlaceValueExponent, MaxPlaceExponent, ErrInvalid)
	}
	return nil
}
