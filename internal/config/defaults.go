package config

import (
	_ "embed"
)

//go:embed defaults/ai2048.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size:       4,
			Spawn4Prob: 0.10,
		},
		Solver: SolverConfig{
			Intelligence: MaxIntelligence,
			Workers:      0,
			Seed:         0,
		},
		Autoplay: AutoplayConfig{
			DelayMS:            400,
			SpawnOnManualMove:  true,
			AutoRespond:        true,
			PlaceValueExponent: 0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
