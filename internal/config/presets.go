package config

import "fmt"

// IntelligencePreset represents a named solver budget.
type IntelligencePreset string

const (
	PresetOff    IntelligencePreset = "off"
	PresetLow    IntelligencePreset = "low"
	PresetNormal IntelligencePreset = "normal"
	PresetHigh   IntelligencePreset = "high"
)

// Presets lists the presets in increasing order.
func Presets() []IntelligencePreset {
	return []IntelligencePreset{PresetOff, PresetLow, PresetNormal, PresetHigh}
}

// IntelligenceForPreset returns the intelligence for a preset.
func IntelligenceForPreset(preset IntelligencePreset) (int, error) {
	switch preset {
	case PresetOff:
		return 0, nil
	case PresetLow:
		return 25, nil
	case PresetNormal:
		return 50, nil
	case PresetHigh:
		return MaxIntelligence, nil
	default:
		return 0, fmt.Errorf("config: unknown preset %q: %w", preset, ErrInvalid)
	}
}

// ApplyPreset sets the solver intelligence from a preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset IntelligencePreset) error {
	if preset == "" {
		return nil
	}
	v, err := IntelligenceForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Solver.Intelligence = v
	return nil
}
