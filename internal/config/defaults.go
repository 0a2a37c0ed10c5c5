package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hard-coded configuration used when no
// YAML source can be read.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  12,
			Height: 20,
		},
		Speed: SpeedConfig{
			InitialDropIntervalMs: 100,
			MinDropIntervalMs:     50,
			LinesPerLevel:         10,
			SpeedFactor:           0.9,
		},
		Scoring: ScoringConfig{
			LineBase: 10,
		},
		Randomizer: "uniform",
		Difficulty: DifficultyConfig{
			Default: "extreme",
			Presets: []Preset{
				{Name: "easy", Label: "Easy", DropIntervalMs: 800},
				{Name: "normal", Label: "Normal", DropIntervalMs: 400},
				{Name: "hard", Label: "Hard", DropIntervalMs: 200},
				{Name: "extreme", Label: "Extreme", DropIntervalMs: 100},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
