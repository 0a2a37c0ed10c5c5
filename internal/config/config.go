// Package config loads the YAML game configuration and resolves the
// difficulty presets shown before play.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// TetrisConfig contains all tunable settings of the game.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Speed      SpeedConfig      `yaml:"speed"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Randomizer string           `yaml:"randomizer"` // "uniform" or "bag"
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the well size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines gravity and its progression.
type SpeedConfig struct {
	InitialDropIntervalMs float64 `yaml:"initial_drop_interval_ms"`
	MinDropIntervalMs     float64 `yaml:"min_drop_interval_ms"`
	LinesPerLevel         int     `yaml:"lines_per_level"`
	SpeedFactor           float64 `yaml:"speed_factor"` // interval multiplier per level
}

// ScoringConfig defines line clear points.
type ScoringConfig struct {
	LineBase int `yaml:"line_base"` // first row of a sweep, doubled for each extra row
}

// DifficultyConfig lists the selectable starting speeds.
type DifficultyConfig struct {
	Default string   `yaml:"default"`
	Presets []Preset `yaml:"presets"`
}

// Preset is a named starting drop interval.
type Preset struct {
	Name           string  `yaml:"name"`
	Label          string  `yaml:"label"`
	DropIntervalMs float64 `yaml:"drop_interval_ms"`
}

// Validate rejects settings the engine cannot run with.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 4 || c.Board.Height < 4:
		return fmt.Errorf("%w: board %dx%d, need at least 4x4", ErrInvalid, c.Board.Width, c.Board.Height)
	case !positive(c.Speed.InitialDropIntervalMs):
		return fmt.Errorf("%w: initial_drop_interval_ms must be positive", ErrInvalid)
	case !positive(c.Speed.MinDropIntervalMs):
		return fmt.Errorf("%w: min_drop_interval_ms must be positive", ErrInvalid)
	case c.Speed.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines_per_level must be positive", ErrInvalid)
	case !positive(c.Speed.SpeedFactor) || c.Speed.SpeedFactor > 1:
		return fmt.Errorf("%w: speed_factor must be in (0, 1]", ErrInvalid)
	case c.Scoring.LineBase < 0:
		return fmt.Errorf("%w: line_base must not be negative", ErrInvalid)
	}

	switch c.Randomizer {
	case "", "uniform", "bag":
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalid, c.Randomizer)
	}

	seen := make(map[string]bool, len(c.Difficulty.Presets))
	for _, p := range c.Difficulty.Presets {
		if p.Name == "" {
			return fmt.Errorf("%w: difficulty preset without a name", ErrInvalid)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate difficulty preset %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
		if !positive(p.DropIntervalMs) {
			return fmt.Errorf("%w: preset %q drop_interval_ms must be positive", ErrInvalid, p.Name)
		}
	}
	// A preset replaces the starting interval and lowers the floor to match,
	// so the base pair only has to be ordered when there are no presets.
	if len(c.Difficulty.Presets) == 0 && c.Speed.MinDropIntervalMs > c.Speed.InitialDropIntervalMs {
		return fmt.Errorf("%w: min_drop_interval_ms %v exceeds initial_drop_interval_ms %v",
			ErrInvalid, c.Speed.MinDropIntervalMs, c.Speed.InitialDropIntervalMs)
	}
	if c.Difficulty.Default != "" && !seen[c.Difficulty.Default] {
		return fmt.Errorf("%w: default difficulty %q is not a preset", ErrInvalid, c.Difficulty.Default)
	}
	return nil
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
