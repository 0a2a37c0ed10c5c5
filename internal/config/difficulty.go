package config

import (
	"fmt"
	"strings"
)

// Preset returns the preset with the given name, matched case-insensitively.
func (c TetrisConfig) Preset(name string) (Preset, bool) {
	for _, p := range c.Difficulty.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultPreset returns the configured default, or the last (fastest) preset
// when no default is set.
func (c TetrisConfig) DefaultPreset() (Preset, bool) {
	if p, ok := c.Preset(c.Difficulty.Default); ok {
		return p, true
	}
	if n := len(c.Difficulty.Presets); n > 0 {
		return c.Difficulty.Presets[n-1], true
	}
	return Preset{}, false
}

// PresetNames lists the preset names in menu order.
func (c TetrisConfig) PresetNames() []string {
	names := make([]string, len(c.Difficulty.Presets))
	for i, p := range c.Difficulty.Presets {
		names[i] = p.Name
	}
	return names
}

// ApplyTetrisPreset sets the starting drop interval from a preset.
// An empty name selects the default preset. The gravity floor is lowered
// when a preset starts below it.
func ApplyTetrisPreset(cfg *TetrisConfig, name string) error {
	var (
		p  Preset
		ok bool
	)
	if name == "" {
		p, ok = cfg.DefaultPreset()
		if !ok {
			return nil
		}
	} else if p, ok = cfg.Preset(name); !ok {
		return fmt.Errorf("%w: unknown difficulty %q (have %s)", ErrInvalid, name, strings.Join(cfg.PresetNames(), ", "))
	}

	cfg.Speed.InitialDropIntervalMs = p.DropIntervalMs
	cfg.Speed.MinDropIntervalMs = min(cfg.Speed.MinDropIntervalMs, p.DropIntervalMs)
	return nil
}

// DisplayName returns the label, falling back to the name.
func (p Preset) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}
