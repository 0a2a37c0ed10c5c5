package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DifficultyModel lets the player pick a speed preset before a game.
type DifficultyModel struct {
	title     string
	presets   []config.Preset
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker over presets. The cursor starts on
// the preset named current, if present.
func NewDifficultyModel(title string, presets []config.Preset, current string, cfg core.RuntimeConfig) DifficultyModel {
	m := DifficultyModel{
		title:     title,
		presets:   presets,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, p := range presets {
		if strings.EqualFold(p.Name, current) {
			m.cursor = i
		}
	}
	return m
}

// Init implements tea.Model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = moveCursor(m.cursor, -1, len(m.presets))
	case MenuActionDown:
		m.cursor = moveCursor(m.cursor, 1, len(m.presets))
	case MenuActionSelect:
		if len(m.presets) > 0 {
			m.choosing = false
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	options := make([]string, len(m.presets))
	for i, p := range m.presets {
		options[i] = fmt.Sprintf("%-10s %4.0fms", p.DisplayName(), p.DropIntervalMs)
	}

	return pickList{
		title:   strings.ToUpper(m.title),
		prompt:  "Select speed:",
		options: options,
		cursor:  m.cursor,
		hint:    "Enter: Select  |  Esc: Back  |  Q: Quit",
	}.render(m.width)
}

// Selected returns the chosen preset, or nil if still choosing.
func (m DifficultyModel) Selected() *config.Preset {
	if m.choosing || len(m.presets) == 0 {
		return nil
	}
	p := m.presets[m.cursor]
	return &p
}

// IsChoosing returns true while no preset has been picked.
func (m DifficultyModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// Config returns the runtime config updated by resizes.
func (m DifficultyModel) Config() core.RuntimeConfig {
	return m.config
}

// RunDifficultySelector shows the picker and returns the choice. A nil
// preset means the player backed out or quit; quit reports which.
func RunDifficultySelector(title string, presets []config.Preset, current string, cfg core.RuntimeConfig) (preset *config.Preset, quit bool, _ core.RuntimeConfig, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, presets, current, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, cfg, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return nil, true, cfg, nil
	}
	if m.IsQuitting() || m.WantsBack() {
		return nil, m.IsQuitting(), m.Config(), nil
	}
	return m.Selected(), false, m.Config(), nil
}
