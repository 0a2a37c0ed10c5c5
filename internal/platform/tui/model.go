package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ScreenshotDir is where ctrl+s dumps are written, relative to $HOME.
const ScreenshotDir = ".tetris/screenshots"

// difficultyReporter is implemented by games that know their preset.
type difficultyReporter interface {
	Difficulty() config.Preset
}

// GameOptions tunes a GameModel.
type GameOptions struct {
	// ExitOnBack ends the program when the player leaves the game,
	// instead of flagging BackToMenu for an enclosing model.
	ExitOnBack bool
	Logger     *log.Logger
}

// GameModel runs one game inside Bubble Tea: it feeds keys into input
// frames, steps the game on every tick and records finished games.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	opts       GameOptions

	savedSession string // session whose result is already recorded
	quitting     bool
	backToMenu   bool
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		opts:       opts,
	}
}

// Init starts a session and the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.loadHighScore()
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving is only offered while nothing is in motion.
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.opts.ExitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the session running; games that care about the
// terminal size are told about it.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState.SessionID
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if prev != "" && prev != m.gameState.SessionID {
		// restarted: the last result may have raised the best score
		m.loadHighScore()
	}

	if m.gameState.GameOver && m.savedSession != m.gameState.SessionID {
		m.recordResult()
		m.savedSession = m.gameState.SessionID
	}

	return m, tickCmd(m.config.TickRate)
}

// recordResult stores the finished game. Failures are logged and play
// continues.
func (m *GameModel) recordResult() {
	st := m.gameState
	if m.store == nil || st.Score <= 0 {
		return
	}

	res := storage.Result{
		GameID:    m.game.ID(),
		Score:     st.Score,
		Lines:     st.Lines,
		Level:     st.Level,
		SessionID: st.SessionID,
	}
	if d, ok := m.game.(difficultyReporter); ok {
		res.Difficulty = d.Difficulty().Name
	}

	id, err := m.store.SaveScore(res)
	switch {
	case errors.Is(err, storage.ErrDuplicateSession):
		m.logger.Debug("result already recorded", "session", st.SessionID)
	case err != nil:
		m.logger.Warn("could not save score", "score", st.Score, "error", err)
	default:
		m.logger.Debug("score saved", "id", id, "score", st.Score, "lines", st.Lines)
	}
}

func (m *GameModel) loadHighScore() {
	hs, ok := m.game.(registry.HighScorer)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return
	}
	hs.SetHighScore(best)
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ScreenshotDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(screenText(m.screen)), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// screenText returns the screen as plain text with trailing blanks removed
// from every row.
func screenText(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the state after the latest tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal. It returns when the
// player quits or leaves the game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, GameOptions{ExitOnBack: true, Logger: logger})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
