// Package tetris adapts the falling-block engine to the arcade platform:
// it turns per-frame input into engine commands, frame time into gravity
// ticks, and engine snapshots into screen cells.
package tetris

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant describes one registered flavor of the game.
type Variant struct {
	ID    string
	Title string
	Width int // 0 keeps the configured board width
}

var (
	// Plus is the 12-wide board with the fast default gravity.
	Plus = Variant{ID: "tetris", Title: "Tetris++"}
	// Classic is the standard 10-wide well.
	Classic = Variant{ID: "tetris_classic", Title: "Tetris (Classic)", Width: 10}
)

var (
	defaultsMu        sync.RWMutex
	defaultConfigPath string
	defaultDifficulty string
)

// SetConfigPath sets the config file used by games that were not
// configured explicitly.
func SetConfigPath(path string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultConfigPath = path
}

// SetDifficultyPreset sets the difficulty used by games that were not
// configured explicitly.
func SetDifficultyPreset(preset string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultDifficulty = preset
}

func defaults() (string, string) {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultConfigPath, defaultDifficulty
}

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	variant Variant

	cfg        config.TetrisConfig
	difficulty config.Preset
	configured bool

	eng  *engine.Engine
	snap engine.Snapshot
	rng  *rand.Rand

	runtime   core.RuntimeConfig
	frameMs   float64
	paused    bool
	tooSmall  bool
	highScore int
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range []Variant{Plus, Classic} {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Configure loads the config file and selects a difficulty preset.
// Empty arguments select the default search path and default preset.
func (g *Game) Configure(configPath, difficulty string) error {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyTetrisPreset(&cfg, difficulty); err != nil {
		return err
	}
	if g.variant.Width > 0 {
		cfg.Board.Width = g.variant.Width
	}

	g.cfg = cfg
	if difficulty == "" {
		g.difficulty, _ = cfg.DefaultPreset()
	} else {
		g.difficulty, _ = cfg.Preset(difficulty)
	}
	g.configured = true
	return nil
}

// SetHighScore sets the stored best score shown on the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// Difficulty returns the selected preset.
func (g *Game) Difficulty() config.Preset {
	return g.difficulty
}

// Reset starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.configured {
		path, preset := defaults()
		if err := g.Configure(path, preset); err != nil {
			log.Warn("tetris config rejected, using defaults", "game", g.variant.ID, "error", err)
			g.useDefaults()
		}
	}

	g.runtime = runtime
	g.frameMs = runtime.FrameMillis()
	g.paused = false

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	eng, err := engine.New(engineConfig(g.cfg), g.rng)
	if err != nil {
		log.Warn("tetris engine rejected config, using defaults", "game", g.variant.ID, "error", err)
		g.useDefaults()
		eng, err = engine.New(engineConfig(g.cfg), g.rng)
		if err != nil {
			// the built-in settings always validate
			panic(err)
		}
	}
	g.eng = eng
	g.snap = eng.Snapshot()
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// useDefaults replaces the loaded settings with the built-in ones, keeping
// the variant's board width.
func (g *Game) useDefaults() {
	g.cfg = config.DefaultTetrisConfig()
	_ = config.ApplyTetrisPreset(&g.cfg, "")
	if g.variant.Width > 0 {
		g.cfg.Board.Width = g.variant.Width
	}
	g.difficulty, _ = g.cfg.DefaultPreset()
	g.configured = true
}

// engineConfig converts the YAML settings to engine parameters.
func engineConfig(c config.TetrisConfig) engine.Config {
	return engine.Config{
		Width:                 c.Board.Width,
		Height:                c.Board.Height,
		InitialDropIntervalMs: c.Speed.InitialDropIntervalMs,
		MinDropIntervalMs:     c.Speed.MinDropIntervalMs,
		LinesPerLevel:         c.Speed.LinesPerLevel,
		SpeedFactor:           c.Speed.SpeedFactor,
		LineBase:              c.Scoring.LineBase,
		Randomizer:            engine.RandomizerKind(c.Randomizer),
	}
}

// Resize records the new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	minW, minH := layoutSize(g.snap.Width, g.snap.Height)
	g.tooSmall = w < minW || h < minH
}

// inputOrder is the order in which simultaneous actions reach the engine.
var inputOrder = []struct {
	action core.Action
	cmd    engine.Command
}{
	{core.ActionLeft, engine.MoveLeft()},
	{core.ActionRight, engine.MoveRight()},
	{core.ActionRotateCW, engine.RotateCW()},
	{core.ActionRotateCCW, engine.RotateCCW()},
	{core.ActionSoftDrop, engine.Drop()},
	{core.ActionHardDrop, engine.HardDrop()},
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) && g.snap.GameOver {
		next := g.runtime
		next.Seed = g.rng.Int63()
		g.Reset(next)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.snap.GameOver {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.snap.GameOver {
		return core.StepResult{State: g.State()}
	}

	linesBefore := g.snap.Lines
	for _, m := range inputOrder {
		if in.Has(m.action) {
			// the commands above are always well-formed
			g.snap, _ = g.eng.Apply(m.cmd)
		}
	}
	g.snap, _ = g.eng.Tick(g.frameMs)

	return core.StepResult{
		State:   g.State(),
		Cleared: g.snap.Lines - linesBefore,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.snap.Score,
		Lines:     g.snap.Lines,
		Level:     g.snap.Level,
		SessionID: g.snap.SessionID,
		GameOver:  g.snap.GameOver,
		Paused:    g.paused,
	}
}

// Snapshot returns the latest engine snapshot.
func (g *Game) Snapshot() engine.Snapshot {
	return g.snap
}

// best returns the high score including the running game.
func (g *Game) best() int {
	return max(g.highScore, g.snap.Score)
}
