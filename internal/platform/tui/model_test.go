package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fakeGame returns whatever state the test sets and records its input.
type fakeGame struct {
	state     core.GameState
	inputs    []core.InputFrame
	resets    int
	highScore int
	w, h      int
}

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState        { return g.state }
func (g *fakeGame) SetHighScore(score int)       { g.highScore = score }
func (g *fakeGame) Resize(w, h int)              { g.w, g.h = w, h }

func (g *fakeGame) Difficulty() config.Preset {
	return config.Preset{Name: "hard"}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newModel(g *fakeGame, store *storage.Store, opts GameOptions) GameModel {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	return NewGameModel(g, store, cfg, opts)
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelInit(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(storage.Result{GameID: "fake", Score: 420}); err != nil {
		t.Fatal(err)
	}

	g := &fakeGame{}
	m := newModel(g, store, GameOptions{})
	if cmd := m.Init(); cmd == nil {
		t.Error("Init must start the tick loop")
	}

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if g.highScore != 420 {
		t.Errorf("high score = %d, want 420", g.highScore)
	}
}

func TestGameModelKeysReachStep(t *testing.T) {
	g := &fakeGame{}
	m := newModel(g, nil, GameOptions{})

	m, _ = send(t, m, keyRune('a'))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := send(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick must schedule the next tick")
	}

	if len(g.inputs) != 1 {
		t.Fatalf("steps = %d, want 1", len(g.inputs))
	}
	in := g.inputs[0]
	if !in.Has(core.ActionLeft) || !in.Has(core.ActionHardDrop) {
		t.Errorf("input = %v", in.Actions)
	}

	// input is consumed by the tick
	send(t, m, TickMsg{})
	if !g.inputs[1].Empty() {
		t.Errorf("second frame should be empty, got %v", g.inputs[1].Actions)
	}
}

func TestGameModelSavesOncePerSession(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{Score: 300, Lines: 4, Level: 1, SessionID: "s1", GameOver: true}}
	m := newModel(g, store, GameOptions{})

	for range 5 {
		m, _ = send(t, m, TickMsg{})
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d rows, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 300 || got.Lines != 4 || got.Level != 1 || got.Difficulty != "hard" || got.SessionID != "s1" {
		t.Errorf("saved %+v", got)
	}

	// restart and lose again
	g.state = core.GameState{Score: 10, SessionID: "s2"}
	m, _ = send(t, m, TickMsg{})
	if g.highScore != 300 {
		t.Errorf("best after restart = %d, want 300", g.highScore)
	}
	g.state.GameOver = true
	send(t, m, TickMsg{})

	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d rows, want 2", len(scores))
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{SessionID: "s1", GameOver: true}}
	m := newModel(g, store, GameOptions{})
	send(t, m, TickMsg{})

	if best, _ := store.HighScore("fake"); best != 0 {
		t.Errorf("zero score was saved: best = %d", best)
	}
}

func TestGameModelWithoutStore(t *testing.T) {
	g := &fakeGame{state: core.GameState{Score: 50, SessionID: "s1", GameOver: true}}
	m := newModel(g, nil, GameOptions{})
	m.Init()
	m, _ = send(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Error("state not mirrored")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newModel(&fakeGame{}, nil, GameOptions{})
	m, cmd := send(t, m, keyRune('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q must quit")
	}
	if m.View() != "" {
		t.Error("view must be empty after quit")
	}
}

func TestGameModelBack(t *testing.T) {
	g := &fakeGame{}
	m := newModel(g, nil, GameOptions{})

	m, _ = send(t, m, keyRune('b'))
	if m.BackToMenu() {
		t.Fatal("back must be ignored while playing")
	}

	g.state.Paused = true
	m, _ = send(t, m, TickMsg{})
	m, cmd := send(t, m, keyRune('b'))
	if !m.BackToMenu() {
		t.Error("back while paused must leave the game")
	}
	if cmd != nil {
		t.Error("embedded model must not quit the program")
	}
}

func TestGameModelBackExits(t *testing.T) {
	g := &fakeGame{state: core.GameState{GameOver: true}}
	m := newModel(g, nil, GameOptions{ExitOnBack: true})
	m, _ = send(t, m, TickMsg{})

	m, cmd := send(t, m, keyRune('b'))
	if !m.BackToMenu() || cmd == nil {
		t.Error("standalone model must quit on back")
	}
}

func TestGameModelResize(t *testing.T) {
	g := &fakeGame{}
	m := newModel(g, nil, GameOptions{})
	m.Init()

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.w != 100 || g.h != 40 {
		t.Errorf("game saw %dx%d", g.w, g.h)
	}
	if g.resets != 1 {
		t.Errorf("resize must not restart the game, resets = %d", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelView(t *testing.T) {
	m := newModel(&fakeGame{}, nil, GameOptions{})
	if v := m.View(); len(v) == 0 {
		t.Error("empty view")
	}
}

func TestGameModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := newModel(&fakeGame{}, nil, GameOptions{})
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(home, ScreenshotDir, "fake_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v (err %v), want one file", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 24 {
		t.Errorf("lines = %d, want 24", len(lines))
	}
	if lines[0] != "fake" {
		t.Errorf("first line = %q, want %q", lines[0], "fake")
	}
	for i, l := range lines[1:] {
		if l != "" {
			t.Errorf("line %d = %q, want trailing blanks trimmed", i+1, l)
		}
	}
}
