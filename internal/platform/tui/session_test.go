package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newSession(store *storage.Store) SessionModel {
	cfg := config.DefaultTetrisConfig()
	return NewSessionModel(store, testRuntime(), SessionOptions{
		Presets: cfg.Difficulty.Presets,
		Preset:  "normal",
	})
}

func step(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	view := m.View()
	for _, title := range []string{"Tetris++", "Tetris (Classic)"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu missing %q", title)
		}
	}
}

func TestMenuShowsBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(storage.Result{GameID: "tetris_classic", Score: 1234}); err != nil {
		t.Fatal(err)
	}
	m := NewMenuModel(store, testRuntime())
	if !strings.Contains(m.View(), "best 1234") {
		t.Error("menu should show stored best score")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	next, _ := m.Update(keyType(tea.KeyUp))
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor)
	}

	next, _ = m.Update(keyType(tea.KeyDown))
	m = next.(MenuModel)
	next, cmd := m.Update(keyType(tea.KeyEnter))
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().GameID != "tetris_classic" {
		t.Fatalf("selected %+v", m.Selected())
	}
	if cmd == nil {
		t.Error("selection must end the menu program")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	next, _ := m.Update(keyType(tea.KeyTab))
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab must open the scoreboard")
	}

	next, _ = m.Update(keyRune('q'))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q must quit")
	}
}

func TestDifficultyModel(t *testing.T) {
	presets := config.DefaultTetrisConfig().Difficulty.Presets
	m := NewDifficultyModel("Tetris++", presets, "hard", testRuntime())

	if !strings.Contains(m.View(), "TETRIS++") {
		t.Error("title missing")
	}

	next, _ := m.Update(keyType(tea.KeyUp))
	m = next.(DifficultyModel)
	if m.Selected() != nil {
		t.Fatal("nothing picked yet")
	}
	next, _ = m.Update(keyType(tea.KeyEnter))
	m = next.(DifficultyModel)

	got := m.Selected()
	if got == nil || got.Name != "normal" {
		t.Errorf("picked %+v, want normal", got)
	}
}

func TestDifficultyBack(t *testing.T) {
	m := NewDifficultyModel("x", config.DefaultTetrisConfig().Difficulty.Presets, "", testRuntime())
	next, _ := m.Update(keyType(tea.KeyEsc))
	m = next.(DifficultyModel)
	if !m.WantsBack() || m.Selected() != nil {
		t.Error("esc must back out without a pick")
	}
}

func TestSessionFlow(t *testing.T) {
	m := newSession(openStore(t))

	m, _ = step(t, m, keyType(tea.KeyEnter))
	if m.view != viewDifficulty {
		t.Fatalf("view = %v, want difficulty", m.view)
	}

	m, cmd := step(t, m, keyType(tea.KeyEnter))
	if m.view != viewGame {
		t.Fatalf("view = %v, want game", m.view)
	}
	if cmd == nil {
		t.Error("game must start ticking")
	}
	if m.opts.Preset != "normal" {
		t.Errorf("preset = %q", m.opts.Preset)
	}
	if !strings.Contains(m.View(), "Normal") {
		t.Error("game view should show the chosen speed")
	}

	// leaving needs a pause first
	m, _ = step(t, m, keyRune('p'))
	m, _ = step(t, m, TickMsg{})
	if !m.gameModel.State().Paused {
		t.Fatal("game should be paused")
	}
	m, _ = step(t, m, keyRune('b'))
	if m.view != viewMenu {
		t.Errorf("view = %v, want menu", m.view)
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newSession(nil)

	m, _ = step(t, m, keyType(tea.KeyTab))
	if m.view != viewScoreboard {
		t.Fatalf("view = %v, want scoreboard", m.view)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard title missing")
	}

	m, cmd := step(t, m, keyType(tea.KeyEsc))
	if m.view != viewMenu || m.quitting {
		t.Errorf("esc should return to menu, view = %v", m.view)
	}
	if cmd != nil {
		t.Error("returning to the menu must not end the session")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newSession(nil)
	m, cmd := step(t, m, keyRune('q'))
	if !m.quitting || cmd == nil {
		t.Error("q must end the session")
	}
	if m.View() != "" {
		t.Error("view must be empty after quit")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := newSession(nil)
	m, _ = step(t, m, keyType(tea.KeyEnter))
	m, _ = step(t, m, keyType(tea.KeyEnter))

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "too small") {
		t.Error("tiny window should show the size warning")
	}
	if m.config.ScreenW != 20 {
		t.Errorf("session config width = %d", m.config.ScreenW)
	}
}
