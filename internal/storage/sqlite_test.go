package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Result) int64 {
	t.Helper()
	id, err := store.SaveScore(r)
	if err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", r, err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Result{GameID: "tetris", Score: 70})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 70 {
		t.Errorf("Expected persisted high score 70, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", Score: 100, Lines: 4, Level: 1, Difficulty: "extreme", SessionID: "a"})
	mustSave(t, store, Result{GameID: "tetris", Score: 30, Lines: 2, Level: 1, SessionID: "b"})
	mustSave(t, store, Result{GameID: "tetris", Score: 460, Lines: 12, Level: 2, SessionID: "c"})
	mustSave(t, store, Result{GameID: "tetris_classic", Score: 500, Lines: 10, Level: 2})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 460 || scores[1].Score != 100 || scores[2].Score != 30 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}

	best := scores[0]
	if best.Lines != 12 || best.Level != 2 || best.SessionID != "c" || best.GameID != "tetris" {
		t.Errorf("Top entry fields not stored: %+v", best)
	}
	if scores[1].Difficulty != "extreme" {
		t.Errorf("Difficulty not stored: %+v", scores[1])
	}
	if best.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
	if time.Since(best.CreatedAt) > 24*time.Hour {
		t.Errorf("CreatedAt = %v, expected a recent timestamp", best.CreatedAt)
	}

	classic, err := store.TopScores("tetris_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, Result{GameID: "tetris", Score: (i + 1) * 10})
	}

	scores, err := store.TopScores("tetris", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("tetris", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Non-positive limit should use the default, got %d rows", len(all))
	}
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, Result{GameID: "tetris", Score: 70, SessionID: "first"})
	mustSave(t, store, Result{GameID: "tetris", Score: 70, SessionID: "second"})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].ID != first {
		t.Errorf("Earlier game should win a tie, got %+v", scores[0])
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, Result{GameID: "tetris", Score: 10})
	mustSave(t, store, Result{GameID: "tetris", Score: 150})
	mustSave(t, store, Result{GameID: "tetris", Score: 70})

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 150 {
		t.Errorf("Expected high score of 150, got %d", high)
	}
}

func TestStoreRejectsNonPositiveScore(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{0, -10} {
		_, err := store.SaveScore(Result{GameID: "tetris", Score: score})
		if !errors.Is(err, ErrNotPositive) {
			t.Errorf("SaveScore(%d) error = %v, expected ErrNotPositive", score, err)
		}
	}

	if _, err := store.SaveScore(Result{Score: 10}); err == nil {
		t.Error("SaveScore() without a game id should fail")
	}

	scores, _ := store.TopScores("tetris", 10)
	if len(scores) != 0 {
		t.Errorf("Rejected scores must not be stored, got %d rows", len(scores))
	}
}

func TestStoreDuplicateSession(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", Score: 30, SessionID: "abc"})
	_, err := store.SaveScore(Result{GameID: "tetris", Score: 30, SessionID: "abc"})
	if !errors.Is(err, ErrDuplicateSession) {
		t.Errorf("second save of a session: error = %v, expected ErrDuplicateSession", err)
	}

	// rows without a session id are never deduplicated
	mustSave(t, store, Result{GameID: "tetris", Score: 10})
	mustSave(t, store, Result{GameID: "tetris", Score: 10})

	scores, _ := store.TopScores("tetris", 10)
	if len(scores) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(scores))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", Score: 100})
	mustSave(t, store, Result{GameID: "tetris", Score: 200})
	mustSave(t, store, Result{GameID: "tetris_classic", Score: 300})

	n, err := store.ClearScores("tetris")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows cleared, got %d", n)
	}

	scores, _ := store.TopScores("tetris", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 tetris scores after clear, got %d", len(scores))
	}

	classic, _ := store.TopScores("tetris_classic", 10)
	if len(classic) != 1 {
		t.Errorf("Classic scores should not be affected by clearing tetris")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("tetris")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", empty)
	}

	mustSave(t, store, Result{GameID: "tetris", Score: 10, Lines: 1, Level: 1})
	mustSave(t, store, Result{GameID: "tetris", Score: 150, Lines: 11, Level: 2})

	stats, err := store.Stats("tetris")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 150 || stats.TotalLines != 12 || stats.BestLevel != 2 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.AvgScore != 80 {
		t.Errorf("AvgScore = %v, expected 80", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tetris/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tetris", "scores.db")); err != nil {
		t.Errorf("Database should be created under home: %v", err)
	}
}
