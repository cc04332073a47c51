package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "memoria.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("memory", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different mode
	if _, err := store.SaveScore("memory_duel", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("memory", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	duelScores, err := store.TopScores("memory_duel", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(duelScores) != 1 {
		t.Errorf("Expected 1 duel score, got %d", len(duelScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveScore("memory", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("memory", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores with limit 5, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("memory")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore("memory", 300)
	store.SaveScore("memory", 700)
	store.SaveScore("memory", 100)

	high, err = store.HighScore("memory")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 700 {
		t.Errorf("Expected high score 700, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("memory", 100)
	store.SaveScore("memory_duel", 200)

	if err := store.ClearScores("memory"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("memory", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	// Other modes untouched
	duelScores, _ := store.TopScores("memory_duel", 10)
	if len(duelScores) != 1 {
		t.Errorf("ClearScores removed another mode's scores")
	}
}

func TestStoreCompletedGames(t *testing.T) {
	store := openTestStore(t)

	games := []CompletedGame{
		{GameID: "memory", Rows: 4, Cols: 4, GroupSize: 2, Score: 800, BestCombo: 3, Won: true, Duration: 95},
		{GameID: "memory", Rows: 6, Cols: 6, GroupSize: 3, Score: 400, BestCombo: 2, Won: false, Duration: 240},
	}
	for _, g := range games {
		if _, err := store.SaveCompletedGame(g); err != nil {
			t.Fatalf("SaveCompletedGame() failed: %v", err)
		}
	}

	recent, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(recent))
	}

	found := false
	for _, g := range recent {
		if g.Rows == 6 && g.Cols == 6 && g.GroupSize == 3 {
			found = true
			if g.Won {
				t.Error("6x6 game should not be marked won")
			}
			if g.Duration != 240 {
				t.Errorf("Duration = %d, want 240", g.Duration)
			}
		}
	}
	if !found {
		t.Error("6x6 triplets game not returned")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	// Empty stats
	stats, err := store.GetGameStats("memory")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveCompletedGame(CompletedGame{GameID: "memory", Rows: 4, Cols: 4, GroupSize: 2, Score: 600, BestCombo: 4, Won: true})
	store.SaveCompletedGame(CompletedGame{GameID: "memory", Rows: 4, Cols: 4, GroupSize: 2, Score: 200, BestCombo: 1, Won: false})

	stats, err = store.GetGameStats("memory")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.WinsCount != 1 {
		t.Errorf("WinsCount = %d, want 1", stats.WinsCount)
	}
	if stats.HighScore != 600 {
		t.Errorf("HighScore = %d, want 600", stats.HighScore)
	}
	if stats.BestCombo != 4 {
		t.Errorf("BestCombo = %d, want 4", stats.BestCombo)
	}
	if stats.AvgScore != 400 {
		t.Errorf("AvgScore = %f, want 400", stats.AvgScore)
	}
}
