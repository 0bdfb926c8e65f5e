package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tower/internal/core"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("tower", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("tower", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("tower", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("tower_chaos", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for tower
	scores, err := store.TopScores("tower", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for tower_chaos
	chaosScores, err := store.TopScores("tower_chaos", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(chaosScores) != 1 {
		t.Errorf("Expected 1 tower_chaos score, got %d", len(chaosScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("tower")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("tower", 100)
	store.SaveScore("tower", 300)
	store.SaveScore("tower", 200)

	high, err = store.HighScore("tower")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("tower", 100)
	store.SaveScore("tower", 200)
	store.SaveScore("tower_chaos", 300)

	// Clear only classic scores
	err = store.ClearScores("tower")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Classic should be empty
	classicScores, _ := store.TopScores("tower", 10)
	if len(classicScores) != 0 {
		t.Errorf("Expected 0 tower scores after clear, got %d", len(classicScores))
	}

	// Chaos should still have scores
	chaosScores, _ := store.TopScores("tower_chaos", 10)
	if len(chaosScores) != 1 {
		t.Errorf("tower_chaos scores should not be affected by clearing tower")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	runs := []core.RunSummary{
		{Score: 900, Height: 2400, MaxCombo: 4, Seed: 11},
		{Score: 1500, Height: 3100, MaxCombo: 7, Seed: 12},
		{Score: 900, Height: 2600, MaxCombo: 2, Seed: 13},
	}
	ids := make(map[string]bool)
	for _, r := range runs {
		id, err := store.SaveRun("tower", r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == "" || ids[id] {
			t.Fatalf("run id %q empty or reused", id)
		}
		ids[id] = true
	}

	top, err := store.TopRuns("tower", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	// Ties on score are broken by height
	if top[0].Seed != 12 || top[1].Seed != 13 || top[2].Seed != 11 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
	if top[0].Height != 3100 || top[0].MaxCombo != 7 {
		t.Errorf("Run fields not stored: %+v", top[0])
	}

	// Runs also feed the plain score table
	high, err := store.HighScore("tower")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1500 {
		t.Errorf("Expected high score of 1500, got %d", high)
	}
}

func TestStoreRunByID(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun("tower_chaos", core.RunSummary{Score: 300, Height: 800, MaxCombo: 2, Seed: 99})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.GameID != "tower_chaos" || run.Score != 300 || run.Seed != 99 {
		t.Errorf("RunByID() = %+v", run)
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %+v, %v", missing, err)
	}
}

func TestStoreGameStats(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	empty, err := store.GetGameStats("tower")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun("tower", core.RunSummary{Score: 100, Height: 500, MaxCombo: 3})
	store.SaveRun("tower", core.RunSummary{Score: 300, Height: 400, MaxCombo: 5})

	stats, err := store.GetGameStats("tower")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.BestHeight != 500 || stats.BestCombo != 5 {
		t.Errorf("Best height/combo = %d/%d, want 500/5", stats.BestHeight, stats.BestCombo)
	}
}
