package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Backend() != "sqlite" {
		t.Errorf("Backend() = %q, expected sqlite", store.Backend())
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("caves", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("caves", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed from the database")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("caves", (i+1)*100)
	}

	scores, err := store.TopScores("caves", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("caves")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("caves", 100)
	store.SaveScore("caves", 300)
	store.SaveScore("caves", 200)

	high, err = store.HighScore("caves")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("caves", 100)
	store.SaveScore("other", 300)
	if _, err := store.SaveRun(RunRecord{GameID: "caves", LevelID: "a", Outcome: "win"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.ClearScores("caves"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("caves", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("caves", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other games should not be affected by clearing caves")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("caves")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("caves", 100)
	store.SaveScore("caves", 300)

	stats, err = store.GetGameStats("caves")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("stats = %+v, expected 2 games, high 300, total 400", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		GameID: "caves", LevelID: "01-open-cavern", Outcome: "win",
		Score: 120, Gems: 8, Ticks: 900, Player: "alice",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a uuid: %v", id, err)
	}

	fixed := uuid.NewString()
	if got, err := store.SaveRun(RunRecord{RunID: fixed, GameID: "caves", LevelID: "01-open-cavern", Outcome: "dead", Score: 30}); err != nil || got != fixed {
		t.Fatalf("SaveRun() = %q, %v, expected %q", got, err, fixed)
	}
	if _, err := store.SaveRun(RunRecord{RunID: "not-a-uuid", GameID: "caves"}); err == nil {
		t.Error("SaveRun should reject a malformed run id")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.LevelID != "01-open-cavern" || run.Outcome != "win" || run.Score != 120 || run.Gems != 8 || run.Ticks != 900 || run.Player != "alice" {
		t.Errorf("RunByID() = %+v", run)
	}

	if _, err := store.RunByID(uuid.NewString()); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID error = %v, expected %v", err, ErrRunNotFound)
	}

	runs, err := store.RecentRuns("caves", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != fixed {
		t.Errorf("RecentRuns() should list the newest run first, got %v", runs)
	}
}

func TestStoreLevelBests(t *testing.T) {
	store := openTestStore(t)

	records := []RunRecord{
		{GameID: "caves", LevelID: "b", Outcome: "win", Score: 50, Ticks: 400},
		{GameID: "caves", LevelID: "a", Outcome: "win", Score: 80, Ticks: 900},
		{GameID: "caves", LevelID: "a", Outcome: "win", Score: 60, Ticks: 700},
		{GameID: "caves", LevelID: "a", Outcome: "dead", Score: 999, Ticks: 10},
	}
	for _, r := range records {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	bests, err := store.LevelBests("caves")
	if err != nil {
		t.Fatalf("LevelBests() failed: %v", err)
	}
	if len(bests) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(bests))
	}

	expected := []LevelBest{
		{LevelID: "a", Score: 80, Ticks: 700, Wins: 2},
		{LevelID: "b", Score: 50, Ticks: 400, Wins: 1},
	}
	for i, want := range expected {
		if bests[i] != want {
			t.Errorf("bests[%d] = %+v, expected %+v", i, bests[i], want)
		}
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestDialectRebind(t *testing.T) {
	tests := []struct {
		d        dialect
		query    string
		expected string
	}{
		{sqliteDialect, "SELECT ? FROM t WHERE a = ?", "SELECT ? FROM t WHERE a = ?"},
		{postgresDialect, "SELECT ? FROM t WHERE a = ?", "SELECT $1 FROM t WHERE a = $2"},
		{postgresDialect, "VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)"},
		{postgresDialect, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		if got := tt.d.rebind(tt.query); got != tt.expected {
			t.Errorf("%s rebind(%q) = %q, expected %q", tt.d.name, tt.query, got, tt.expected)
		}
	}
}

func TestOpenPostgresUnreachable(t *testing.T) {
	_, err := Open("postgres://caves@127.0.0.1:1/caves?sslmode=disable&connect_timeout=1")
	if err == nil {
		t.Fatal("expected an error connecting to a closed port")
	}
}
