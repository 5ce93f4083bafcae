package storage

import (
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("snake", "easy", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("snake", "easy")
	if err != nil || high != 40 {
		t.Errorf("HighScore after reopen = %d, %v", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("snake", "normal", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("pong", "hard", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("snake", "", 10)
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
		if scores[i].Difficulty != "normal" {
			t.Errorf("scores[%d] difficulty = %q", i, scores[i].Difficulty)
		}
	}

	pongScores, err := store.TopScores("pong", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(pongScores) != 1 {
		t.Errorf("Expected 1 pong score, got %d", len(pongScores))
	}
}

func TestStoreTopScoresByDifficulty(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", "easy", 300)
	store.SaveScore("snake", "fast", 120)
	store.SaveScore("snake", "fast", 90)

	fast, err := store.TopScores("snake", "fast", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(fast) != 2 || fast[0].Score != 120 {
		t.Errorf("fast scores = %+v", fast)
	}

	high, err := store.HighScore("snake", "fast")
	if err != nil || high != 120 {
		t.Errorf("HighScore(fast) = %d, %v", high, err)
	}
	high, err = store.HighScore("snake", "")
	if err != nil || high != 300 {
		t.Errorf("HighScore(any) = %d, %v", high, err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "", (i+1)*100)
	}

	scores, err := store.TopScores("test", "", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake", "normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", "easy", 100)
	store.SaveScore("snake", "easy", 200)
	store.SaveScore("pong", "easy", 300)

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	snakeScores, _ := store.TopScores("snake", "", 10)
	if len(snakeScores) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(snakeScores))
	}

	pongScores, _ := store.TopScores("pong", "", 10)
	if len(pongScores) != 1 {
		t.Errorf("Pong scores should not be affected by clearing snake")
	}
}

func TestStoreSaveMatch(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(MatchResult{
		GameID:    "checkers",
		LeftName:  "RED",
		RightName: "BLACK",
		Score1:    12,
		Score2:    7,
		Winner:    "RED",
		Moves:     41,
		Duration:  300,
	})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("match id %q is not a uuid: %v", id, err)
	}

	m, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m == nil {
		t.Fatal("match not found")
	}
	if m.GameID != "checkers" || m.Winner != "RED" || m.Moves != 41 || m.Score2 != 7 {
		t.Errorf("loaded match = %+v", m)
	}

	missing, err := store.MatchByID("nope")
	if err != nil || missing != nil {
		t.Errorf("MatchByID(nope) = %v, %v", missing, err)
	}
}

func TestStoreSaveMatchKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(MatchResult{MatchID: "fixed-id", GameID: "pong", LeftName: "a", RightName: "b"})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("id = %q", id)
	}
	if _, err := store.SaveMatch(MatchResult{MatchID: "fixed-id", GameID: "pong", LeftName: "a", RightName: "b"}); err == nil {
		t.Error("duplicate match id accepted")
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"pong", "checkers", "pong"} {
		_, err := store.SaveMatch(MatchResult{
			GameID:    game,
			LeftName:  "ann",
			RightName: "bob",
			Score1:    i,
		})
		if err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}
	store.SaveMatch(MatchResult{GameID: "pong", LeftName: "cid", RightName: "dee"})

	pong, err := store.RecentMatches("pong", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(pong) != 3 {
		t.Fatalf("pong matches = %d, want 3", len(pong))
	}
	if pong[0].LeftName != "cid" || pong[1].Score1 != 2 {
		t.Errorf("matches not newest first: %+v", pong)
	}

	all, _ := store.RecentMatches("", 2)
	if len(all) != 2 {
		t.Errorf("limit ignored: %d", len(all))
	}

	bob, err := store.PlayerMatches("bob", 10)
	if err != nil {
		t.Fatalf("PlayerMatches() failed: %v", err)
	}
	if len(bob) != 3 {
		t.Errorf("bob played %d matches, want 3", len(bob))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", "easy", 100)
	store.SaveScore("snake", "easy", 300)
	store.SaveMatch(MatchResult{GameID: "checkers", LeftName: "a", RightName: "b"})

	stats, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("snake stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["checkers"] == nil || all["checkers"].Matches != 1 {
		t.Errorf("checkers stats = %+v", all["checkers"])
	}
	if all["snake"] == nil || all["snake"].TotalScore != 400 {
		t.Errorf("snake stats = %+v", all["snake"])
	}
}

func TestStoreNestedPath(t *testing.T) {
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
