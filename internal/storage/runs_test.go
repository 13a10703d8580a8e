package storage

import (
	"testing"
)

func TestSaveRunAssignsIDs(t *testing.T) {
	store := openTestStore(t)

	run, err := store.SaveRun(Run{Strategy: "greedy", Score: 512, MaxTile: 64, Moves: 120})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if run.ID == 0 {
		t.Error("SaveRun() did not set ID")
	}
	if run.RunID == "" {
		t.Error("SaveRun() did not set RunID")
	}
	if run.BoardSize != 4 {
		t.Errorf("BoardSize = %d, want default 4", run.BoardSize)
	}

	got, err := store.RunByID(run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Score != 512 || got.MaxTile != 64 || got.Moves != 120 || got.Strategy != "greedy" {
		t.Errorf("RunByID() = %+v, want the saved run", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v, want nil, nil", missing, err)
	}
}

func TestSaveRunDuplicateIDFails(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{RunID: "fixed", Strategy: "random", Score: 1}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: "fixed", Strategy: "random", Score: 2}); err == nil {
		t.Error("SaveRun() with a duplicate RunID should fail")
	}
}

func TestTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 500, 300, 400, 200} {
		if _, err := store.SaveRun(Run{Strategy: "montecarlo", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(Run{Strategy: "random", Score: 9999})

	tests := []struct {
		name  string
		limit int
		want  []int
	}{
		{"top three", 3, []int{500, 400, 300}},
		{"default limit", 0, []int{500, 400, 300, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.TopRuns("montecarlo", tt.limit)
			if err != nil {
				t.Fatalf("TopRuns() failed: %v", err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("TopRuns() returned %d runs, want %d", len(runs), len(tt.want))
			}
			for i, r := range runs {
				if r.Score != tt.want[i] {
					t.Errorf("runs[%d].Score = %d, want %d", i, r.Score, tt.want[i])
				}
			}
		})
	}
}

func TestHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("greedy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty store = %d, want 0", high)
	}

	store.SaveRun(Run{Strategy: "greedy", Score: 100})
	store.SaveRun(Run{Strategy: "greedy", Score: 300})
	store.SaveRun(Run{Strategy: "manual", Score: 50})

	if high, _ = store.HighScore("greedy"); high != 300 {
		t.Errorf("HighScore() = %d, want 300", high)
	}

	if err := store.ClearRuns("greedy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("greedy", 10); len(runs) != 0 {
		t.Errorf("greedy runs after clear = %d, want 0", len(runs))
	}
	if runs, _ := store.TopRuns("manual", 10); len(runs) != 1 {
		t.Error("manual runs should not be affected by clearing greedy")
	}
}

func TestBatchRuns(t *testing.T) {
	store := openTestStore(t)

	batch := NewBatchID()
	for i := range 3 {
		store.SaveRun(Run{BatchID: batch, Strategy: "random", Score: i * 10})
	}
	store.SaveRun(Run{BatchID: NewBatchID(), Strategy: "random", Score: 1})

	runs, err := store.BatchRuns(batch)
	if err != nil {
		t.Fatalf("BatchRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("BatchRuns() returned %d runs, want 3", len(runs))
	}
	for i, r := range runs {
		if r.Score != i*10 {
			t.Errorf("runs[%d].Score = %d, want %d (insertion order)", i, r.Score, i*10)
		}
	}
}

func TestStrategyStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Strategy: "montecarlo", Score: 1000, MaxTile: 128})
	store.SaveRun(Run{Strategy: "montecarlo", Score: 3000, MaxTile: 256})
	store.SaveRun(Run{Strategy: "random", Score: 400, MaxTile: 32})

	stats, err := store.GetStrategyStats("montecarlo")
	if err != nil {
		t.Fatalf("GetStrategyStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 3000 {
		t.Errorf("HighScore = %d, want 3000", stats.HighScore)
	}
	if stats.AvgScore != 2000 {
		t.Errorf("AvgScore = %v, want 2000", stats.AvgScore)
	}
	if stats.TotalScore != 4000 {
		t.Errorf("TotalScore = %d, want 4000", stats.TotalScore)
	}
	if stats.BestTile != 256 {
		t.Errorf("BestTile = %d, want 256", stats.BestTile)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}

	empty, err := store.GetStrategyStats("greedy")
	if err != nil {
		t.Fatalf("GetStrategyStats(empty) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v, want zero values", empty)
	}

	all, err := store.GetAllStrategyStats()
	if err != nil {
		t.Fatalf("GetAllStrategyStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllStrategyStats() returned %d strategies, want 2", len(all))
	}
	if all["random"].HighScore != 400 {
		t.Errorf("random HighScore = %d, want 400", all["random"].HighScore)
	}
}
