package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished game.
type Run struct {
	ID           int64
	RunID        string // uuid, generated by SaveRun when empty
	BatchID      string // shared by all games of one bench invocation
	Strategy     string
	Score        int
	MaxTile      int
	Moves        int
	Intelligence int
	BoardSize    int
	CreatedAt    time.Time
}

// NewBatchID returns a fresh id for grouping runs.
func NewBatchID() string {
	return uuid.NewString()
}

// SaveRun records a finished game and returns it with ID and RunID filled in.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.BoardSize == 0 {
		run.BoardSize = 4
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, batch_id, strategy, score, max_tile, moves, intelligence, board_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.BatchID, run.Strategy, run.Score, run.MaxTile, run.Moves, run.Intelligence, run.BoardSize,
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	run.ID = id

	return run, nil
}

const runColumns = `id, run_id, batch_id, strategy, score, max_tile, moves, intelligence, board_size, created_at`

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.BatchID, &r.Strategy, &r.Score,
			&r.MaxTile, &r.Moves, &r.Intelligence, &r.BoardSize, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// TopRuns retrieves the top N runs for the given strategy.
// Results are ordered by score descending.
func (s *Store) TopRuns(strategy string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE strategy = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		strategy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BatchRuns retrieves every run of one bench batch in insertion order.
func (s *Store) BatchRuns(batchID string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE batch_id = ? ORDER BY id ASC`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query batch: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its uuid.
// Returns nil, nil when no such run exists.
func (s *Store) RunByID(runID string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// HighScore returns the highest score for the given strategy.
// Returns 0 if no runs exist.
func (s *Store) HighScore(strategy string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE strategy = ?",
		strategy,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given strategy.
func (s *Store) ClearRuns(strategy string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE strategy = ?", strategy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// StrategyStats contains aggregated statistics for a strategy.
type StrategyStats struct {
	Strategy   string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestTile   int
	LastPlayed time.Time
}

// GetStrategyStats retrieves aggregated statistics for one strategy.
func (s *Store) GetStrategyStats(strategy string) (*StrategyStats, error) {
	stats := &StrategyStats{Strategy: strategy}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(max_tile), 0)
		 FROM runs WHERE strategy = ?`,
		strategy,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestTile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE strategy = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		strategy,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllStrategyStats retrieves statistics for every strategy with runs.
func (s *Store) GetAllStrategyStats() (map[string]*StrategyStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(max_tile), MAX(created_at)
		 FROM runs
		 GROUP BY strategy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all strategy stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StrategyStats)
	for rows.Next() {
		var st StrategyStats
		var lastPlayed any
		if err := rows.Scan(&st.Strategy, &st.GamesCount, &st.HighScore, &st.AvgScore,
			&st.TotalScore, &st.BestTile, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Strategy] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
