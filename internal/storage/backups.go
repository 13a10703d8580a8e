package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ai2048/internal/engine"
)

// ErrBackupNotFound is returned when a named backup does not exist.
var ErrBackupNotFound = errors.New("backup not found")

// BackupInfo describes a stored backup without its cells.
type BackupInfo struct {
	Name      string
	BoardSize int
	Tiles     int
	MaxTile   int
	CreatedAt time.Time
}

// SaveBackup stores board under name, replacing any backup with that name.
func (s *Store) SaveBackup(name string, board *engine.Board) error {
	if name == "" {
		return fmt.Errorf("storage: backup name is empty")
	}

	cells, err := json.Marshal(board.Rows())
	if err != nil {
		return fmt.Errorf("storage: cannot encode backup: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO backups (name, board_size, cells, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   board_size = excluded.board_size,
		   cells = excluded.cells,
		   created_at = excluded.created_at`,
		name, board.Size(), string(cells),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save backup %q: %w", name, err)
	}
	return nil
}

// LoadBackup returns the board stored under name.
func (s *Store) LoadBackup(name string) (*engine.Board, error) {
	var cells string
	err := s.db.QueryRow("SELECT cells FROM backups WHERE name = ?", name).Scan(&cells)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: %q: %w", name, ErrBackupNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load backup %q: %w", name, err)
	}

	var rows [][]int
	if err := json.Unmarshal([]byte(cells), &rows); err != nil {
		return nil, fmt.Errorf("storage: cannot decode backup %q: %w", name, err)
	}

	board, err := engine.BoardFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("storage: backup %q is corrupt: %w", name, err)
	}
	return board, nil
}

// ListBackups returns all backups ordered by name.
func (s *Store) ListBackups() ([]BackupInfo, error) {
	rows, err := s.db.Query("SELECT name, board_size, cells, created_at FROM backups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query backups: %w", err)
	}
	defer rows.Close()

	var infos []BackupInfo
	for rows.Next() {
		var info BackupInfo
		var cells string
		var createdAt any
		if err := rows.Scan(&info.Name, &info.BoardSize, &cells, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)

		var grid [][]int
		if err := json.Unmarshal([]byte(cells), &grid); err == nil {
			for _, row := range grid {
				for _, v := range row {
					if v != 0 {
						info.Tiles++
					}
					info.MaxTile = max(info.MaxTile, v)
				}
			}
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

// DeleteBackup removes a named backup.
func (s *Store) DeleteBackup(name string) error {
	res, err := s.db.Exec("DELETE FROM backups WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete backup %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: %q: %w", name, ErrBackupNotFound)
	}
	return nil
}
