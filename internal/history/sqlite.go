// Package history records training runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"carprice/internal/artifact"
	"carprice/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    model_id VARCHAR(64) NOT NULL,
    data_path TEXT,
    artifact_path TEXT,
    row_count INTEGER,
    r2 REAL,
    rmse REAL,
    trained_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_training_log_trained_at ON training_log(trained_at);
`

// Store is a handle on the training history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Record appends a training run for a and returns its row id.
func (s *Store) Record(ctx context.Context, a *artifact.Artifact, dataPath, artifactPath string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO training_log (model_id, data_path, artifact_path, row_count, r2, rmse, trained_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, dataPath, artifactPath, a.Rows, a.Metrics.R2, a.Metrics.RMSE, a.TrainedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert training run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, model_id, data_path, artifact_path, row_count, r2, rmse, trained_at
        FROM training_log
        ORDER BY trained_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query training runs: %w", err)
	}
	defer rows.Close()

	var out []types.TrainingRun
	for rows.Next() {
		var r types.TrainingRun
		var trainedAt time.Time
		if err := rows.Scan(&r.ID, &r.ModelID, &r.DataPath, &r.ArtifactPath, &r.Rows, &r.R2, &r.RMSE, &trainedAt); err != nil {
			return nil, fmt.Errorf("scan training run: %w", err)
		}
		r.TrainedAt = trainedAt.Unix()
		out = append(out, r)
	}
	return out, rows.Err()
}
