// Package repository wraps the run store's SQL statements behind a thin,
// parameterized-query API, the same shape as the teacher's track
// repository: no query builder, no ORM, one method per statement.
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nerevar/traclusdl/internal/models"
)

// RunRepository persists run records and their corridors.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository wraps an already-initialized database handle.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRunning inserts a run row in the "running" state, called before any
// clustering work begins so a crash mid-run still leaves a record behind.
func (r *RunRepository) CreateRunning(run models.Run) error {
	_, err := r.db.Exec(`
		INSERT INTO runs (id, input_path, max_dist, min_density, max_angle, segment_size, mode, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputPath, run.MaxDist, run.MinDensity, run.MaxAngle, run.SegmentSize, run.Mode, models.RunStatusRunning, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

// Complete marks a run completed and records its final shape.
func (r *RunRepository) Complete(id string, corridorCount, clustered, nonClustered int, finishedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE runs
		SET status = ?, corridor_count = ?, clustered_segments = ?, non_clustered_segments = ?, finished_at = ?
		WHERE id = ?`,
		models.RunStatusCompleted, corridorCount, clustered, nonClustered, finishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("completing run %s: %w", id, err)
	}
	return nil
}

// Fail marks a run failed and records the error message.
func (r *RunRepository) Fail(id string, runErr error, finishedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		models.RunStatusFailed, runErr.Error(), finishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failing run %s: %w", id, err)
	}
	return nil
}

// InsertCorridors bulk-inserts the corridors belonging to a completed run.
func (r *RunRepository) InsertCorridors(runID string, corridors []models.Corridor) error {
	if len(corridors) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning corridor insert for run %s: %w", runID, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO corridors (run_id, corridor_id, weight, start_x, start_y, end_x, end_y)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing corridor insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range corridors {
		if _, err := stmt.Exec(runID, c.CorridorID, c.Weight, c.StartX, c.StartY, c.EndX, c.EndY); err != nil {
			return fmt.Errorf("inserting corridor %d for run %s: %w", c.CorridorID, runID, err)
		}
	}
	return tx.Commit()
}

// GetByID loads a single run by id, returning sql.ErrNoRows untouched so
// the handler can translate it to a 404.
func (r *RunRepository) GetByID(id string) (models.Run, error) {
	var run models.Run
	var errMsg sql.NullString
	var finishedAt sql.NullTime

	row := r.db.QueryRow(`
		SELECT id, input_path, max_dist, min_density, max_angle, segment_size, mode, status,
		       corridor_count, clustered_segments, non_clustered_segments, error, started_at, finished_at
		FROM runs WHERE id = ?`, id)

	err := row.Scan(
		&run.ID, &run.InputPath, &run.MaxDist, &run.MinDensity, &run.MaxAngle, &run.SegmentSize, &run.Mode, &run.Status,
		&run.CorridorCount, &run.ClusteredSegments, &run.NonClusteredSegments, &errMsg, &run.StartedAt, &finishedAt,
	)
	if err != nil {
		return models.Run{}, err
	}
	run.Error = errMsg.String
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return run, nil
}

// ListCorridors loads every corridor belonging to a run, ordered by
// corridor_id to match the order corridors were finalized in.
func (r *RunRepository) ListCorridors(runID string) ([]models.Corridor, error) {
	rows, err := r.db.Query(`
		SELECT run_id, corridor_id, weight, start_x, start_y, end_x, end_y
		FROM corridors WHERE run_id = ? ORDER BY corridor_id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing corridors for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []models.Corridor
	for rows.Next() {
		var c models.Corridor
		if err := rows.Scan(&c.RunID, &c.CorridorID, &c.Weight, &c.StartX, &c.StartY, &c.EndX, &c.EndY); err != nil {
			return nil, fmt.Errorf("scanning corridor row for run %s: %w", runID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
