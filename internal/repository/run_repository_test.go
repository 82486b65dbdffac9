package repository

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nerevar/traclusdl/internal/models"
)

const testSchema = `
CREATE TABLE runs (
	id TEXT PRIMARY KEY,
	input_path TEXT NOT NULL,
	max_dist REAL NOT NULL,
	min_density INTEGER NOT NULL,
	max_angle REAL NOT NULL,
	segment_size REAL NOT NULL,
	mode TEXT NOT NULL,
	status TEXT NOT NULL,
	corridor_count INTEGER NOT NULL DEFAULT 0,
	clustered_segments INTEGER NOT NULL DEFAULT 0,
	non_clustered_segments INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE TABLE corridors (
	run_id TEXT NOT NULL REFERENCES runs(id),
	corridor_id INTEGER NOT NULL,
	weight INTEGER NOT NULL,
	start_x REAL NOT NULL,
	start_y REAL NOT NULL,
	end_x REAL NOT NULL,
	end_y REAL NOT NULL,
	PRIMARY KEY (run_id, corridor_id)
);
`

func newTestRepo(t *testing.T) *RunRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return NewRunRepository(db)
}

func TestCreateAndGetRun(t *testing.T) {
	repo := newTestRepo(t)
	started := time.Now().Truncate(time.Second)

	run := models.Run{
		ID: "run-1", InputPath: "in.txt", MaxDist: 250, MinDensity: 3,
		MaxAngle: 5, SegmentSize: 500, Mode: "serial", StartedAt: started,
	}
	if err := repo.CreateRunning(run); err != nil {
		t.Fatalf("CreateRunning: %v", err)
	}

	got, err := repo.GetByID("run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.RunStatusRunning {
		t.Errorf("status = %v, want running", got.Status)
	}
	if got.InputPath != "in.txt" || got.MinDensity != 3 {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.FinishedAt != nil {
		t.Errorf("finished_at should be nil for a running run")
	}
}

func TestCompleteRunAndInsertCorridors(t *testing.T) {
	repo := newTestRepo(t)
	run := models.Run{ID: "run-2", InputPath: "in.txt", StartedAt: time.Now(), Mode: "serial"}
	if err := repo.CreateRunning(run); err != nil {
		t.Fatalf("CreateRunning: %v", err)
	}

	finished := time.Now()
	if err := repo.Complete("run-2", 2, 10, 4, finished); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	corridors := []models.Corridor{
		{RunID: "run-2", CorridorID: 0, Weight: 100, StartX: 0, StartY: 1, EndX: 2, EndY: 3},
		{RunID: "run-2", CorridorID: 1, Weight: 50, StartX: 4, StartY: 5, EndX: 6, EndY: 7},
	}
	if err := repo.InsertCorridors("run-2", corridors); err != nil {
		t.Fatalf("InsertCorridors: %v", err)
	}

	got, err := repo.GetByID("run-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.RunStatusCompleted || got.CorridorCount != 2 {
		t.Errorf("unexpected completed run: %+v", got)
	}
	if got.FinishedAt == nil {
		t.Fatal("finished_at should be set after Complete")
	}

	list, err := repo.ListCorridors("run-2")
	if err != nil {
		t.Fatalf("ListCorridors: %v", err)
	}
	if len(list) != 2 || list[0].CorridorID != 0 || list[1].CorridorID != 1 {
		t.Errorf("unexpected corridor list: %+v", list)
	}
}

func TestFailRunRecordsError(t *testing.T) {
	repo := newTestRepo(t)
	run := models.Run{ID: "run-3", InputPath: "in.txt", StartedAt: time.Now(), Mode: "serial"}
	if err := repo.CreateRunning(run); err != nil {
		t.Fatalf("CreateRunning: %v", err)
	}

	if err := repo.Fail("run-3", sql.ErrNoRows, time.Now()); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	got, err := repo.GetByID("run-3")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.RunStatusFailed || got.Error == "" {
		t.Errorf("unexpected failed run: %+v", got)
	}
}

func TestGetByIDMissingReturnsErrNoRows(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetByID("missing"); err != sql.ErrNoRows {
		t.Errorf("GetByID(missing) err = %v, want sql.ErrNoRows", err)
	}
}
