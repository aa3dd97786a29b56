package design

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Recorder persists a structured trace of a run to SQLite: one row
// per run and one row per trajectory step. It implements the
// Optimizer's Trace hook.
type Recorder struct {
	db *sql.DB

	// RunID identifies the run across tools reading the trace
	RunID string
}

// OpenRecorder opens (and migrates) the trace database at path.
func OpenRecorder(path string) (*Recorder, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database at %s: %v", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
	  id         TEXT PRIMARY KEY,
	  native     TEXT NOT NULL,
	  trajs      INTEGER NOT NULL,
	  steps      INTEGER NOT NULL,
	  started_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS steps (
	  run_id   TEXT NOT NULL REFERENCES runs(id),
	  step     INTEGER NOT NULL,
	  traj     INTEGER NOT NULL,
	  kind     TEXT NOT NULL,
	  pos      INTEGER NOT NULL,
	  temp     REAL NOT NULL,
	  current  REAL NOT NULL,
	  proposed REAL NOT NULL,
	  p_accept REAL NOT NULL,
	  accepted INTEGER NOT NULL,
	  seq      TEXT NOT NULL,
	  PRIMARY KEY (run_id, step, traj)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate trace database: %v", err)
	}

	return &Recorder{db: db}, nil
}

// Begin registers a new run and sets the Recorder's RunID.
func (r *Recorder) Begin(native string, trajectories, steps int) error {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	r.RunID = ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()

	_, err := r.db.Exec(
		"INSERT INTO runs (id, native, trajs, steps, started_at) VALUES (?, ?, ?, ?, ?)",
		r.RunID, native, trajectories, steps, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run start: %v", err)
	}

	return nil
}

// Record persists one step trace. Trace IO never aborts a run, so
// failures are logged and skipped.
func (r *Recorder) Record(t StepTrace) {
	accepted := 0
	if t.Accepted {
		accepted = 1
	}

	_, err := r.db.Exec(
		`INSERT INTO steps (run_id, step, traj, kind, pos, temp, current, proposed, p_accept, accepted, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, t.Step, t.Trajectory, t.Kind, t.Pos, t.Temp, t.Current, t.Proposed, t.Accept, accepted, t.Seq,
	)
	if err != nil {
		stderr.Printf("failed to record step %d trace: %v", t.Step, err)
	}
}

// StepCount returns the number of recorded steps for the run.
func (r *Recorder) StepCount(runID string) (count int, err error) {
	row := r.db.QueryRow("SELECT COUNT(*) FROM steps WHERE run_id = ?", runID)
	if err = row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recorded steps: %v", err)
	}

	return count, nil
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	return r.db.Close()
}
