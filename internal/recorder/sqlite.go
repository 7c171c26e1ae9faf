package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists benchmark results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tooling can read while a sweep writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                TEXT PRIMARY KEY,
			timestamp         INTEGER NOT NULL,
			scenario          TEXT,
			variant           TEXT,
			policy            TEXT,
			horizon           INTEGER,
			cumulative_reward REAL,
			steps_survived    INTEGER,
			terminal          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario)`,

		`CREATE TABLE IF NOT EXISTS trajectory_steps (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL,
			timestep           INTEGER,
			investment         INTEGER,
			energetic_spent    INTEGER,
			instrumental_spent INTEGER,
			reward             INTEGER,
			discounted         REAL,
			energetic          INTEGER,
			instrumental       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_steps_run ON trajectory_steps(run_id)`,

		`CREATE TABLE IF NOT EXISTS comparisons (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			scenario      TEXT,
			variant       TEXT,
			horizon       INTEGER,
			policy        TEXT,
			policy_reward REAL,
			optimal_value REAL,
			gap           REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cmp_ts ON comparisons(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	terminal := 0
	if run.Terminal {
		terminal = 1
	}
	_, err := r.db.Exec(`INSERT INTO runs
		(id, timestamp, scenario, variant, policy, horizon, cumulative_reward, steps_survived, terminal)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.ID, time.Now().Unix(), run.Scenario, run.Variant, run.Policy,
		run.Horizon, run.CumulativeReward, run.StepsSurvived, terminal,
	)
	return err
}

func (r *SQLiteRecorder) RecordSteps(steps []StepRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	for _, s := range steps {
		if _, err := tx.Exec(`INSERT INTO trajectory_steps
			(run_id, timestep, investment, energetic_spent, instrumental_spent,
			 reward, discounted, energetic, instrumental)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			s.RunID, s.Timestep, s.Investment, s.EnergeticSpent, s.InstrumentalSpent,
			s.Reward, s.Discounted, s.Energetic, s.Instrumental,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordComparison(cmp *ComparisonRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO comparisons
		(timestamp, scenario, variant, horizon, policy, policy_reward, optimal_value, gap)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), cmp.Scenario, cmp.Variant, cmp.Horizon,
		cmp.Policy, cmp.PolicyReward, cmp.OptimalValue, cmp.Gap,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
