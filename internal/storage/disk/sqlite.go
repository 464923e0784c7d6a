package disk

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/forgeworks/agent-hooks/internal/hooks"
	"github.com/forgeworks/agent-hooks/internal/storage/interfaces"
)

// SQLiteStore implements ChainStorer using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the chain-history database, creating the schema
// if needed. AGENT_HOOKS_DB_PATH overrides the default location, which
// is useful for testing.
func NewSQLiteStore() (interfaces.ChainStorer, error) {
	dbPath := os.Getenv("AGENT_HOOKS_DB_PATH")
	if dbPath == "" {
		dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "agent-hooks")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPath = filepath.Join(dataDir, "history.db")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chain_runs (
		id TEXT PRIMARY KEY,
		event TEXT NOT NULL,
		session_id TEXT NOT NULL,
		project_path TEXT,
		repo TEXT,
		branch TEXT,
		total_hooks INTEGER NOT NULL,
		successful INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		should_continue INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hook_results (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		success INTEGER NOT NULL,
		output TEXT,
		error TEXT,
		execution_time_ms INTEGER NOT NULL,
		hook_command TEXT NOT NULL,
		PRIMARY KEY (run_id, idx),
		FOREIGN KEY (run_id) REFERENCES chain_runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_chain_runs_session ON chain_runs(session_id);
	CREATE INDEX IF NOT EXISTS idx_chain_runs_started ON chain_runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveChainRun(run *hooks.ChainRun) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO chain_runs (id, event, session_id, project_path, repo, branch,
			total_hooks, successful, failed, should_continue, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Event, run.SessionID, run.ProjectPath, run.Repo, run.Branch,
		run.Result.TotalHooks, run.Result.Successful, run.Result.Failed,
		run.Result.ShouldContinue, run.StartedAt, run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chain run: %w", err)
	}

	for i, result := range run.Result.Results {
		_, err = tx.Exec(`
			INSERT INTO hook_results (run_id, idx, success, output, error, execution_time_ms, hook_command)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, result.Success, result.Output, result.Error,
			result.ExecutionTimeMs, result.HookCommand,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hook result: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetChainRun(id string) (*hooks.ChainRun, error) {
	row := s.db.QueryRow(`
		SELECT id, event, session_id, project_path, repo, branch,
			total_hooks, successful, failed, should_continue, started_at, duration_ms
		FROM chain_runs WHERE id = ?`, id)

	run, err := scanChainRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chain run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chain run: %w", err)
	}

	if err := s.loadResults(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SQLiteStore) ListChainRuns(limit int) ([]*hooks.ChainRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, event, session_id, project_path, repo, branch,
			total_hooks, successful, failed, should_continue, started_at, duration_ms
		FROM chain_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chain runs: %w", err)
	}
	defer rows.Close()

	var runs []*hooks.ChainRun
	for rows.Next() {
		run, err := scanChainRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chain run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		if err := s.loadResults(run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *SQLiteStore) DeleteChainRunsBefore(cutoff time.Time) (int64, error) {
	// hook_results rows are removed explicitly since foreign key
	// enforcement is off by default in sqlite3.
	_, err := s.db.Exec(`
		DELETE FROM hook_results WHERE run_id IN
			(SELECT id FROM chain_runs WHERE started_at < ?)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete hook results: %w", err)
	}

	res, err := s.db.Exec(`DELETE FROM chain_runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete chain runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChainRun(row rowScanner) (*hooks.ChainRun, error) {
	run := &hooks.ChainRun{Result: &hooks.ChainResult{}}
	err := row.Scan(
		&run.ID, &run.Event, &run.SessionID, &run.ProjectPath, &run.Repo, &run.Branch,
		&run.Result.TotalHooks, &run.Result.Successful, &run.Result.Failed,
		&run.Result.ShouldContinue, &run.StartedAt, &run.DurationMs,
	)
	if err != nil {
		return nil, err
	}
	run.Result.Event = run.Event
	return run, nil
}

func (s *SQLiteStore) loadResults(run *hooks.ChainRun) error {
	rows, err := s.db.Query(`
		SELECT success, output, error, execution_time_ms, hook_command
		FROM hook_results WHERE run_id = ? ORDER BY idx`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to query hook results: %w", err)
	}
	defer rows.Close()

	results := []hooks.ExecutionResult{}
	for rows.Next() {
		var r hooks.ExecutionResult
		if err := rows.Scan(&r.Success, &r.Output, &r.Error, &r.ExecutionTimeMs, &r.HookCommand); err != nil {
			return fmt.Errorf("failed to scan hook result: %w", err)
		}
		results = append(results, r)
	}
	run.Result.Results = results
	return rows.Err()
}
