// Package journal persists a scheduler-facing audit trail of transfer runs
// in a local SQLite database.
package journal

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"shuttle/internal/models"
)

//go:embed schema.sql
var schemaFS embed.FS

// Journal records runs and per-file outcomes.
type Journal struct {
	db *sql.DB
}

// New opens (creating if needed) the journal database at dbPath.
func New(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := j.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// RecordRun inserts the run header row at job start.
func (j *Journal) RecordRun(runID, command, host, user string, mode models.Mode) error {
	_, err := j.db.Exec(
		`INSERT INTO runs (id, command, host, user, mode, status, started_at) VALUES (?, ?, ?, ?, ?, 'running', ?)`,
		runID, command, host, user, string(mode), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecordFile appends one per-file outcome to the run.
func (j *Journal) RecordFile(runID string, result models.TransferResult) error {
	_, err := j.db.Exec(
		`INSERT INTO run_files (run_id, source, target, outcome, detail) VALUES (?, ?, ?, ?, ?)`,
		runID, result.Source, result.Target, string(result.Outcome), result.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record file result: %w", err)
	}
	return nil
}

// FinishRun closes out the run header with its final status.
func (j *Journal) FinishRun(runID, status, errMsg string) error {
	_, err := j.db.Exec(
		`UPDATE runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		status, errMsg, time.Now(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RunSummary is one row of the runs table, for inspection and tests.
type RunSummary struct {
	ID        string
	Command   string
	Host      string
	User      string
	Mode      string
	Status    string
	ErrorMsg  string
	FileCount int
}

// GetRun fetches a run header and its file count.
func (j *Journal) GetRun(runID string) (*RunSummary, error) {
	var s RunSummary
	err := j.db.QueryRow(
		`SELECT id, command, host, user, mode, status, COALESCE(error_message, '')
		 FROM runs WHERE id = ?`, runID,
	).Scan(&s.ID, &s.Command, &s.Host, &s.User, &s.Mode, &s.Status, &s.ErrorMsg)
	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", runID, err)
	}

	if err := j.db.QueryRow(`SELECT COUNT(*) FROM run_files WHERE run_id = ?`, runID).Scan(&s.FileCount); err != nil {
		return nil, fmt.Errorf("failed to count run files: %w", err)
	}
	return &s, nil
}
