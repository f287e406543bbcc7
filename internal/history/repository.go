package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aticu/emdiro/internal/database"
)

// Repository defines the persistence interface for run records.
type Repository interface {
	Save(record *RunRecord) error
	List(limit int) ([]RunRecord, error)
	ListByCommand(command string, limit int) ([]RunRecord, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS run_history (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            command     TEXT    NOT NULL,
            chain_file  TEXT    NOT NULL DEFAULT '',
            actions     INTEGER NOT NULL DEFAULT 0,
            runs        INTEGER NOT NULL DEFAULT 0,
            outcome     TEXT    NOT NULL DEFAULT '',
            detail      TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_run_history_timestamp ON run_history(timestamp);
        CREATE INDEX IF NOT EXISTS idx_run_history_command ON run_history(command);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new run record and assigns its ID. A zero timestamp is
// filled in with the current time.
func (r *SQLiteRepository) Save(record *RunRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO run_history (timestamp, command, chain_file, actions, runs, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339Nano), record.Command, record.ChainFile,
		record.Actions, record.Runs, record.Outcome, record.Detail, record.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	record.ID = id
	return nil
}

// List returns the most recent run records, newest first.
func (r *SQLiteRepository) List(limit int) ([]RunRecord, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, command, chain_file, actions, runs, outcome, detail, duration_ms
        FROM run_history ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByCommand returns the most recent run records for a subcommand.
func (r *SQLiteRepository) ListByCommand(command string, limit int) ([]RunRecord, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, command, chain_file, actions, runs, outcome, detail, duration_ms
        FROM run_history WHERE command = ? ORDER BY timestamp DESC LIMIT ?`, command, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes records older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM run_history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Log opens the default repository, saves the record, and closes it
// again, swallowing storage errors: a broken history database must
// never fail the recording or playback it describes.
func Log(record *RunRecord) {
	repo, err := Open()
	if err != nil {
		return
	}
	defer repo.Close()
	_ = repo.Save(record)
}

func scanRows(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var timestampStr string
		err := rows.Scan(
			&record.ID, &timestampStr, &record.Command, &record.ChainFile,
			&record.Actions, &record.Runs, &record.Outcome, &record.Detail,
			&record.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		record.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		records = append(records, record)
	}
	return records, rows.Err()
}
