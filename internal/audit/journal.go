// Package audit provides an append-only SQLite journal of record change
// events.
//
// The journal subscribes to the event notifier and records every
// added/updated/deleted event with the operation token that produced it.
// Journal failures are logged and swallowed: auditing must never abort the
// operation that emitted the event.
package audit

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/govault/govault/internal/events"
)

//go:embed schema.sql
var schemaSQL string

// Journal is the SQLite-backed change log.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

// Entry is one journaled change event.
type Entry struct {
	Seq      int64
	Op       string
	OpToken  string
	RecordID int64
	Name     string
	Value    string
	At       time.Time
}

// Open creates or opens the journal database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db, logger: logger}, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append inserts one change event into the journal.
func (j *Journal) Append(ctx context.Context, ev events.ChangeEvent) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO changes (op, op_token, record_id, name, value, at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		ev.Op,
		ev.OpToken,
		ev.Record.ID,
		ev.Record.Name,
		ev.Record.Value,
		ev.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append change: %w", err)
	}
	return nil
}

// Recent returns the latest n journal entries, newest first.
// Returns an empty slice (not nil) when the journal is empty.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, op, op_token, record_id, name, value, at
		FROM changes
		ORDER BY seq DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query changes: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.Seq, &e.Op, &e.OpToken, &e.RecordID, &e.Name, &e.Value, &at); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate changes: %w", err)
	}
	return entries, nil
}

// Observer returns an event handler that appends to the journal.
// Append errors are logged and swallowed.
func (j *Journal) Observer() events.Handler {
	return func(ev events.ChangeEvent) {
		if err := j.Append(context.Background(), ev); err != nil {
			j.logger.Error("audit append failed", "event", ev.Op, "error", err)
		}
	}
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
