// Package sqlite provides a SQLite-backed implementation of auditlog.Repository.
//
// WAL mode is enabled on Open so readers never block the writer.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"

	// Register the pure-Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// schema is executed once on startup. The table is append-only: each row is
// one transition of a submission.
const schema = `
CREATE TABLE IF NOT EXISTS submission_log (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    submission_id  TEXT NOT NULL,
    status         TEXT NOT NULL,
    step           TEXT NOT NULL DEFAULT '',
    payload        TEXT,
    errors         TEXT NOT NULL DEFAULT '[]',
    trace_id       TEXT NOT NULL DEFAULT '',
    span_id        TEXT NOT NULL DEFAULT '',
    updated_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_log_submission ON submission_log(submission_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_submission_log_trace ON submission_log(trace_id);
`

var _ auditlog.Repository = (*Repository)(nil)

// Repository is the SQLite implementation of auditlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/submissions.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *auditlog.Entry) error {
	const q = `
		INSERT INTO submission_log
			(submission_id, status, step, payload, errors, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.SubmissionID,
		string(entry.Status),
		entry.Step,
		nullableString(entry.Payload),
		entry.Errors,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save entry for %q: %w", entry.SubmissionID, err)
	}
	return nil
}

// History returns the entries of one submission, oldest first.
func (r *Repository) History(ctx context.Context, submissionID string) ([]auditlog.Entry, error) {
	const q = `
		SELECT submission_id, status, step, COALESCE(payload, ''), errors,
		       trace_id, span_id, updated_at
		FROM   submission_log
		WHERE  submission_id = ?
		ORDER  BY updated_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, submissionID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", submissionID, err)
	}
	defer rows.Close()

	var out []auditlog.Entry
	for rows.Next() {
		var e auditlog.Entry
		var updatedAt string
		if err := rows.Scan(&e.SubmissionID, &e.Status, &e.Step, &e.Payload, &e.Errors,
			&e.TraceID, &e.SpanID, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan history for %q: %w", submissionID, err)
		}
		if e.UpdatedAt, err = parseRFC3339(updatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", submissionID, err)
	}
	return out, nil
}

// applySchema runs the DDL. Idempotent due to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// nullableString stores NULL instead of an empty payload.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
