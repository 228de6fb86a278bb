// Package postgres provides a PostgreSQL-backed implementation of
// auditlog.Repository for deployments that share one audit database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS submission_log (
    id             BIGSERIAL PRIMARY KEY,
    submission_id  TEXT NOT NULL,
    status         TEXT NOT NULL,
    step           TEXT NOT NULL DEFAULT '',
    payload        TEXT,
    errors         TEXT NOT NULL DEFAULT '[]',
    trace_id       TEXT NOT NULL DEFAULT '',
    span_id        TEXT NOT NULL DEFAULT '',
    updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submission_log_submission ON submission_log(submission_id, updated_at);
`

var _ auditlog.Repository = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

// Open connects with the given DSN and applies the schema.
func Open(dsn string) (*Repository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	repo, err := NewFromDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewFromDB wraps an existing handle and applies the schema.
func NewFromDB(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("postgres: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, entry *auditlog.Entry) error {
	const q = `
		INSERT INTO submission_log
			(submission_id, status, step, payload, errors, trace_id, span_id, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8)`

	var payload sql.NullString
	if entry.Payload != "" {
		payload = sql.NullString{String: entry.Payload, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, q,
		entry.SubmissionID,
		string(entry.Status),
		entry.Step,
		payload,
		entry.Errors,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("postgres: save entry for %q: %w", entry.SubmissionID, err)
	}
	return nil
}

func (r *Repository) History(ctx context.Context, submissionID string) ([]auditlog.Entry, error) {
	const q = `
		SELECT submission_id, status, step, COALESCE(payload, ''), errors,
		       trace_id, span_id, updated_at
		FROM   submission_log
		WHERE  submission_id = $1
		ORDER  BY updated_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, submissionID)
	if err != nil {
		return nil, fmt.Errorf("postgres: history for %q: %w", submissionID, err)
	}
	defer rows.Close()

	var out []auditlog.Entry
	for rows.Next() {
		var e auditlog.Entry
		if err := rows.Scan(&e.SubmissionID, &e.Status, &e.Step, &e.Payload, &e.Errors,
			&e.TraceID, &e.SpanID, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan history for %q: %w", submissionID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: history for %q: %w", submissionID, err)
	}
	return out, nil
}
