package auditlog

import "context"

// Repository persists audit entries. The coordinator depends on this port,
// not on a database; SQLite and Postgres implementations live in
// subpackages.
type Repository interface {
	// Save appends a row; the log is append-only.
	Save(ctx context.Context, entry *Entry) error
	// History returns every entry of one submission, oldest first.
	History(ctx context.Context, submissionID string) ([]Entry, error)
}
