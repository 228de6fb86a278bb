package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS submission_log").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo, err := NewFromDB(db)
	require.NoError(t, err)
	return repo, mock
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO submission_log").
		WithArgs("sub-1", "STEP_DONE", "Notify_Order_Step", sqlmock.AnyArg(), "[]", "trace", "span", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), &auditlog.Entry{
		SubmissionID: "sub-1",
		Status:       auditlog.StatusStepDone,
		Step:         "Notify_Order_Step",
		Errors:       "[]",
		TraceID:      "trace",
		SpanID:       "span",
		UpdatedAt:    at,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO submission_log").WillReturnError(errors.New("connection reset"))

	err := repo.Save(context.Background(), &auditlog.Entry{SubmissionID: "sub-1", Status: auditlog.StatusStarted})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_History(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"submission_id", "status", "step", "payload", "errors", "trace_id", "span_id", "updated_at"}).
		AddRow("sub-1", "STARTED", "", `{"lines":2}`, "[]", "", "", at).
		AddRow("sub-1", "COMPLETED", "", "", "[]", "", "", at.Add(time.Second))
	mock.ExpectQuery("^SELECT (.+) FROM\\s+submission_log").
		WithArgs("sub-1").
		WillReturnRows(rows)

	got, err := repo.History(context.Background(), "sub-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, auditlog.StatusStarted, got[0].Status)
	assert.Equal(t, `{"lines":2}`, got[0].Payload)
	assert.Equal(t, auditlog.StatusCompleted, got[1].Status)
	assert.True(t, at.Add(time.Second).Equal(got[1].UpdatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewFromDB_SchemaError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	_, err = NewFromDB(db)
	assert.ErrorContains(t, err, "apply schema")
}
