package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_SaveAndHistory(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

	entries := []*auditlog.Entry{
		{SubmissionID: "a", Status: auditlog.StatusStarted, Payload: `{"lines":2}`, Errors: "[]", UpdatedAt: base},
		{SubmissionID: "a", Status: auditlog.StatusStepDone, Step: "Notify_Order_Step", Errors: "[]", UpdatedAt: base.Add(time.Second)},
		{SubmissionID: "b", Status: auditlog.StatusStarted, Errors: "[]", UpdatedAt: base},
		{SubmissionID: "a", Status: auditlog.StatusCompleted, Errors: "[]", TraceID: "t", SpanID: "s", UpdatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	got, err := repo.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, auditlog.StatusStarted, got[0].Status)
	assert.Equal(t, `{"lines":2}`, got[0].Payload)
	assert.Equal(t, "Notify_Order_Step", got[1].Step)
	assert.Equal(t, "", got[1].Payload)
	assert.Equal(t, auditlog.StatusCompleted, got[2].Status)
	assert.Equal(t, "t", got[2].TraceID)
	assert.True(t, base.Add(2*time.Second).Equal(got[2].UpdatedAt))
}

func TestRepository_HistoryUnknown(t *testing.T) {
	repo := openTestRepo(t)

	got, err := repo.History(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), &auditlog.Entry{SubmissionID: "x", Status: auditlog.StatusStarted, Errors: "[]", UpdatedAt: time.Now()}))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.History(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
