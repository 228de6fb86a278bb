package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"
)

type MockStep struct {
	mock.Mock
	name  string
	trail *[]string
}

func (m *MockStep) Name() string { return m.name }

func (m *MockStep) Execute(ctx context.Context) error {
	*m.trail = append(*m.trail, "exec:"+m.name)
	return m.Called(ctx).Error(0)
}

func (m *MockStep) Compensate(ctx context.Context) error {
	*m.trail = append(*m.trail, "comp:"+m.name)
	return m.Called(ctx).Error(0)
}

type memoryAudit struct {
	mu      sync.Mutex
	entries []auditlog.Entry
	err     error
}

func (m *memoryAudit) Save(_ context.Context, e *auditlog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memoryAudit) History(_ context.Context, id string) ([]auditlog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []auditlog.Entry
	for _, e := range m.entries {
		if e.SubmissionID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func statuses(entries []auditlog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Status) + ":" + e.Step
	}
	return out
}

func TestOrchestrator_AllStepsSucceed(t *testing.T) {
	var trail []string
	a := &MockStep{name: "A", trail: &trail}
	b := &MockStep{name: "B", trail: &trail}
	a.On("Execute", mock.Anything).Return(nil)
	b.On("Execute", mock.Anything).Return(nil)
	audit := &memoryAudit{}

	err := NewOrchestrator("sub-1", []Step{a, b}, audit).Start(context.Background(), `{"lines":1}`)

	require.NoError(t, err)
	assert.Equal(t, []string{"exec:A", "exec:B"}, trail)
	assert.Equal(t, []string{"STARTED:", "STEP_DONE:A", "STEP_DONE:B", "COMPLETED:"}, statuses(audit.entries))
	assert.Equal(t, `{"lines":1}`, audit.entries[0].Payload)
	a.AssertNotCalled(t, "Compensate", mock.Anything)
}

func TestOrchestrator_FailureCompensatesInReverse(t *testing.T) {
	var trail []string
	a := &MockStep{name: "A", trail: &trail}
	b := &MockStep{name: "B", trail: &trail}
	c := &MockStep{name: "C", trail: &trail}
	d := &MockStep{name: "D", trail: &trail}
	boom := errors.New("boom")
	a.On("Execute", mock.Anything).Return(nil)
	b.On("Execute", mock.Anything).Return(nil)
	c.On("Execute", mock.Anything).Return(boom)
	a.On("Compensate", mock.Anything).Return(nil)
	b.On("Compensate", mock.Anything).Return(errors.New("compensation failed"))
	audit := &memoryAudit{}

	err := NewOrchestrator("sub-2", []Step{a, b, c, d}, audit).Start(context.Background(), "")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"exec:A", "exec:B", "exec:C", "comp:B", "comp:A"}, trail)
	assert.Equal(t, []string{
		"STARTED:", "STEP_DONE:A", "STEP_DONE:B",
		"COMPENSATING:B", "COMPENSATING:A", "FAILED:C",
	}, statuses(audit.entries))
	assert.Equal(t, `["boom"]`, audit.entries[len(audit.entries)-1].Errors)
	c.AssertNotCalled(t, "Compensate", mock.Anything)
}

func TestOrchestrator_NilAudit(t *testing.T) {
	var trail []string
	a := &MockStep{name: "A", trail: &trail}
	a.On("Execute", mock.Anything).Return(nil)

	err := NewOrchestrator("sub-3", []Step{a}, nil).Start(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []string{"exec:A"}, trail)
}

func TestOrchestrator_AuditFailureIsIgnored(t *testing.T) {
	var trail []string
	a := &MockStep{name: "A", trail: &trail}
	a.On("Execute", mock.Anything).Return(nil)
	audit := &memoryAudit{err: errors.New("disk full")}

	err := NewOrchestrator("sub-4", []Step{a}, audit).Start(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, audit.entries)
}
