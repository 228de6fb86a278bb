// Package auditlog defines the submission audit trail.
//
// Every checkout submission is a short saga (reserve, notify, commit). Each
// state transition is appended as one Entry so an operator can see where a
// submission stopped and jump to its distributed trace. Carts themselves are
// never stored here.
package auditlog

import "time"

// Status represents the lifecycle state of a submission.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is a single row in the submission_log table.
type Entry struct {
	// SubmissionID identifies one submit attempt.
	SubmissionID string

	Status Status

	// Step is the name of the step that was just executed or failed.
	Step string

	// Payload is the JSON summary written once with StatusStarted.
	Payload string

	// Errors is a JSON array of failure messages, "[]" when there are none.
	Errors string

	// TraceID and SpanID come from the span active when the entry was built.
	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
