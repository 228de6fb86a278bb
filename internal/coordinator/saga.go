package coordinator

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"
)

var tracer = otel.Tracer("storefront/coordinator")

// Step represents a single unit of work in a submission.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps.
type Orchestrator struct {
	submissionID string
	steps        []Step
	audit        auditlog.Repository
}

// NewOrchestrator builds an orchestrator for one submission. audit may be nil.
func NewOrchestrator(submissionID string, steps []Step, audit auditlog.Repository) *Orchestrator {
	return &Orchestrator{submissionID: submissionID, steps: steps, audit: audit}
}

// Start runs the steps sequentially.
// If a step fails, it triggers the compensation of all previously successful steps
// and returns the step's error unchanged.
func (o *Orchestrator) Start(ctx context.Context, payload string) error {
	ctx, span := tracer.Start(ctx, "submission", trace.WithAttributes(
		attribute.String("submission.id", o.submissionID),
	))
	defer span.End()

	o.record(ctx, auditlog.StatusStarted, "", payload, nil)

	var successfulSteps []Step
	for _, step := range o.steps {
		slog.InfoContext(ctx, "executing step", "submission_id", o.submissionID, "step", step.Name())
		if err := o.execute(ctx, step); err != nil {
			slog.ErrorContext(ctx, "step failed, starting rollback",
				"submission_id", o.submissionID, "step", step.Name(), "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			o.rollback(ctx, successfulSteps)
			o.record(ctx, auditlog.StatusFailed, step.Name(), "", []string{err.Error()})
			return err
		}
		o.record(ctx, auditlog.StatusStepDone, step.Name(), "", nil)
		// Track successful step for potential compensation (LIFO)
		successfulSteps = append(successfulSteps, step)
	}

	o.record(ctx, auditlog.StatusCompleted, "", "", nil)
	slog.InfoContext(ctx, "submission completed", "submission_id", o.submissionID)
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, step Step) error {
	ctx, span := tracer.Start(ctx, step.Name())
	defer span.End()

	if err := step.Execute(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.WarnContext(ctx, "compensating step", "submission_id", o.submissionID, "step", step.Name())
		o.record(ctx, auditlog.StatusCompensating, step.Name(), "", nil)
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate step",
				"submission_id", o.submissionID, "step", step.Name(), "error", err)
		}
	}
}

// record appends to the audit log. Audit failures never fail a submission.
func (o *Orchestrator) record(ctx context.Context, status auditlog.Status, step, payload string, errs []string) {
	if o.audit == nil {
		return
	}
	entry := auditlog.NewEntry(ctx, o.submissionID, status, step, payload, errs)
	if err := o.audit.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "audit log write failed",
			"submission_id", o.submissionID, "status", status, "error", err)
	}
}
