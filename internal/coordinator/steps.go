package coordinator

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-faster/errors"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/checkout"
	"github.com/jcmexdev/storefront/internal/notifier"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
)

var (
	// ErrDuplicateSubmission is returned when an idempotency key has already
	// produced a delivered order.
	ErrDuplicateSubmission = errors.New("submission already completed")
	// ErrSubmissionPending is returned when another request holds the key.
	ErrSubmissionPending = errors.New("submission already in progress")
	// ErrReservationUnavailable is returned when a key is taken but its state
	// cannot be read back.
	ErrReservationUnavailable = errors.New("idempotency reservation unavailable")
)

const (
	reservationPending = "pending"
	reservationDone    = "done"

	// DefaultReservationTTL bounds how long a delivered key is remembered.
	DefaultReservationTTL = 24 * time.Hour
	// DefaultPendingTTL bounds how long an unfinished key blocks retries.
	DefaultPendingTTL = time.Minute
)

// --- ReserveSubmissionStep ---

// ReserveSubmissionStep claims an idempotency key in the cache. Without a
// cache or a key it does nothing.
//
// A pending key expires after pendingTTL so a crashed submission does not
// block its key for long; a delivered key is kept for doneTTL.
type ReserveSubmissionStep struct {
	cache      cache.Cache
	key        string
	pendingTTL time.Duration
	doneTTL    time.Duration
	reserved   bool
}

func NewReserveSubmissionStep(c cache.Cache, idempotencyKey string, pendingTTL, doneTTL time.Duration) *ReserveSubmissionStep {
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	if doneTTL <= 0 {
		doneTTL = DefaultReservationTTL
	}
	s := &ReserveSubmissionStep{cache: c, pendingTTL: pendingTTL, doneTTL: doneTTL}
	if c != nil && idempotencyKey != "" {
		s.key = c.GenerateKey("submit", idempotencyKey)
	}
	return s
}

func (s *ReserveSubmissionStep) Name() string { return "Reserve_Submission_Step" }

func (s *ReserveSubmissionStep) Execute(ctx context.Context) error {
	if s.key == "" {
		return nil
	}

	ok, err := s.cache.SetNX(ctx, s.key, reservationPending, s.pendingTTL)
	if err != nil {
		// An unreachable cache must not block orders.
		slog.WarnContext(ctx, "idempotency cache unavailable, continuing without reservation",
			"key", s.key, "error", err)
		return nil
	}
	if ok {
		s.reserved = true
		return nil
	}

	state, err := s.cache.Get(ctx, s.key)
	if err != nil {
		slog.WarnContext(ctx, "failed to read reservation", "key", s.key, "error", err)
		return errors.Wrap(ErrReservationUnavailable, err.Error())
	}
	if state == reservationDone {
		return ErrDuplicateSubmission
	}
	return ErrSubmissionPending
}

func (s *ReserveSubmissionStep) Compensate(ctx context.Context) error {
	if !s.reserved {
		return nil
	}
	s.reserved = false
	return s.cache.Delete(ctx, s.key)
}

// Complete marks the reservation as delivered so replays are rejected.
func (s *ReserveSubmissionStep) Complete(ctx context.Context) error {
	if !s.reserved {
		return nil
	}
	return s.cache.Set(ctx, s.key, reservationDone, s.doneTTL)
}

// --- NotifyOrderStep ---

type NotifyOrderStep struct {
	notifier notifier.Notifier
	order    checkout.OrderRecord
	lines    []cart.Line
}

func NewNotifyOrderStep(n notifier.Notifier, order checkout.OrderRecord, lines []cart.Line) *NotifyOrderStep {
	return &NotifyOrderStep{notifier: n, order: order, lines: lines}
}

func (s *NotifyOrderStep) Name() string { return "Notify_Order_Step" }

func (s *NotifyOrderStep) Execute(ctx context.Context) error {
	return s.notifier.Notify(ctx, s.order, s.lines)
}

// Compensate is a no-op: a delivered chat message cannot be recalled.
func (s *NotifyOrderStep) Compensate(ctx context.Context) error {
	return nil
}

// --- CommitCheckoutStep ---

// CommitCheckoutStep applies the successful outcome to the caller's state and
// then completes the reservation, if any.
type CommitCheckoutStep struct {
	commit      func(ctx context.Context) error
	reservation *ReserveSubmissionStep
}

func NewCommitCheckoutStep(commit func(ctx context.Context) error, reservation *ReserveSubmissionStep) *CommitCheckoutStep {
	return &CommitCheckoutStep{commit: commit, reservation: reservation}
}

func (s *CommitCheckoutStep) Name() string { return "Commit_Checkout_Step" }

func (s *CommitCheckoutStep) Execute(ctx context.Context) error {
	if err := s.commit(ctx); err != nil {
		return errors.Wrap(err, "commit checkout")
	}
	if s.reservation == nil {
		return nil
	}
	if err := s.reservation.Complete(ctx); err != nil {
		slog.WarnContext(ctx, "failed to mark reservation done", "error", err)
	}
	return nil
}

// Compensate is empty as it's the last step.
func (s *CommitCheckoutStep) Compensate(ctx context.Context) error {
	return nil
}
