// Package shell owns the state of one storefront session and sequences the
// checkout submission.
//
// Every event is a method call processed under the shell's mutex. Submit
// releases the mutex while the order notification is in flight and guards
// against re-entry with a busy flag, so the cart stays usable during the
// call.
package shell

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/catalog"
	"github.com/jcmexdev/storefront/internal/checkout"
	"github.com/jcmexdev/storefront/internal/coordinator"
	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"
	"github.com/jcmexdev/storefront/internal/navigation"
	"github.com/jcmexdev/storefront/internal/notifier"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
)

// Receipt describes a delivered order.
type Receipt struct {
	SubmissionID string
	Order        checkout.OrderRecord
	Total        decimal.Decimal
}

type Option func(*Shell)

// WithCache enables idempotency keys on Submit. An unfinished key is held for
// pendingTTL, a delivered one for doneTTL.
func WithCache(c cache.Cache, pendingTTL, doneTTL time.Duration) Option {
	return func(s *Shell) {
		s.cache = c
		s.pendingTTL = pendingTTL
		s.doneTTL = doneTTL
	}
}

// WithAuditLog records every submission transition in repo.
func WithAuditLog(repo auditlog.Repository) Option {
	return func(s *Shell) { s.audit = repo }
}

type Shell struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	cart     *cart.Store
	nav      *navigation.Navigator
	draft    checkout.Form
	notice   string
	notifier notifier.Notifier

	// inFlight is the id of the outstanding submission, empty when idle.
	inFlight string

	cache      cache.Cache
	pendingTTL time.Duration
	doneTTL    time.Duration
	audit      auditlog.Repository
}

// New returns a shell with an empty cart on the Products screen.
func New(cat *catalog.Catalog, n notifier.Notifier, opts ...Option) *Shell {
	s := &Shell{
		catalog:  cat,
		cart:     cart.NewStore(),
		nav:      navigation.New(),
		draft:    checkout.Form{PaymentMethod: string(checkout.Cash)},
		notifier: n,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shell) Catalog() []catalog.Item {
	return s.catalog.Items()
}

// View returns a snapshot of the session.
func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// AddToCart adds one unit of the catalog item id.
func (s *Shell) AddToCart(id int) (View, error) {
	item, err := s.catalog.Lookup(id)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(item)
	return s.viewLocked(), nil
}

// SetQuantity replaces a line quantity; zero or less removes the line.
func (s *Shell) SetQuantity(id, quantity int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(id, quantity)
	return s.viewLocked()
}

func (s *Shell) Navigate(target navigation.Screen) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Go(target)
	return s.viewLocked()
}

func (s *Shell) Back() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Back()
	return s.viewLocked()
}

// UpdateDraft replaces the checkout draft. Nothing is validated until Submit.
func (s *Shell) UpdateDraft(f checkout.Form) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = f
	return s.viewLocked()
}

// Submit validates the draft, notifies the order and, on success, clears the
// cart, moves to Success and resets the draft in one step. On a notification
// failure the cart and the draft are kept, a notice is stored and the shell
// stays on Checkout.
//
// idempotencyKey is optional; it only has an effect when a cache is set.
func (s *Shell) Submit(ctx context.Context, idempotencyKey string) (Receipt, error) {
	s.mu.Lock()
	if s.nav.Current() != navigation.Checkout {
		s.mu.Unlock()
		return Receipt{}, ErrNotAtCheckout
	}
	if s.inFlight != "" {
		s.mu.Unlock()
		return Receipt{}, ErrBusy
	}
	order, err := checkout.BuildOrder(s.draft, s.cart.Len())
	if err != nil {
		s.mu.Unlock()
		return Receipt{}, err
	}
	lines := s.cart.Lines()
	submissionID := uuid.NewString()
	s.inFlight = submissionID
	s.notice = ""
	s.mu.Unlock()

	// The outcome must be applied even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	reserve := coordinator.NewReserveSubmissionStep(s.cache, idempotencyKey, s.pendingTTL, s.doneTTL)
	steps := []coordinator.Step{
		reserve,
		coordinator.NewNotifyOrderStep(s.notifier, order, lines),
		coordinator.NewCommitCheckoutStep(s.commit, reserve),
	}

	err = coordinator.NewOrchestrator(submissionID, steps, s.audit).Start(ctx, summary(order, lines))

	s.mu.Lock()
	defer s.mu.Unlock()
	// Busy is held until the owning Submit returns, including the audit writes
	// that follow the commit.
	if s.inFlight == submissionID {
		s.inFlight = ""
	}

	switch {
	case err == nil:
		return Receipt{
			SubmissionID: submissionID,
			Order:        order,
			Total:        cart.Summarize(lines).Total,
		}, nil
	case errors.Is(err, coordinator.ErrSubmissionPending):
		return Receipt{}, ErrBusy
	case errors.Is(err, coordinator.ErrDuplicateSubmission):
		return Receipt{}, ErrDuplicateSubmission
	case errors.Is(err, coordinator.ErrReservationUnavailable):
		s.notice = NoticeSendFailed
		return Receipt{}, ErrReservationUnavailable
	}

	slog.ErrorContext(ctx, "order submission failed", "submission_id", submissionID, "error", err)
	s.notice = NoticeSendFailed
	return Receipt{}, err
}

// commit applies a delivered order. It clears the whole cart, including
// items added while the notification was in flight; those were never part of
// the delivered order and the buyer starts over from Success.
func (s *Shell) commit(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.nav.Go(navigation.Success)
	s.draft = checkout.Form{PaymentMethod: string(checkout.Cash)}
	return nil
}

// summary is the audit payload: counts and money, no buyer data.
func summary(order checkout.OrderRecord, lines []cart.Line) string {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	b, err := json.Marshal(map[string]any{
		"lines":   len(lines),
		"items":   count,
		"total":   cart.Money(cart.Summarize(lines).Total),
		"payment": order.PaymentMethod,
	})
	if err != nil {
		return ""
	}
	return string(b)
}
