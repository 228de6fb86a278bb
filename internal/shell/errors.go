package shell

import (
	"github.com/go-faster/errors"

	"github.com/jcmexdev/storefront/internal/coordinator"
)

var (
	// ErrBusy rejects a submit while another one is outstanding.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNotAtCheckout rejects a submit from any screen but Checkout.
	ErrNotAtCheckout = errors.New("submit is only available on the checkout screen")
	// ErrDuplicateSubmission rejects a replayed idempotency key.
	ErrDuplicateSubmission = coordinator.ErrDuplicateSubmission
	// ErrReservationUnavailable reports that the idempotency key could not be
	// checked; nothing was sent.
	ErrReservationUnavailable = coordinator.ErrReservationUnavailable
)

// NoticeSendFailed is shown after a failed notification.
const NoticeSendFailed = "We could not send your order. Please try again."
