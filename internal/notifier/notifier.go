// Package notifier reports completed orders to an external chat channel.
//
// Every implementation collapses its failure modes (serialization, transport,
// non-success status) into a single *NotificationError. Nothing here retries.
package notifier

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/checkout"
)

// Notifier delivers one order summary.
type Notifier interface {
	Notify(ctx context.Context, order checkout.OrderRecord, lines []cart.Line) error
}

// NotificationError is the only error a Notifier returns.
type NotificationError struct {
	Reason string
	Err    error
}

func (e *NotificationError) Error() string {
	if e.Err == nil {
		return "notification failed: " + e.Reason
	}
	return "notification failed: " + e.Reason + ": " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error { return e.Err }

func fail(reason string, err error) error {
	return &NotificationError{Reason: reason, Err: err}
}

// IsNotification reports whether err is, or wraps, a NotificationError.
func IsNotification(err error) bool {
	var n *NotificationError
	return errors.As(err, &n)
}
