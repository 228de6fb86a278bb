package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/checkout"
)

const tracerName = "github.com/jcmexdev/storefront/internal/notifier"

// Ensure WebhookNotifier implements the port at compile time.
var _ Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier POSTs the order payload as JSON to a chat webhook.
type WebhookNotifier struct {
	url      string
	identity Identity
	client   *http.Client
	now      func() time.Time
}

// WebhookOption customises a WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithHTTPClient replaces the default traced client.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookNotifier) { w.client = c }
}

// WithClock sets the time source used for the payload timestamp.
func WithClock(now func() time.Time) WebhookOption {
	return func(w *WebhookNotifier) { w.now = now }
}

// NewWebhookNotifier returns a notifier for url. timeout bounds the whole
// request; a timeout surfaces as an ordinary failure.
func NewWebhookNotifier(url string, id Identity, timeout time.Duration, opts ...WebhookOption) *WebhookNotifier {
	w := &WebhookNotifier{
		url:      url,
		identity: id,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Notify sends one order. Any non-2xx status is a failure; the response body
// is only read for diagnostics.
func (w *WebhookNotifier) Notify(ctx context.Context, order checkout.OrderRecord, lines []cart.Line) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "notifier.webhook")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("order.lines", len(lines)))

	body, err := json.Marshal(BuildPayload(w.identity, order, lines, w.now()))
	if err != nil {
		return fail("encode payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fail("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := w.client.Do(req)
	if err != nil {
		return fail("deliver", err)
	}
	defer res.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		slog.ErrorContext(ctx, "webhook rejected order",
			"status", res.StatusCode,
			"body", string(snippet),
		)
		return fail(fmt.Sprintf("webhook responded %s", res.Status), nil)
	}

	slog.InfoContext(ctx, "order sent to webhook", "lines", len(lines), "status", res.StatusCode)
	return nil
}
