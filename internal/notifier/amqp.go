package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/checkout"
)

// Publisher is the part of *amqp.Channel the AMQP notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ Notifier = (*AMQPNotifier)(nil)

// AMQPNotifier publishes the webhook payload to a queue for a relay worker.
type AMQPNotifier struct {
	publisher Publisher
	queue     string
	identity  Identity
	now       func() time.Time
}

// NewAMQPNotifier publishes to queue through the default exchange.
func NewAMQPNotifier(p Publisher, queue string, id Identity) *AMQPNotifier {
	return &AMQPNotifier{publisher: p, queue: queue, identity: id, now: time.Now}
}

// DeclareQueue makes sure the durable order queue exists.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	return err
}

// Notify publishes one persistent JSON message.
func (a *AMQPNotifier) Notify(ctx context.Context, order checkout.OrderRecord, lines []cart.Line) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "notifier.amqp")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	sentAt := a.now()
	body, err := json.Marshal(BuildPayload(a.identity, order, lines, sentAt))
	if err != nil {
		return fail("encode payload", err)
	}

	err = a.publisher.PublishWithContext(ctx,
		"",      // exchange
		a.queue, // routing key (queue name)
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    sentAt,
			Body:         body,
		},
	)
	if err != nil {
		return fail("publish", err)
	}

	slog.InfoContext(ctx, "order published", "queue", a.queue, "lines", len(lines))
	return nil
}
