package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/checkout"
)

const (
	orderTitle  = "New Order"
	accentColor = 0xF97316
	currency    = "€"

	// timestampLayout is ISO-8601 in UTC with millisecond precision.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Identity is how the bot presents itself in the channel.
type Identity struct {
	Username  string
	AvatarURL string
}

// Payload is the chat webhook message body.
type Payload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Embeds    []Embed `json:"embeds"`
}

type Embed struct {
	Title       string       `json:"title"`
	Color       int          `json:"color"`
	Description string       `json:"description"`
	Fields      []EmbedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
	Footer      EmbedFooter  `json:"footer"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// Manifest renders one "<qty>x <name>" row per line, in cart order.
func Manifest(lines []cart.Line) string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = fmt.Sprintf("%dx %s", l.Quantity, l.Item.Name)
	}
	return strings.Join(rows, "\n")
}

// BuildPayload assembles the message for order. The total is derived from
// lines with the same pricing the cart uses.
func BuildPayload(id Identity, order checkout.OrderRecord, lines []cart.Line, sentAt time.Time) Payload {
	total := cart.Summarize(lines).Total
	return Payload{
		Username:  id.Username,
		AvatarURL: id.AvatarURL,
		Embeds: []Embed{{
			Title:       orderTitle,
			Color:       accentColor,
			Description: Manifest(lines),
			Fields: []EmbedField{
				{Name: "Full Name", Value: order.FullName, Inline: true},
				{Name: "Contact", Value: "`" + order.ContactInfo + "`", Inline: true},
				{Name: "Payment", Value: string(order.PaymentMethod), Inline: true},
				{Name: "Total", Value: "**" + cart.Money(total) + currency + "**", Inline: true},
			},
			Timestamp: sentAt.UTC().Format(timestampLayout),
			Footer:    EmbedFooter{Text: orderTitle},
		}},
	}
}
