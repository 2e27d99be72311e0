// Package handoff builds the order summary handed to the customer's
// messaging app. The application never talks to the WhatsApp API itself:
// it records the order, then gives the customer a prefilled message and
// a wa.me link to send it. Delivery is therefore best-effort and the
// order stays durable whether or not the message is ever sent.
package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"souqly/internal/models"
)

// Message is the hand-off payload: the plain-text summary and the
// click-to-chat link that opens it in WhatsApp.
type Message struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// Reference returns the customer-facing order reference: the first 8 hex
// characters of the order id, upper-cased.
func Reference(orderID string) string {
	hex := strings.ReplaceAll(orderID, "-", "")
	if len(hex) > 8 {
		hex = hex[:8]
	}
	return strings.ToUpper(hex)
}

// Build renders the hand-off message for an order. The exact framing is
// cosmetic, but every contract field is present: truncated reference,
// human-readable date, service name, category, total with currency and
// promo indicator, customer email/phone, and the free-text details.
func Build(order *models.Order, whatsAppNumber string) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", Reference(order.ID))
	fmt.Fprintf(&b, "Date: %s\n\n", order.CreatedAt.Format("02 Jan 2006 15:04"))

	fmt.Fprintf(&b, "Service: %s\n", order.ServiceName)
	fmt.Fprintf(&b, "Category: %s\n", order.Category)
	if order.Subcategory != "" {
		fmt.Fprintf(&b, "Section: %s\n", order.Subcategory)
	}

	total := fmt.Sprintf("%s %s", order.Price.StringFixed(2), order.Currency)
	if order.PromoApplied {
		total += " (promo)"
	}
	fmt.Fprintf(&b, "Total: %s\n\n", total)

	fmt.Fprintf(&b, "Email: %s\n", order.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n", order.CustomerPhone)
	if order.CustomerInfo != "" {
		fmt.Fprintf(&b, "\nDetails:\n%s\n", order.CustomerInfo)
	}

	text := b.String()
	return Message{
		Text: text,
		Link: chatLink(whatsAppNumber, text),
	}
}

// chatLink builds a wa.me click-to-chat URL with the message prefilled.
func chatLink(number, text string) string {
	number = strings.TrimLeft(strings.TrimSpace(number), "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(text))
}

// SupportLink builds a bare contact link without a prefilled order, used
// by the contact-support flow.
func SupportLink(number string) string {
	number = strings.TrimLeft(strings.TrimSpace(number), "+")
	return "https://wa.me/" + number
}
