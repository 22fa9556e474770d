package payment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// WebhookEvent is the subset of a Stripe event the service cares about.
type WebhookEvent struct {
	ID            string
	Type          string
	SessionID     string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

// ParseStripeWebhook verifies the Stripe-Signature header and decodes the event.
func ParseStripeWebhook(payload []byte, signature, secret string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook: %w", err)
	}

	ev := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(ev.Type, "checkout.session.") && event.Data != nil {
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		ev.SessionID = cs.ID
		ev.PaymentStatus = string(cs.PaymentStatus)
		ev.AmountTotal = cs.AmountTotal
		ev.Currency = string(cs.Currency)
	}
	return ev, nil
}
