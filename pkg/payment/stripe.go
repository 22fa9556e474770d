package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeGateway creates hosted checkout sessions through the Stripe API.
type StripeGateway struct {
	client session.Client
}

// StripeOption customizes the Stripe backend.
type StripeOption func(*stripe.BackendConfig)

// WithAPIURL points the gateway at a different API host (stripe-mock, tests).
func WithAPIURL(url string) StripeOption {
	return func(c *stripe.BackendConfig) {
		c.URL = stripe.String(url)
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) StripeOption {
	return func(c *stripe.BackendConfig) {
		c.HTTPClient = hc
	}
}

// NewStripeGateway builds a gateway authenticated with secretKey.
// Network retries are disabled: a failed call surfaces to the caller, and a
// retried request creates a fresh session.
func NewStripeGateway(secretKey string, opts ...StripeOption) *StripeGateway {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &StripeGateway{
		client: session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Key: secretKey,
		},
	}
}

// CreateSession implements PaymentGateway.
func (g *StripeGateway) CreateSession(ctx context.Context, p SessionParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(p.Mode),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	for _, item := range p.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(item.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	params.Context = ctx

	s, err := g.client.New(params)
	if err != nil {
		return nil, stripeProviderError(err)
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

func stripeProviderError(err error) *ProviderError {
	msg := err.Error()
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		msg = stripeErr.Msg
	}
	return &ProviderError{Provider: "stripe", Message: msg, Err: err}
}
