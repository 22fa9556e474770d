package academy

import (
	"context"
	"errors"
)

// ErrNoSessionID is returned when the backend answers without a session id.
var ErrNoSessionID = errors.New("checkout session id missing")

// CreateCheckoutSession asks the backend for a hosted checkout session and
// returns its id, ready to hand to Stripe's redirect. Each call yields a new
// session.
func (c *Client) CreateCheckoutSession(ctx context.Context) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/functions/v1/create-checkout-session", nil, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", ErrNoSessionID
	}
	return out.ID, nil
}
