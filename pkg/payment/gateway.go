package payment

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// ModePayment requests a one-time payment session.
const ModePayment = "payment"

// LineItem is one priced entry of a session.
type LineItem struct {
	Currency   string
	Name       string
	UnitAmount int64 // minor currency units
	Quantity   int64
}

// SessionParams describes the hosted checkout session to create.
type SessionParams struct {
	Mode       string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// Session is the provider's answer to a session request.
type Session struct {
	ID  string
	URL string
}

// PaymentGateway defines the interface for payment providers.
type PaymentGateway interface {
	// CreateSession requests a single-use hosted checkout session.
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
}

// ProviderError wraps a failure reported by (or while reaching) a payment provider.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// MockGateway is an offline gateway for local development. Every call yields a
// new session id; nothing leaves the process.
type MockGateway struct {
	calls atomic.Int64
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProviderError{Provider: "mock", Message: err.Error(), Err: err}
	}
	g.calls.Add(1)
	id := "cs_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	return &Session{
		ID:  id,
		URL: "https://checkout.stripe.com/c/pay/" + id,
	}, nil
}

// Calls reports how many sessions the mock has issued.
func (g *MockGateway) Calls() int64 {
	return g.calls.Load()
}
