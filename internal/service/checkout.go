package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/futureed/backend/internal/domain"
	"github.com/futureed/backend/pkg/payment"
)

// CheckoutOptions configures CheckoutService.
type CheckoutOptions struct {
	// SecretKey is the provider credential. Empty means payments are not configured.
	SecretKey string
	// FallbackOrigin builds redirect URLs when the request carries no Origin.
	FallbackOrigin string
	// Timeout bounds a single provider call.
	Timeout time.Duration
	// ExposeProviderErrors passes the provider's message to the caller instead
	// of the generic checkout failure message.
	ExposeProviderErrors bool
}

// CheckoutService creates hosted checkout sessions for the fixed college fee.
type CheckoutService struct {
	gateway payment.PaymentGateway
	opts    CheckoutOptions
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(gateway payment.PaymentGateway, opts CheckoutOptions) *CheckoutService {
	opts.FallbackOrigin = strings.TrimRight(opts.FallbackOrigin, "/")
	return &CheckoutService{gateway: gateway, opts: opts}
}

// Configured reports whether a provider credential is present.
func (s *CheckoutService) Configured() bool {
	return s.opts.SecretKey != "" && s.gateway != nil
}

// CreateCheckoutSession requests a one-time payment session for the fee and
// returns the provider's session id unchanged. Every call creates a new
// session; nothing is deduplicated or stored.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, origin string) (*domain.CheckoutSessionResponse, error) {
	if !s.Configured() {
		return nil, domain.ErrConfiguration(domain.MsgStripeNotConfigured)
	}

	params := s.SessionParams(origin)

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	sess, err := s.gateway.CreateSession(ctx, params)
	if err != nil {
		log.Printf("[Checkout] provider error: %v", err)
		return nil, domain.ErrProvider(s.providerMessage(err), err)
	}
	if sess == nil || sess.ID == "" {
		return nil, domain.ErrProvider(domain.MsgCheckoutFailed, errors.New("provider returned no session id"))
	}

	return &domain.CheckoutSessionResponse{ID: sess.ID}, nil
}

// SessionParams builds the provider request for a caller origin.
func (s *CheckoutService) SessionParams(origin string) payment.SessionParams {
	base := strings.TrimRight(strings.TrimSpace(origin), "/")
	if base == "" {
		base = s.opts.FallbackOrigin
	}

	item := domain.FeeLineItem()
	return payment.SessionParams{
		Mode: payment.ModePayment,
		LineItems: []payment.LineItem{{
			Currency:   item.Currency,
			Name:       item.Name,
			UnitAmount: item.UnitAmount,
			Quantity:   item.Quantity,
		}},
		SuccessURL: base + domain.PaymentSuccessPath,
		CancelURL:  base + domain.PaymentCancelledPath,
	}
}

func (s *CheckoutService) providerMessage(err error) string {
	if !s.opts.ExposeProviderErrors {
		return domain.MsgCheckoutFailed
	}
	var perr *payment.ProviderError
	if errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	return domain.MsgCheckoutFailed
}

// Fee describes the line item every session charges.
func (s *CheckoutService) Fee() *domain.FeeResponse {
	item := domain.FeeLineItem()
	return &domain.FeeResponse{
		LineItem: item,
		Display:  formatMinorUnits(item.UnitAmount, item.Currency),
	}
}

func formatMinorUnits(amount int64, currency string) string {
	symbol := strings.ToUpper(currency) + " "
	if strings.EqualFold(currency, "inr") {
		symbol = "₹"
	}
	return fmt.Sprintf("%s%d.%02d", symbol, amount/100, amount%100)
}
