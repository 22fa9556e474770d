package domain

// Fixed commercial terms of the fee checkout. Changing any of these requires a
// redeploy; callers cannot override them.
const (
	FeeCurrency    = "inr"
	FeeUnitAmount  = int64(50000) // ₹500.00 in paise
	FeeQuantity    = int64(1)
	FeeProductName = "College Fee Payment"
)

// Redirect query suffixes appended to the caller's origin.
const (
	PaymentSuccessPath   = "/?payment=success"
	PaymentCancelledPath = "/?payment=cancelled"
)

// Error messages surfaced by the checkout endpoint.
const (
	MsgStripeNotConfigured = "Stripe is not configured"
	MsgCheckoutFailed      = "Something went wrong with Stripe Checkout"
)

// LineItem is one priced entry within a checkout session.
type LineItem struct {
	Currency   string `json:"currency"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unitAmount"` // minor currency units
	Quantity   int64  `json:"quantity"`
}

// FeeLineItem returns the single line item every checkout session is created with.
func FeeLineItem() LineItem {
	return LineItem{
		Currency:   FeeCurrency,
		Name:       FeeProductName,
		UnitAmount: FeeUnitAmount,
		Quantity:   FeeQuantity,
	}
}

// CheckoutSessionResponse is the API response of the checkout endpoint.
type CheckoutSessionResponse struct {
	ID string `json:"id"`
}

// FeeResponse describes the fee a checkout session will charge.
type FeeResponse struct {
	LineItem
	Display string `json:"display"`
}
