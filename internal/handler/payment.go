package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/futureed/backend/internal/service"
	"github.com/futureed/backend/pkg/payment"
)

// maxWebhookBytes matches the payload ceiling Stripe documents for events.
const maxWebhookBytes = 65536

// PaymentHandler serves the fee checkout endpoints.
type PaymentHandler struct {
	svc           *service.CheckoutService
	webhookSecret string
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.CheckoutService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{svc: svc, webhookSecret: webhookSecret}
}

// CreateCheckoutSession handles POST /create-checkout-session and
// POST /functions/v1/create-checkout-session. The body is ignored; only the
// Origin header is read.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.CreateCheckoutSession(r.Context(), r.Header.Get("Origin"))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, resp)
}

// Fees handles GET /api/fees.
func (h *PaymentHandler) Fees(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.svc.Fee())
}

// Webhook handles POST /webhooks/stripe. Events are verified and logged only.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecret == "" {
		JSON(w, http.StatusServiceUnavailable, map[string]string{"error": "webhook not configured"})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		JSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}

	event, err := payment.ParseStripeWebhook(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		log.Printf("[Webhook] rejected: %v", err)
		JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		log.Printf("[Webhook] session %s paid (%s, %d %s)", event.SessionID, event.PaymentStatus, event.AmountTotal, event.Currency)
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		log.Printf("[Webhook] session %s not paid (%s)", event.SessionID, event.Type)
	default:
		log.Printf("[Webhook] ignored event %s (%s)", event.ID, event.Type)
	}

	JSON(w, http.StatusOK, map[string]bool{"received": true})
}
