package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/launchkit/backend/internal/metrics"
	"github.com/launchkit/backend/internal/service"
	"github.com/launchkit/backend/pkg/auth"
)

// BillingHandler handles checkout session creation and Stripe webhooks.
type BillingHandler struct {
	svc     service.BillingService
	metrics *metrics.Metrics // optional, nil = skip
}

// NewBillingHandler creates a BillingHandler.
func NewBillingHandler(svc service.BillingService, m *metrics.Metrics) *BillingHandler {
	return &BillingHandler{svc: svc, metrics: m}
}

// checkoutRequest is the expected JSON body for POST /api/checkout.
type checkoutRequest struct {
	Plan string `json:"plan"`
}

// Checkout handles POST /api/checkout (user session required). The plan is
// resolved through the static lookup table; unknown plans never reach Stripe.
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.Plan == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "plan_required"})
		return
	}

	url, err := h.svc.CreateCheckout(r.Context(), service.CheckoutRequest{
		UserID: userID,
		Plan:   req.Plan,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownPlan) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown_plan"})
			return
		}
		slog.Error("checkout failed", "error", err, "user_id", userID, "plan", req.Plan)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "checkout_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// Webhook handles POST /api/webhooks/stripe. A bad signature is rejected with
// 400 before anything touches the database; a processing failure returns 500
// so Stripe's own retry mechanism re-delivers the event.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing_signature"})
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "read_body_failed"})
		return
	}

	result, err := h.svc.ProcessWebhook(r.Context(), payload, sigHeader)
	if err != nil {
		if errors.Is(err, service.ErrBadSignature) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "signature_verification_failed"})
			return
		}
		slog.Error("webhook processing failed", "error", err,
			"event_id", result.EventID, "event_type", result.EventType)
		if h.metrics != nil {
			h.metrics.ObserveWebhook(result.EventType, "error")
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "webhook_processing_failed"})
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveWebhook(result.EventType, result.Outcome)
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
