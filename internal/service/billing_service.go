package service

import (
	"context"
	"errors"

	"github.com/launchkit/backend/internal/model"
)

// Billing errors surfaced to handlers.
var (
	// ErrUnknownPlan means the requested plan has no configured price; the
	// handler must return 400 without any external API call.
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrBadSignature means webhook signature verification failed; the
	// handler must return 400 and nothing may be written to the database.
	ErrBadSignature = errors.New("webhook signature verification failed")
)

// CheckoutRequest is the input for creating a hosted checkout session.
type CheckoutRequest struct {
	UserID string
	Plan   string // "starter" | "pro"
}

// WebhookResult reports what ProcessWebhook did with an event.
type WebhookResult struct {
	EventID   string
	EventType string
	// Outcome is "applied", "duplicate", or "ignored".
	Outcome string
}

// BillingUserRepo is the minimal user surface the billing service needs.
type BillingUserRepo interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error)
	UpdateSubscription(ctx context.Context, userID string, sub *model.Subscription) error
}

// BillingEventLedger records processed webhook event IDs for replay protection.
type BillingEventLedger interface {
	MarkProcessed(ctx context.Context, eventID, eventType string) error
	Forget(ctx context.Context, eventID string) error
}

// PlanPrices resolves plan names to Stripe price IDs and back.
type PlanPrices interface {
	PriceForPlan(plan string) (string, bool)
	PlanForPrice(priceID string) string
}

// BillingService bridges checkout to Stripe and reconciles webhook callbacks
// into the per-user subscription snapshot.
type BillingService interface {
	// CreateCheckout resolves the plan to a price and creates a hosted
	// checkout session, returning its URL.
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
	// ProcessWebhook verifies the signature, deduplicates by event ID, and
	// applies the event. Signature failures return ErrBadSignature before
	// anything touches the database.
	ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) (WebhookResult, error)
}
