package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
	pkgstripe "github.com/launchkit/backend/pkg/stripe"
)

// billingServiceImpl is the production implementation of BillingService.
type billingServiceImpl struct {
	client      pkgstripe.Client
	userRepo    BillingUserRepo
	eventLedger BillingEventLedger
	prices      PlanPrices
	frontendURL string
}

// NewBillingService creates a BillingService.
func NewBillingService(client pkgstripe.Client, userRepo BillingUserRepo, eventLedger BillingEventLedger, prices PlanPrices, frontendURL string) BillingService {
	return &billingServiceImpl{
		client:      client,
		userRepo:    userRepo,
		eventLedger: eventLedger,
		prices:      prices,
		frontendURL: frontendURL,
	}
}

// CreateCheckout resolves the plan via the static lookup table and creates a
// hosted checkout session. Unknown plans fail before any external call.
func (s *billingServiceImpl) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	priceID, ok := s.prices.PriceForPlan(req.Plan)
	if !ok {
		return "", ErrUnknownPlan
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	return s.client.CreateCheckoutSession(ctx, pkgstripe.CheckoutParams{
		PriceID:       priceID,
		CustomerEmail: user.Email,
		UserID:        user.ID,
		SuccessURL:    s.frontendURL + "/dashboard/billing?checkout=success",
		CancelURL:     s.frontendURL + "/pricing",
	})
}

// ProcessWebhook verifies the signature, parses the event, skips replays, and
// dispatches on the event type. Unhandled types are logged and acknowledged.
func (s *billingServiceImpl) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) (WebhookResult, error) {
	if err := s.client.VerifyWebhookSignature(payload, sigHeader); err != nil {
		return WebhookResult{}, fmt.Errorf("%w: %s", ErrBadSignature, err)
	}

	event, err := s.client.ParseWebhookEvent(payload)
	if err != nil {
		return WebhookResult{}, err
	}
	result := WebhookResult{EventID: event.ID, EventType: event.Type}

	switch event.Type {
	case "checkout.session.completed",
		"customer.subscription.updated",
		"customer.subscription.deleted",
		"invoice.paid":
	default:
		slog.Info("stripe webhook: ignoring event", "type", event.Type, "id", event.ID)
		result.Outcome = "ignored"
		return result, nil
	}

	// A replayed delivery of the same event is acknowledged and skipped.
	if err := s.eventLedger.MarkProcessed(ctx, event.ID, event.Type); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			slog.Info("stripe webhook: duplicate event", "type", event.Type, "id", event.ID)
			result.Outcome = "duplicate"
			return result, nil
		}
		return result, err
	}

	var applyErr error
	switch event.Type {
	case "checkout.session.completed":
		applyErr = s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		applyErr = s.handleSubscriptionChanged(ctx, event.Data.Object.ID)
	case "customer.subscription.deleted":
		applyErr = s.handleSubscriptionDeleted(ctx, event)
	case "invoice.paid":
		applyErr = s.handleSubscriptionChanged(ctx, event.Data.Object.Subscription)
	}
	if applyErr != nil {
		// Release the ledger entry so the provider's retry is applied
		// instead of skipped as a replay.
		if err := s.eventLedger.Forget(ctx, event.ID); err != nil {
			slog.Error("stripe webhook: forget event failed", "error", err, "id", event.ID)
		}
		return result, applyErr
	}
	result.Outcome = "applied"
	return result, nil
}

// handleCheckoutCompleted resolves the purchasing user from the session's
// client_reference_id (falling back to metadata), fetches the new
// subscription, and overwrites the snapshot.
func (s *billingServiceImpl) handleCheckoutCompleted(ctx context.Context, event pkgstripe.WebhookEvent) error {
	obj := event.Data.Object
	userID := obj.ClientReferenceID
	if userID == "" {
		userID = obj.Metadata["user_id"]
	}
	if userID == "" {
		return errors.New("stripe webhook: checkout.session.completed missing user reference")
	}
	if obj.Subscription == "" {
		return errors.New("stripe webhook: checkout.session.completed missing subscription")
	}

	sub, err := s.client.GetSubscription(ctx, obj.Subscription)
	if err != nil {
		return fmt.Errorf("fetch subscription: %w", err)
	}
	return s.userRepo.UpdateSubscription(ctx, userID, s.snapshot(sub))
}

// handleSubscriptionChanged re-fetches the subscription and overwrites the
// snapshot of whichever user owns the Stripe customer.
func (s *billingServiceImpl) handleSubscriptionChanged(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return errors.New("stripe webhook: event missing subscription")
	}

	sub, err := s.client.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("fetch subscription: %w", err)
	}

	user, err := s.userRepo.FindByStripeCustomerID(ctx, sub.CustomerID)
	if err != nil {
		return fmt.Errorf("resolve customer %s: %w", sub.CustomerID, err)
	}
	return s.userRepo.UpdateSubscription(ctx, user.ID, s.snapshot(sub))
}

// handleSubscriptionDeleted writes the terminal state straight from the event
// object; the subscription may no longer be fetchable.
func (s *billingServiceImpl) handleSubscriptionDeleted(ctx context.Context, event pkgstripe.WebhookEvent) error {
	obj := event.Data.Object
	if obj.Customer == "" {
		return errors.New("stripe webhook: customer.subscription.deleted missing customer")
	}

	user, err := s.userRepo.FindByStripeCustomerID(ctx, obj.Customer)
	if err != nil {
		return fmt.Errorf("resolve customer %s: %w", obj.Customer, err)
	}

	status := obj.Status
	if status == "" {
		status = "canceled"
	}
	return s.userRepo.UpdateSubscription(ctx, user.ID, &model.Subscription{
		CustomerID:        obj.Customer,
		SubscriptionID:    obj.ID,
		Status:            status,
		Plan:              s.prices.PlanForPrice(obj.PriceID()),
		CurrentPeriodEnd:  unixToTime(obj.CurrentPeriodEnd),
		CancelAtPeriodEnd: obj.CancelAtPeriodEnd,
	})
}

// snapshot converts a fetched Stripe subscription into the stored form.
func (s *billingServiceImpl) snapshot(sub pkgstripe.Subscription) *model.Subscription {
	return &model.Subscription{
		CustomerID:        sub.CustomerID,
		SubscriptionID:    sub.ID,
		Status:            sub.Status,
		Plan:              s.prices.PlanForPrice(sub.PriceID),
		CurrentPeriodEnd:  unixToTime(sub.CurrentPeriodEnd),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
}

func unixToTime(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
