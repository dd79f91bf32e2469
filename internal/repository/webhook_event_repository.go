package repository

import "context"

// WebhookEventRepository records Stripe event IDs that have already been
// processed, so re-delivered events can be acknowledged without reapplying.
type WebhookEventRepository interface {
	// MarkProcessed inserts the event ID. Returns ErrDuplicate when the
	// event was seen before.
	MarkProcessed(ctx context.Context, eventID, eventType string) error

	// Forget removes the event ID so a redelivery can be applied after a
	// failed attempt.
	Forget(ctx context.Context, eventID string) error
}
