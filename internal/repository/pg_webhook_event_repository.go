package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgWebhookEventRepository is the PostgreSQL implementation of
// WebhookEventRepository.
type PgWebhookEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgWebhookEventRepository creates a PgWebhookEventRepository backed by the
// given pool.
func NewPgWebhookEventRepository(pool *pgxpool.Pool) *PgWebhookEventRepository {
	return &PgWebhookEventRepository{pool: pool}
}

var _ WebhookEventRepository = (*PgWebhookEventRepository)(nil)

// MarkProcessed inserts the event ID, relying on the primary key to reject
// replays with ErrDuplicate.
func (r *PgWebhookEventRepository) MarkProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO webhook_events (event_id, event_type) VALUES ($1, $2)`,
		eventID, eventType,
	)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Forget removes the ledger entry after a failed apply so the provider's
// redelivery is not mistaken for a replay.
func (r *PgWebhookEventRepository) Forget(ctx context.Context, eventID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM webhook_events WHERE event_id = $1`, eventID)
	return err
}
