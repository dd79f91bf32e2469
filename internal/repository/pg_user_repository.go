package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/launchkit/backend/internal/model"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository backed by the given pool.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ UserRepository = (*PgUserRepository)(nil)

const userSelectCols = `id, email, COALESCE(name, ''), COALESCE(google_id, ''),
	COALESCE(stripe_customer_id, ''), COALESCE(stripe_subscription_id, ''),
	COALESCE(subscription_status, ''), COALESCE(subscription_plan, ''),
	current_period_end, cancel_at_period_end, created_at, updated_at`

func scanUser(scan func(...any) error) (*model.User, error) {
	u := &model.User{}
	var sub model.Subscription
	err := scan(
		&u.ID, &u.Email, &u.Name, &u.GoogleID,
		&sub.CustomerID, &sub.SubscriptionID,
		&sub.Status, &sub.Plan,
		&sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sub.CustomerID != "" || sub.SubscriptionID != "" {
		u.Subscription = &sub
	}
	return u, nil
}

func (r *PgUserRepository) findBy(ctx context.Context, where string, arg any) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE `+where, arg).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// FindByID returns the user with the given id or ErrNotFound.
func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id = $1", id)
}

// FindByEmail returns the user with the given email or ErrNotFound.
func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email = $1", email)
}

// FindByGoogleID returns the user with the given Google subject or ErrNotFound.
func (r *PgUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return r.findBy(ctx, "google_id = $1", googleID)
}

// FindByStripeCustomerID resolves a user from the customer reference carried
// by webhook events. Returns ErrNotFound for an unknown customer.
func (r *PgUserRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	return r.findBy(ctx, "stripe_customer_id = $1", customerID)
}

// Create inserts a user and populates user.ID and timestamps.
// A duplicate email surfaces as ErrDuplicate.
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, google_id)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		 RETURNING id, created_at, updated_at`,
		user.Email, user.Name, user.GoogleID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// UpdateSubscription overwrites the stored subscription snapshot.
// A nil sub clears every snapshot column.
func (r *PgUserRepository) UpdateSubscription(ctx context.Context, userID string, sub *model.Subscription) error {
	if sub == nil {
		sub = &model.Subscription{}
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET stripe_customer_id = NULLIF($1, ''),
		     stripe_subscription_id = NULLIF($2, ''),
		     subscription_status = NULLIF($3, ''),
		     subscription_plan = NULLIF($4, ''),
		     current_period_end = $5,
		     cancel_at_period_end = $6,
		     updated_at = now()
		 WHERE id = $7`,
		sub.CustomerID, sub.SubscriptionID, sub.Status, sub.Plan,
		sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
