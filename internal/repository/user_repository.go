package repository

import (
	"context"

	"github.com/launchkit/backend/internal/model"
)

// UserRepository defines the persistence interface for dashboard users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	// UpdateSubscription overwrites the subscription snapshot wholesale.
	UpdateSubscription(ctx context.Context, userID string, sub *model.Subscription) error
}
