package repository

import (
	"context"

	"github.com/launchkit/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	// UpdateStatus overwrites the status field unconditionally.
	// Returns ErrNotFound if the id is unknown.
	UpdateStatus(ctx context.Context, id, status string) error
}
