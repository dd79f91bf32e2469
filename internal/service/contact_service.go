package service

import (
	"context"

	"github.com/launchkit/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions and
// admin triage.
type ContactService interface {
	// Submit stores a new contact message. The msg.ID and timestamps will be
	// populated by the implementation; status is always "new" on creation.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	// UpdateStatus overwrites the status of a message and returns the updated
	// record. There are no forbidden transitions.
	UpdateStatus(ctx context.Context, id, status string) (*model.ContactMessage, error)
}
