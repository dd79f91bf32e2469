package service

import (
	"context"
	"time"

	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit stores a new contact message. It forces the status to "new" and
// populates CreatedAt/UpdatedAt before persisting.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	now := time.Now().UTC()
	msg.Status = model.ContactStatusNew
	msg.CreatedAt = now
	msg.UpdatedAt = now
	return s.repo.Save(ctx, msg)
}

// List returns contact messages according to the given filter/sort/pagination
// options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}

// UpdateStatus overwrites the status of a contact message and returns the
// updated record.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*model.ContactMessage, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
