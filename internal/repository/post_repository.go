package repository

import (
	"context"

	"github.com/launchkit/backend/internal/model"
)

// PostRepository defines the persistence interface for blog posts.
type PostRepository interface {
	List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	// Create returns ErrDuplicate when the slug is already taken.
	Create(ctx context.Context, post *model.Post) error
	// Update returns ErrNotFound for an unknown id and ErrDuplicate on a
	// slug collision.
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}
