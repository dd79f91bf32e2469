package service

import (
	"context"
	"errors"

	"github.com/launchkit/backend/internal/model"
)

// Post service errors surfaced to handlers as 400s.
var (
	ErrSlugTaken   = errors.New("slug already taken")
	ErrInvalidSlug = errors.New("slug could not be derived from title")
)

// PostInput carries the mutable fields for creating or updating a post.
// Slug is optional; when empty it is derived from the title.
type PostInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Status     string
	AuthorID   string
}

// PostService defines the business logic for blog posts.
type PostService interface {
	// List returns posts according to the given options.
	List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, error)

	// Get resolves a post by ID or slug.
	Get(ctx context.Context, idOrSlug string) (*model.Post, error)

	// Create persists a new post. A slug collision returns ErrSlugTaken.
	Create(ctx context.Context, in PostInput) (*model.Post, error)

	// Update overwrites the mutable fields of a post.
	Update(ctx context.Context, id string, in PostInput) (*model.Post, error)

	// Delete removes a post outright.
	Delete(ctx context.Context, id string) error
}
