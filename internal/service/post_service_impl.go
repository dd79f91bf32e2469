package service

import (
	"context"
	"errors"
	"strings"

	slug "github.com/goliatone/go-slug"
	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
)

// postServiceImpl is the production implementation of PostService.
type postServiceImpl struct {
	repo repository.PostRepository
}

// NewPostService creates a PostService backed by the given repository.
func NewPostService(repo repository.PostRepository) PostService {
	return &postServiceImpl{repo: repo}
}

// List returns posts according to the given filter/pagination options.
func (s *postServiceImpl) List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, error) {
	return s.repo.List(ctx, opts)
}

// Get resolves a post by ID first, then by slug. Public URLs use slugs;
// the dashboard uses IDs.
func (s *postServiceImpl) Get(ctx context.Context, idOrSlug string) (*model.Post, error) {
	if looksLikeUUID(idOrSlug) {
		post, err := s.repo.GetByID(ctx, idOrSlug)
		if err == nil || !errors.Is(err, repository.ErrNotFound) {
			return post, err
		}
	}
	return s.repo.GetBySlug(ctx, idOrSlug)
}

// Create persists a new post, deriving the slug from the title when none is
// supplied. Collisions surface as ErrSlugTaken, never auto-suffixed.
func (s *postServiceImpl) Create(ctx context.Context, in PostInput) (*model.Post, error) {
	normalized, err := normalizeSlug(in.Slug, in.Title)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:      in.Title,
		Slug:       normalized,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Status:     in.Status,
		AuthorID:   in.AuthorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return post, nil
}

// Update overwrites the mutable fields of a post.
func (s *postServiceImpl) Update(ctx context.Context, id string, in PostInput) (*model.Post, error) {
	normalized, err := normalizeSlug(in.Slug, in.Title)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:         id,
		Title:      in.Title,
		Slug:       normalized,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Status:     in.Status,
	}
	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return post, nil
}

// Delete removes a post outright.
func (s *postServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// normalizeSlug returns the normalized supplied slug, or one derived from the
// title: lowercase, non-alphanumeric runs collapsed to a single hyphen,
// leading/trailing hyphens stripped.
func normalizeSlug(supplied, title string) (string, error) {
	source := supplied
	if strings.TrimSpace(source) == "" {
		source = title
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return "", ErrInvalidSlug
	}
	return normalized, nil
}

// looksLikeUUID is a cheap shape check so slugs never hit the uuid-typed
// primary key column.
func looksLikeUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, r := range s {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return false
			}
		default:
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
				return false
			}
		}
	}
	return true
}
