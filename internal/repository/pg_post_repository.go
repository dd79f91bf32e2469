package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/launchkit/backend/internal/model"
)

// PgPostRepository is the PostgreSQL implementation of PostRepository.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgPostRepository creates a PgPostRepository backed by the given pool.
func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

var _ PostRepository = (*PgPostRepository)(nil)

const postSelectCols = `id, title, slug, excerpt, content, COALESCE(cover_image, ''), status, COALESCE(author_id::text, ''), created_at, updated_at`

func scanPost(scan func(...any) error) (*model.Post, error) {
	p := &model.Post{}
	return p, scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
		&p.CoverImage, &p.Status, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
}

// List returns posts filtered by status, newest first.
func (r *PgPostRepository) List(ctx context.Context, opts model.PostListOptions) ([]*model.Post, error) {
	var conditions []string
	var args []any

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, opts.Limit, opts.Offset)
	limitArg := strconv.Itoa(len(args) - 1)
	offsetArg := strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx,
		`SELECT `+postSelectCols+` FROM posts`+where+
			` ORDER BY created_at DESC LIMIT $`+limitArg+` OFFSET $`+offsetArg,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetByID returns a single post or ErrNotFound.
func (r *PgPostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postSelectCols+` FROM posts WHERE id = $1`, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetBySlug returns a single post by its unique slug or ErrNotFound.
func (r *PgPostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postSelectCols+` FROM posts WHERE slug = $1`, slug).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a post and populates post.ID and timestamps.
// A slug collision surfaces as ErrDuplicate, never as a silent overwrite.
func (r *PgPostRepository) Create(ctx context.Context, post *model.Post) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, slug, excerpt, content, cover_image, status, author_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, '')::uuid)
		 RETURNING id, created_at, updated_at`,
		post.Title, post.Slug, post.Excerpt, post.Content,
		post.CoverImage, post.Status, post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Update overwrites all mutable fields of a post.
func (r *PgPostRepository) Update(ctx context.Context, post *model.Post) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE posts
		 SET title = $1, slug = $2, excerpt = $3, content = $4,
		     cover_image = NULLIF($5, ''), status = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING updated_at`,
		post.Title, post.Slug, post.Excerpt, post.Content,
		post.CoverImage, post.Status, post.ID,
	).Scan(&post.UpdatedAt)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a post outright. Returns ErrNotFound for an unknown id.
func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
