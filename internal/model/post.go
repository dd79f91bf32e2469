package model

import "time"

// Post statuses. Publication is a status flip, not a workflow.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// ValidPostStatus reports whether s is a member of the status enum.
func ValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post is a blog post managed from the admin dashboard.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	CoverImage string    `json:"cover_image,omitempty"`
	Status     string    `json:"status"` // "draft" | "published"
	AuthorID   string    `json:"author_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PostListOptions carries filter and pagination parameters for listing posts.
type PostListOptions struct {
	// Status filters by post status: "", "all", "draft", "published".
	Status string
	Limit  int
	Offset int
}
