package model

import "time"

// Contact message statuses. Any status may be set from any other status;
// there is no transition table.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ValidContactStatus reports whether s is a member of the status enum.
func ValidContactStatus(s string) bool {
	return s == ContactStatusNew || s == ContactStatusRead || s == ContactStatusReplied
}

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // "new" | "read" | "replied"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactListOptions carries filter, sort, and pagination parameters for
// listing contact messages.
type ContactListOptions struct {
	// Status filters by message status: "", "all", "new", "read", "replied".
	// Empty string and "all" return all messages.
	Status string
	// Search is a case-insensitive substring match across name, email, and
	// message.
	Search string
	// SortBy is one of "created_at", "name", "email". Defaults to created_at.
	SortBy string
	// Order is "asc" or "desc". Defaults to desc.
	Order  string
	Limit  int
	Offset int
}
