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

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactSelectCols = `id, COALESCE(name, ''), email, message, status, created_at, updated_at`

// Save inserts a new contact_messages row and populates msg.ID and timestamps
// from the database RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, message, status)
		 VALUES (NULLIF($1, ''), $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		msg.Name, msg.Email, msg.Message, msg.Status,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

// List returns contact messages filtered by status and search term,
// sorted and paginated by limit/offset. Status "" or "all" returns all.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var conditions []string
	var args []any

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions,
			"(name ILIKE $"+n+" OR email ILIKE $"+n+" OR message ILIKE $"+n+")")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, opts.Limit, opts.Offset)
	limitArg := strconv.Itoa(len(args) - 1)
	offsetArg := strconv.Itoa(len(args))

	query := `SELECT ` + contactSelectCols + ` FROM contact_messages` + where +
		` ORDER BY ` + contactOrderClause(opts.SortBy, opts.Order) +
		` LIMIT $` + limitArg + ` OFFSET $` + offsetArg

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// GetByID returns a single contact message or ErrNotFound.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.pool.QueryRow(ctx,
		`SELECT `+contactSelectCols+` FROM contact_messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateStatus overwrites the status of a contact message.
// Returns ErrNotFound when the id matches no row.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// contactOrderClause maps user-supplied sort parameters to a fixed set of
// ORDER BY clauses. Anything unrecognized falls back to created_at DESC,
// so no user input ever reaches the SQL text.
func contactOrderClause(sortBy, order string) string {
	col := "created_at"
	switch sortBy {
	case "name", "email", "created_at":
		col = sortBy
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// escapeLike escapes LIKE/ILIKE metacharacters in a user-supplied search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
