package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
)

// executor is the slice of the connection pool the repo needs.
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repo persists contact-form submissions. This is the only table the
// service writes.
type Repo struct {
	pool executor
}

// New creates a contact submission repository.
func New(pool executor) *Repo {
	return &Repo{pool: pool}
}

// Insert stores one submission.
func (r *Repo) Insert(ctx context.Context, sub domain.ContactSubmission) error {
	const sql = `INSERT INTO contact_submissions (id, name, email, phone, message, received_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.pool.Exec(ctx, sql,
		sub.ID, sub.Name, sub.Email, sub.Phone, sub.Message, sub.ReceivedAt,
	); err != nil {
		return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("contact submission: %w", err)}
	}
	return nil
}
