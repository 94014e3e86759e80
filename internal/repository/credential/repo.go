package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
)

const pgSyntaxError = "42601"

// querier is the slice of the connection pool the repo needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo searches the credentials collection. Read-only.
type Repo struct {
	pool querier
}

// New creates a credential search repository.
func New(pool querier) *Repo {
	return &Repo{pool: pool}
}

// Search returns the full set of active credentials matching the query as
// a case-insensitive substring of title or category, ordered by
// sort_order ascending then creation time descending.
func (r *Repo) Search(ctx context.Context, query string, f domain.CredentialFilters) ([]domain.Credential, error) {
	sql, args := buildSearchQuery(query, f)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Credential
	for rows.Next() {
		var c domain.Credential
		c.IsActive = true
		if err := rows.Scan(&c.ID, &c.Title, &c.Category, &c.Type, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListActive returns every active credential in display order. Used by
// the sitemap generator.
func (r *Repo) ListActive(ctx context.Context) ([]domain.Credential, error) {
	const sql = `SELECT id, title, COALESCE(category, ''), COALESCE(type, ''), sort_order, created_at
FROM credentials WHERE is_active ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Credential
	for rows.Next() {
		var c domain.Credential
		c.IsActive = true
		if err := rows.Scan(&c.ID, &c.Title, &c.Category, &c.Type, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func buildSearchQuery(query string, f domain.CredentialFilters) (string, []any) {
	sql := `SELECT id, title, COALESCE(category, ''), COALESCE(type, ''), sort_order, created_at
FROM credentials
WHERE is_active
  AND (title ILIKE $1 OR category ILIKE $1)`
	args := []any{db.LikePattern(query)}

	if f.Type != "" {
		args = append(args, f.Type)
		sql += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		sql += fmt.Sprintf(" AND category = $%d", len(args))
	}

	sql += " ORDER BY sort_order ASC, created_at DESC"
	return sql, args
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgSyntaxError {
		return domain.NewEntityError("credentials", domain.ErrInvalidQuery)
	}
	return domain.NewEntityError("credentials", fmt.Errorf("%w: %v", domain.ErrQueryFailed, err))
}
