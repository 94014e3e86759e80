package insight

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
)

// pgSyntaxError is the SQLSTATE the store reports for a malformed query.
const pgSyntaxError = "42601"

// querier is the slice of the connection pool the repo needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo searches the insights collection. Read-only: the CMS owns writes.
type Repo struct {
	pool querier
}

// New creates an insight search repository.
func New(pool querier) *Repo {
	return &Repo{pool: pool}
}

// Search returns the full set of published insights matching the query as
// a case-insensitive substring of title, excerpt, content, or author,
// ordered by publication date descending. The caller slices for
// pagination; the total is the length of the returned set.
func (r *Repo) Search(ctx context.Context, query string, dr domain.DateRange) ([]domain.Insight, error) {
	sql, args := buildSearchQuery(query, dr)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify("insights", err)
	}
	defer rows.Close()

	var out []domain.Insight
	for rows.Next() {
		var in domain.Insight
		in.IsPublished = true
		if err := rows.Scan(
			&in.ID, &in.Title, &in.Excerpt, &in.Content,
			&in.Author, &in.ImageURL, &in.PublishedAt,
		); err != nil {
			return nil, classify("insights", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("insights", err)
	}
	return out, nil
}

// ListPublished returns id and publication date for every published
// insight, newest first. Used by the sitemap generator.
func (r *Repo) ListPublished(ctx context.Context) ([]domain.Insight, error) {
	const sql = `SELECT id, title, published_at FROM insights WHERE is_published ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, classify("insights", err)
	}
	defer rows.Close()

	var out []domain.Insight
	for rows.Next() {
		var in domain.Insight
		in.IsPublished = true
		if err := rows.Scan(&in.ID, &in.Title, &in.PublishedAt); err != nil {
			return nil, classify("insights", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("insights", err)
	}
	return out, nil
}

// buildSearchQuery constructs the predicate. Kept as a pure function so
// the SQL shape is testable without a database.
func buildSearchQuery(query string, dr domain.DateRange) (string, []any) {
	sql := `SELECT id, title, COALESCE(excerpt, ''), COALESCE(content, ''),
	COALESCE(author, ''), COALESCE(image_url, ''), published_at
FROM insights
WHERE is_published
  AND (title ILIKE $1 OR excerpt ILIKE $1 OR content ILIKE $1 OR author ILIKE $1)`
	args := []any{db.LikePattern(query)}

	if dr.From != nil {
		args = append(args, *dr.From)
		sql += fmt.Sprintf(" AND published_at >= $%d", len(args))
	}
	if dr.To != nil {
		args = append(args, *dr.To)
		sql += fmt.Sprintf(" AND published_at <= $%d", len(args))
	}

	sql += " ORDER BY published_at DESC"
	return sql, args
}

// classify converts store errors into the domain taxonomy with entity
// context: syntax rejections surface as ErrInvalidQuery, everything else
// as ErrQueryFailed.
func classify(entity string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgSyntaxError {
		return domain.NewEntityError(entity, domain.ErrInvalidQuery)
	}
	return domain.NewEntityError(entity, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err))
}
