package search

import (
	"context"

	"github.com/northgate-partners/webcore/internal/domain"
)

// InsightRepository returns the full set of published insights matching a
// query, newest first.
type InsightRepository interface {
	Search(ctx context.Context, query string, dr domain.DateRange) ([]domain.Insight, error)
}

// CredentialRepository returns the full set of active credentials
// matching a query, by sort order.
type CredentialRepository interface {
	Search(ctx context.Context, query string, f domain.CredentialFilters) ([]domain.Credential, error)
}
