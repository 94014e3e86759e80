package search

import "github.com/northgate-partners/webcore/internal/domain"

// Entity type filter values for the unified search.
const (
	TypeAll         = "all"
	TypeInsights    = "insights"
	TypeCredentials = "credentials"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// User-facing guidance for queries that never reach the store.
const (
	MsgEmptyQuery = "Please enter a search query"
	MsgShortQuery = "Please enter at least 2 characters"
)

// Request carries the unified search parameters.
type Request struct {
	Query string
	Type  string
	Page  int
	Limit int
}

// Breakdown is the pre-pagination match count per entity type.
type Breakdown struct {
	Insights    int
	Credentials int
}

// Response is one page of merged, ranked results.
type Response struct {
	Results    []domain.Result
	Total      int
	Page       int
	Limit      int
	TotalPages int
	Type       string
	Breakdown  Breakdown
	// Message is set instead of results when the query is blank or too
	// short. Not an error state.
	Message string
}

// InsightsResponse is one page of insight-only results.
type InsightsResponse struct {
	Insights   []domain.Insight
	Total      int
	Page       int
	Limit      int
	TotalPages int
	Message    string
}

// CredentialsResponse is one page of credential-only results.
type CredentialsResponse struct {
	Credentials []domain.Credential
	Total       int
	Page        int
	Limit       int
	TotalPages  int
	Filters     domain.CredentialFilters
	Message     string
}

// normalizePage clamps page/limit to sane positive values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// totalPages is ceil(total/limit); zero when nothing matched.
func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// slicePage cuts one page out of the full sorted set: skip
// (page-1)*limit, take limit. Out-of-range pages yield an empty slice.
func slicePage[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
