package domain

import "strings"

// MinQueryLength is the shortest trimmed query that reaches the store.
// Shorter queries get a guidance hint instead of a search.
const MinQueryLength = 2

// ResultType discriminates which record a Result carries.
type ResultType string

const (
	// TypeInsight tags results backed by an Insight.
	TypeInsight ResultType = "insight"
	// TypeCredential tags results backed by a Credential.
	TypeCredential ResultType = "credential"
)

// Result is one scored search hit. Exactly one of Insight/Credential is
// set, per Type. Score is only meaningful for the query that produced it
// and is never persisted or cached.
type Result struct {
	Type       ResultType
	Score      int
	Insight    *Insight
	Credential *Credential
}

// ScoreWeights holds the per-field relevance weights used to rank unified
// search results. Injected at construction so alternate weightings can be
// exercised without code changes.
type ScoreWeights struct {
	TitleExact    int
	TitleMatch    int
	ExcerptMatch  int
	ContentMatch  int
	AuthorMatch   int
	CategoryMatch int
}

// DefaultScoreWeights returns the production weighting: a title substring
// match dominates, an exact title match adds a bonus on top of it, and
// secondary fields contribute small additive weight.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TitleExact:    5,
		TitleMatch:    10,
		ExcerptMatch:  3,
		ContentMatch:  2,
		AuthorMatch:   2,
		CategoryMatch: 2,
	}
}

// ScoreInsight computes the additive weighted score of an insight against
// a query. Matching is case-insensitive substring; scores accumulate
// across fields.
func (w ScoreWeights) ScoreInsight(in *Insight, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	score := 0
	title := strings.ToLower(in.Title)
	if strings.Contains(title, q) {
		score += w.TitleMatch
	}
	if title == q {
		score += w.TitleExact
	}
	if containsFold(in.Excerpt, q) {
		score += w.ExcerptMatch
	}
	if containsFold(in.Content, q) {
		score += w.ContentMatch
	}
	if containsFold(in.Author, q) {
		score += w.AuthorMatch
	}
	return score
}

// ScoreCredential computes the additive weighted score of a credential
// against a query. Credentials have fewer searchable fields than insights,
// so they structurally cap lower for multi-field matches; that asymmetry
// is intentional and preserved.
func (w ScoreWeights) ScoreCredential(c *Credential, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	score := 0
	title := strings.ToLower(c.Title)
	if strings.Contains(title, q) {
		score += w.TitleMatch
	}
	if title == q {
		score += w.TitleExact
	}
	if containsFold(c.Category, q) {
		score += w.CategoryMatch
	}
	return score
}

// containsFold reports whether s contains the already-lowercased q.
func containsFold(s, q string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), q)
}
