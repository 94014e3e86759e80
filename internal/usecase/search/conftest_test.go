package search

import (
	"context"
	"time"

	"github.com/northgate-partners/webcore/internal/domain"
)

// mockInsights implements InsightRepository for tests.
type mockInsights struct {
	rows  []domain.Insight
	err   error
	calls int
	lastQ string
}

func (m *mockInsights) Search(_ context.Context, q string, _ domain.DateRange) ([]domain.Insight, error) {
	m.calls++
	m.lastQ = q
	return m.rows, m.err
}

// mockCredentials implements CredentialRepository for tests.
type mockCredentials struct {
	rows     []domain.Credential
	err      error
	calls    int
	lastQ    string
	lastFilt domain.CredentialFilters
}

func (m *mockCredentials) Search(_ context.Context, q string, f domain.CredentialFilters) ([]domain.Credential, error) {
	m.calls++
	m.lastQ = q
	m.lastFilt = f
	return m.rows, m.err
}

func insightRow(id, title string) domain.Insight {
	return domain.Insight{
		ID:          id,
		Title:       title,
		IsPublished: true,
		PublishedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func credentialRow(id, title, category string) domain.Credential {
	return domain.Credential{
		ID:       id,
		Title:    title,
		Category: category,
		IsActive: true,
	}
}

func newTestService(ins *mockInsights, creds *mockCredentials) *Service {
	return New(ins, creds, domain.DefaultScoreWeights())
}
