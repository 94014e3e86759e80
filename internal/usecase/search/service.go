package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/domain"
	"github.com/northgate-partners/webcore/internal/logger"
	"github.com/northgate-partners/webcore/internal/metrics"
)

// Service is the search gateway: it fans out to the entity searchers,
// scores and merges their rows, and paginates the ranked set. Read-only;
// every request is computed from the store and discarded.
type Service struct {
	insights    InsightRepository
	credentials CredentialRepository
	weights     domain.ScoreWeights
}

// New creates a search service with the given score weights.
func New(insights InsightRepository, credentials CredentialRepository, weights domain.ScoreWeights) *Service {
	return &Service{insights: insights, credentials: credentials, weights: weights}
}

// Search runs a unified search across the entity types selected by
// req.Type. A failure in one entity search degrades that entity to empty
// rather than aborting the other; only a total failure returns an error.
// Blank and too-short queries return a guidance response without touching
// the store.
func (s *Service) Search(ctx context.Context, req Request) (Response, error) {
	page, limit := normalizePage(req.Page, req.Limit)
	typ := req.Type
	if typ != TypeInsights && typ != TypeCredentials {
		typ = TypeAll
	}

	resp := Response{Results: []domain.Result{}, Page: page, Limit: limit, Type: typ}

	q := strings.TrimSpace(req.Query)
	if q == "" {
		resp.Message = MsgEmptyQuery
		return resp, nil
	}
	if len([]rune(q)) < domain.MinQueryLength {
		resp.Message = MsgShortQuery
		return resp, nil
	}

	wantInsights := typ == TypeAll || typ == TypeInsights
	wantCredentials := typ == TypeAll || typ == TypeCredentials

	var (
		wg       sync.WaitGroup
		insRows  []domain.Insight
		insErr   error
		credRows []domain.Credential
		credErr  error
	)
	if wantInsights {
		wg.Add(1)
		go func() {
			defer wg.Done()
			insRows, insErr = s.insights.Search(ctx, q, domain.DateRange{})
		}()
	}
	if wantCredentials {
		wg.Add(1)
		go func() {
			defer wg.Done()
			credRows, credErr = s.credentials.Search(ctx, q, domain.CredentialFilters{})
		}()
	}
	wg.Wait()

	log := logger.FromContext(ctx)
	invoked, failed := 0, 0
	if wantInsights {
		invoked++
		if insErr != nil {
			failed++
			insRows = nil
			log.Warn("insight search degraded", zap.Error(insErr))
			metrics.SearchesTotal.WithLabelValues(TypeInsights, "error").Inc()
		} else {
			metrics.SearchesTotal.WithLabelValues(TypeInsights, "ok").Inc()
		}
	}
	if wantCredentials {
		invoked++
		if credErr != nil {
			failed++
			credRows = nil
			log.Warn("credential search degraded", zap.Error(credErr))
			metrics.SearchesTotal.WithLabelValues(TypeCredentials, "error").Inc()
		} else {
			metrics.SearchesTotal.WithLabelValues(TypeCredentials, "ok").Inc()
		}
	}
	if failed == invoked {
		if insErr != nil {
			return Response{}, insErr
		}
		return Response{}, credErr
	}

	// Concatenation order is insights then credentials; the stable sort
	// preserves it for equal scores, which fixes tie order.
	merged := make([]domain.Result, 0, len(insRows)+len(credRows))
	for i := range insRows {
		merged = append(merged, domain.Result{
			Type:    domain.TypeInsight,
			Score:   s.weights.ScoreInsight(&insRows[i], q),
			Insight: &insRows[i],
		})
	}
	for i := range credRows {
		merged = append(merged, domain.Result{
			Type:       domain.TypeCredential,
			Score:      s.weights.ScoreCredential(&credRows[i], q),
			Credential: &credRows[i],
		})
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })

	resp.Results = slicePage(merged, page, limit)
	resp.Total = len(merged)
	resp.TotalPages = totalPages(len(merged), limit)
	resp.Breakdown = Breakdown{Insights: len(insRows), Credentials: len(credRows)}
	return resp, nil
}

// SearchInsights is the standalone insights-only search with the same
// min-length gate and slice pagination as the unified path.
func (s *Service) SearchInsights(ctx context.Context, query string, page, limit int) (InsightsResponse, error) {
	page, limit = normalizePage(page, limit)
	resp := InsightsResponse{Insights: []domain.Insight{}, Page: page, Limit: limit}

	q := strings.TrimSpace(query)
	if len([]rune(q)) < domain.MinQueryLength {
		resp.Message = MsgShortQuery
		return resp, nil
	}

	rows, err := s.insights.Search(ctx, q, domain.DateRange{})
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(TypeInsights, "error").Inc()
		return InsightsResponse{}, err
	}
	metrics.SearchesTotal.WithLabelValues(TypeInsights, "ok").Inc()

	resp.Insights = slicePage(rows, page, limit)
	resp.Total = len(rows)
	resp.TotalPages = totalPages(len(rows), limit)
	return resp, nil
}

// SearchCredentials is the standalone credentials-only search. The exact
// type/category filters apply independently of the free-text predicate.
func (s *Service) SearchCredentials(
	ctx context.Context, query string, f domain.CredentialFilters, page, limit int,
) (CredentialsResponse, error) {
	page, limit = normalizePage(page, limit)
	resp := CredentialsResponse{Credentials: []domain.Credential{}, Page: page, Limit: limit, Filters: f}

	q := strings.TrimSpace(query)
	if len([]rune(q)) < domain.MinQueryLength {
		resp.Message = MsgShortQuery
		return resp, nil
	}

	rows, err := s.credentials.Search(ctx, q, f)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(TypeCredentials, "error").Inc()
		return CredentialsResponse{}, err
	}
	metrics.SearchesTotal.WithLabelValues(TypeCredentials, "ok").Inc()

	resp.Credentials = slicePage(rows, page, limit)
	resp.Total = len(rows)
	resp.TotalPages = totalPages(len(rows), limit)
	return resp, nil
}
