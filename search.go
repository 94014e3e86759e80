package webcore

import "context"

// UnifiedFilter narrows unified search to one entity type
// (SearchInsights/SearchCredentials) or all when empty.
type UnifiedFilter struct {
	Type string
}

// InsightFilter is the (empty) filter for the insight-only controller.
type InsightFilter struct{}

// UnifiedController returns a controller over the unified search endpoint.
func (c *Client) UnifiedController(opts ...ControllerOption) *Controller[UnifiedFilter] {
	fetch := func(ctx context.Context, query string, f UnifiedFilter, page, limit int) (ResultPage, error) {
		resp, err := c.Search(ctx, query, SearchOptions{Type: f.Type, Page: page, Limit: limit})
		if err != nil {
			return ResultPage{}, err
		}
		b := resp.Breakdown
		return ResultPage{
			Results:    resp.Data,
			Total:      resp.Total,
			Page:       resp.Page,
			Limit:      resp.Limit,
			TotalPages: resp.TotalPages,
			Breakdown:  &b,
			Message:    resp.Message,
		}, nil
	}
	return NewController(fetch, opts...)
}

// InsightsController returns a controller over the insight-only endpoint.
func (c *Client) InsightsController(opts ...ControllerOption) *Controller[InsightFilter] {
	fetch := func(ctx context.Context, query string, _ InsightFilter, page, limit int) (ResultPage, error) {
		resp, err := c.SearchInsights(ctx, query, page, limit)
		if err != nil {
			return ResultPage{}, err
		}
		results := make([]SearchResult, len(resp.Data))
		for i, in := range resp.Data {
			results[i] = insightResult(in)
		}
		return ResultPage{
			Results:    results,
			Total:      resp.Total,
			Page:       resp.Page,
			Limit:      resp.Limit,
			TotalPages: resp.TotalPages,
			Message:    resp.Message,
		}, nil
	}
	return NewController(fetch, opts...)
}

// CredentialsController returns a controller over the credential-only
// endpoint.
func (c *Client) CredentialsController(opts ...ControllerOption) *Controller[CredentialFilter] {
	fetch := func(ctx context.Context, query string, f CredentialFilter, page, limit int) (ResultPage, error) {
		resp, err := c.SearchCredentials(ctx, query, f, page, limit)
		if err != nil {
			return ResultPage{}, err
		}
		results := make([]SearchResult, len(resp.Data))
		for i, cred := range resp.Data {
			results[i] = credentialResult(cred)
		}
		return ResultPage{
			Results:    results,
			Total:      resp.Total,
			Page:       resp.Page,
			Limit:      resp.Limit,
			TotalPages: resp.TotalPages,
			Message:    resp.Message,
		}, nil
	}
	return NewController(fetch, opts...)
}

func insightResult(in Insight) SearchResult {
	return SearchResult{
		Type:          TypeInsight,
		ID:            in.ID,
		Title:         in.Title,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		Author:        in.Author,
		ImageURL:      in.ImageURL,
		PublishedDate: in.PublishedDate,
	}
}

func credentialResult(cred Credential) SearchResult {
	so := cred.SortOrder
	return SearchResult{
		Type:           TypeCredential,
		ID:             cred.ID,
		Title:          cred.Title,
		Category:       cred.Category,
		CredentialType: cred.Type,
		SortOrder:      &so,
	}
}
