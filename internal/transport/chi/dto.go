package chi

import (
	"time"

	"github.com/northgate-partners/webcore/internal/domain"
	searchuc "github.com/northgate-partners/webcore/internal/usecase/search"
)

// resultDTO flattens a scored hit for the wire. Entity-specific fields
// are omitted when they do not apply to the hit's type.
type resultDTO struct {
	Type          string `json:"_type"`
	Score         int    `json:"_searchScore"`
	ID            string `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt,omitempty"`
	Content       string `json:"content,omitempty"`
	Author        string `json:"author,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Category      string `json:"category,omitempty"`
	CredType      string `json:"type,omitempty"`
	SortOrder     *int   `json:"sort_order,omitempty"`
}

type insightDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Author        string `json:"author"`
	ImageURL      string `json:"image_url,omitempty"`
	PublishedDate string `json:"published_date"`
}

type credentialDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Type      string `json:"type"`
	SortOrder int    `json:"sort_order"`
}

type breakdownDTO struct {
	Insights    int `json:"insights"`
	Credentials int `json:"credentials"`
}

type filtersDTO struct {
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
}

type unifiedSearchResponse struct {
	Data       []resultDTO  `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
	Query      string       `json:"query"`
	Type       string       `json:"type"`
	Breakdown  breakdownDTO `json:"breakdown"`
	Message    string       `json:"message,omitempty"`
}

type insightsSearchResponse struct {
	Data       []insightDTO `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
	Query      string       `json:"query"`
	Message    string       `json:"message,omitempty"`
}

type credentialsSearchResponse struct {
	Data       []credentialDTO `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Query      string          `json:"query"`
	Filters    filtersDTO      `json:"filters"`
	Message    string          `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func insightToDTO(in *domain.Insight) insightDTO {
	return insightDTO{
		ID:            in.ID,
		Title:         in.Title,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		Author:        in.Author,
		ImageURL:      in.ImageURL,
		PublishedDate: in.PublishedAt.UTC().Format(time.RFC3339),
	}
}

func credentialToDTO(c *domain.Credential) credentialDTO {
	return credentialDTO{
		ID:        c.ID,
		Title:     c.Title,
		Category:  c.Category,
		Type:      c.Type,
		SortOrder: c.SortOrder,
	}
}

func resultToDTO(res *domain.Result) resultDTO {
	dto := resultDTO{
		Type:  string(res.Type),
		Score: res.Score,
	}
	switch res.Type {
	case domain.TypeInsight:
		in := insightToDTO(res.Insight)
		dto.ID = in.ID
		dto.Title = in.Title
		dto.Excerpt = in.Excerpt
		dto.Content = in.Content
		dto.Author = in.Author
		dto.ImageURL = in.ImageURL
		dto.PublishedDate = in.PublishedDate
	case domain.TypeCredential:
		c := res.Credential
		dto.ID = c.ID
		dto.Title = c.Title
		dto.Category = c.Category
		dto.CredType = c.Type
		so := c.SortOrder
		dto.SortOrder = &so
	}
	return dto
}

func unifiedToDTO(resp searchuc.Response, query string) unifiedSearchResponse {
	data := make([]resultDTO, len(resp.Results))
	for i := range resp.Results {
		data[i] = resultToDTO(&resp.Results[i])
	}
	return unifiedSearchResponse{
		Data:       data,
		Total:      resp.Total,
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalPages: resp.TotalPages,
		Query:      query,
		Type:       resp.Type,
		Breakdown: breakdownDTO{
			Insights:    resp.Breakdown.Insights,
			Credentials: resp.Breakdown.Credentials,
		},
		Message: resp.Message,
	}
}

func insightsToDTO(resp searchuc.InsightsResponse, query string) insightsSearchResponse {
	data := make([]insightDTO, len(resp.Insights))
	for i := range resp.Insights {
		data[i] = insightToDTO(&resp.Insights[i])
	}
	return insightsSearchResponse{
		Data:       data,
		Total:      resp.Total,
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalPages: resp.TotalPages,
		Query:      query,
		Message:    resp.Message,
	}
}

func credentialsToDTO(resp searchuc.CredentialsResponse, query string) credentialsSearchResponse {
	data := make([]credentialDTO, len(resp.Credentials))
	for i := range resp.Credentials {
		data[i] = credentialToDTO(&resp.Credentials[i])
	}
	return credentialsSearchResponse{
		Data:       data,
		Total:      resp.Total,
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalPages: resp.TotalPages,
		Query:      query,
		Filters: filtersDTO{
			Type:     resp.Filters.Type,
			Category: resp.Filters.Category,
		},
		Message: resp.Message,
	}
}
