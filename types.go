package webcore

// Result type discriminators for unified search hits.
const (
	TypeInsight    = "insight"
	TypeCredential = "credential"
)

// Entity type filters for unified search.
const (
	SearchAll         = "all"
	SearchInsights    = "insights"
	SearchCredentials = "credentials"
)

// SearchResult is one scored hit from the unified search. Fields that do
// not apply to the hit's type are empty.
type SearchResult struct {
	Type           string `json:"_type"`
	Score          int    `json:"_searchScore"`
	ID             string `json:"id"`
	Title          string `json:"title"`
	Excerpt        string `json:"excerpt,omitempty"`
	Content        string `json:"content,omitempty"`
	Author         string `json:"author,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	PublishedDate  string `json:"published_date,omitempty"`
	Category       string `json:"category,omitempty"`
	CredentialType string `json:"type,omitempty"`
	SortOrder      *int   `json:"sort_order,omitempty"`
}

// Insight is one published article row.
type Insight struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Author        string `json:"author"`
	ImageURL      string `json:"image_url,omitempty"`
	PublishedDate string `json:"published_date"`
}

// Credential is one case-study row.
type Credential struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Type      string `json:"type"`
	SortOrder int    `json:"sort_order"`
}

// Breakdown is the pre-pagination per-entity match count.
type Breakdown struct {
	Insights    int `json:"insights"`
	Credentials int `json:"credentials"`
}

// CredentialFilter narrows credential search by exact type or category.
type CredentialFilter struct {
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
}

// SearchResponse is one page of unified search results.
type SearchResponse struct {
	Data       []SearchResult `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Query      string         `json:"query"`
	Type       string         `json:"type"`
	Breakdown  Breakdown      `json:"breakdown"`
	Message    string         `json:"message,omitempty"`
}

// InsightsResponse is one page of insight-only results.
type InsightsResponse struct {
	Data       []Insight `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
	Query      string    `json:"query"`
	Message    string    `json:"message,omitempty"`
}

// CredentialsResponse is one page of credential-only results.
type CredentialsResponse struct {
	Data       []Credential     `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
	Query      string           `json:"query"`
	Filters    CredentialFilter `json:"filters"`
	Message    string           `json:"message,omitempty"`
}

// SearchOptions tunes a unified search call. Zero values fall back to the
// server defaults (type=all, page=1, limit=10).
type SearchOptions struct {
	Type  string
	Page  int
	Limit int
}
