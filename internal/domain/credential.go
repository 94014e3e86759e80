package domain

import "time"

// Credential types as stored by the CMS.
const (
	CredentialTypeIndustry = "Industry"
	CredentialTypeService  = "Service"
)

// Credential is a short case-study blurb tagged by industry or service.
type Credential struct {
	ID        string
	Title     string
	Category  string
	Type      string
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
}
