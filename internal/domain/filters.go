package domain

import "time"

// DateRange optionally bounds insight results by publication date.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// CredentialFilters optionally narrows credentials by exact type or
// category match, independent of the free-text predicate.
type CredentialFilters struct {
	Type     string
	Category string
}
