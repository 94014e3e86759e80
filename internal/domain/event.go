package domain

import "time"

// Event is one captured analytics event (page view, interaction).
type Event struct {
	ID         string
	Name       string
	Path       string
	Referrer   string
	SessionID  string
	OccurredAt time.Time
}

// ContactSubmission is one contact-form submission. Phone is stored in
// E.164 after normalization.
type ContactSubmission struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Message    string
	ReceivedAt time.Time
}
