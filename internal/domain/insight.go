package domain

import "time"

// Insight is a published article record. The CMS admin flows own the
// lifecycle; this service only reads.
type Insight struct {
	ID          string
	Title       string
	Excerpt     string
	Content     string
	Author      string
	ImageURL    string
	IsPublished bool
	PublishedAt time.Time
}
