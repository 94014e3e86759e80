package db

import "strings"

// SanitizeQuery prepares free text for use in a multi-field OR predicate.
// Commas would split the predicate in the legacy filter syntax, so they
// are replaced with spaces; runs of whitespace collapse to one.
func SanitizeQuery(q string) string {
	q = strings.ReplaceAll(q, ",", " ")
	return strings.Join(strings.Fields(q), " ")
}

// LikePattern wraps a sanitized query in a case-insensitive substring
// pattern, escaping LIKE metacharacters so user input cannot widen the
// match.
func LikePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(SanitizeQuery(q)) + "%"
}
