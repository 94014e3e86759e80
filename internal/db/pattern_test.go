package db

import "testing"

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "growth strategy", want: "growth strategy"},
		{name: "commas become spaces", input: "growth,strategy,uae", want: "growth strategy uae"},
		{name: "whitespace collapses", input: "  growth   strategy ", want: "growth strategy"},
		{name: "only commas", input: ",,,", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeQuery(tt.input); got != tt.want {
				t.Fatalf("SanitizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "strategy", want: "%strategy%"},
		{name: "percent escaped", input: "100% growth", want: `%100\% growth%`},
		{name: "underscore escaped", input: "snake_case", want: `%snake\_case%`},
		{name: "backslash escaped", input: `a\b`, want: `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LikePattern(tt.input); got != tt.want {
				t.Fatalf("LikePattern(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
