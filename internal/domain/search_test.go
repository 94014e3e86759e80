package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreInsight(t *testing.T) {
	w := DefaultScoreWeights()

	tests := []struct {
		name    string
		insight Insight
		query   string
		want    int
	}{
		{
			name:    "title substring only",
			insight: Insight{Title: "Growth Strategy in UAE"},
			query:   "growth strategy",
			want:    10,
		},
		{
			name:    "exact title adds bonus on top of substring",
			insight: Insight{Title: "Growth Strategy"},
			query:   "growth strategy",
			want:    15,
		},
		{
			name:    "exact title is case-insensitive",
			insight: Insight{Title: "GROWTH STRATEGY"},
			query:   "Growth Strategy",
			want:    15,
		},
		{
			name: "all fields accumulate",
			insight: Insight{
				Title:   "Digital transformation",
				Excerpt: "digital first",
				Content: "a digital roadmap",
				Author:  "Digital Team",
			},
			query: "digital",
			want:  10 + 3 + 2 + 2,
		},
		{
			name:    "excerpt only",
			insight: Insight{Title: "Annual outlook", Excerpt: "supply chains"},
			query:   "supply",
			want:    3,
		},
		{
			name:    "no match scores zero",
			insight: Insight{Title: "Annual outlook"},
			query:   "xyzzynotfound",
			want:    0,
		},
		{
			name:    "blank query scores zero",
			insight: Insight{Title: "anything"},
			query:   "   ",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, w.ScoreInsight(&tt.insight, tt.query))
		})
	}
}

func TestScoreCredential(t *testing.T) {
	w := DefaultScoreWeights()

	tests := []struct {
		name  string
		cred  Credential
		query string
		want  int
	}{
		{
			name:  "title substring",
			cred:  Credential{Title: "Growth Strategy Workshop"},
			query: "growth strategy",
			want:  10,
		},
		{
			name:  "title and category",
			cred:  Credential{Title: "Strategy Workshop", Category: "Business Strategy"},
			query: "strategy",
			want:  12,
		},
		{
			name:  "category only",
			cred:  Credential{Title: "Market entry", Category: "Retail Banking"},
			query: "banking",
			want:  2,
		},
		{
			name:  "no match",
			cred:  Credential{Title: "Market entry"},
			query: "telecom",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, w.ScoreCredential(&tt.cred, tt.query))
		})
	}
}

// An exact title match must outrank a partial title match, which must
// outrank a secondary-field-only match.
func TestScoreMonotonicity(t *testing.T) {
	w := DefaultScoreWeights()
	q := "growth strategy"

	exact := w.ScoreInsight(&Insight{Title: "Growth Strategy"}, q)
	partial := w.ScoreInsight(&Insight{Title: "Growth Strategy in UAE"}, q)
	secondary := w.ScoreInsight(&Insight{Title: "Outlook", Content: "growth strategy notes"}, q)

	require.Greater(t, exact, partial)
	require.Greater(t, partial, secondary)
	require.Greater(t, secondary, 0)
}

func TestScoreWeightsAreInjectable(t *testing.T) {
	w := ScoreWeights{TitleMatch: 1, CategoryMatch: 100}
	got := w.ScoreCredential(&Credential{Title: "alpha", Category: "alpha group"}, "alpha")
	require.Equal(t, 101, got)
}
