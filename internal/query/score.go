package query

import (
	"strings"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// Project field weights.
const (
	WeightProjectName        = 50
	WeightProjectDescription = 30
	WeightProjectTechnology  = 40
	WeightProjectTag         = 35
	WeightProjectCategory    = 25
	BonusHighImpact          = 5
)

// Blog field weights.
const (
	WeightBlogTitle       = 50
	WeightBlogDescription = 30
	WeightBlogURL         = 20
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsNormalized(field, normalizedQuery string) bool {
	return strings.Contains(normalize(field), normalizedQuery)
}

func anyContains(fields []string, normalizedQuery string) bool {
	for _, f := range fields {
		if containsNormalized(f, normalizedQuery) {
			return true
		}
	}
	return false
}

// ScoreProject returns the relevance of p for query. Each matching field adds
// its weight once. High-impact projects get a flat bonus, but only when at
// least one field matched, so a project unrelated to the query scores 0.
// Callers must not score an empty query.
func ScoreProject(p *dataset.Project, query string) int {
	return scoreProject(p, normalize(query))
}

func scoreProject(p *dataset.Project, q string) int {
	score := 0
	if containsNormalized(p.Name, q) {
		score += WeightProjectName
	}
	if containsNormalized(p.Description, q) {
		score += WeightProjectDescription
	}
	if anyContains(p.Technologies, q) {
		score += WeightProjectTechnology
	}
	if anyContains(p.Tags, q) {
		score += WeightProjectTag
	}
	if containsNormalized(p.Category, q) {
		score += WeightProjectCategory
	}
	if score > 0 && p.Impact == dataset.ImpactHigh {
		score += BonusHighImpact
	}
	return score
}

// ScoreBlog returns the relevance of b for query.
// Callers must not score an empty query.
func ScoreBlog(b *dataset.BlogPost, query string) int {
	return scoreBlog(b, normalize(query))
}

func scoreBlog(b *dataset.BlogPost, q string) int {
	score := 0
	if containsNormalized(b.Title, q) {
		score += WeightBlogTitle
	}
	if containsNormalized(b.Description, q) {
		score += WeightBlogDescription
	}
	if containsNormalized(b.URL, q) {
		score += WeightBlogURL
	}
	return score
}
