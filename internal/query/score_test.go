package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

func TestScoreProject(t *testing.T) {
	base := dataset.Project{
		Name:         "Weather API",
		Description:  "Forecast aggregation service",
		Technologies: []string{"Go", "Redis"},
		Tags:         []string{"caching", "backend"},
		Category:     dataset.CategoryAPI,
		Impact:       dataset.ImpactMedium,
	}

	tests := []struct {
		name   string
		impact string
		query  string
		want   int
	}{
		{"name only", "", "weather", WeightProjectName},
		{"description only", "", "aggregation", WeightProjectDescription},
		{"technology only", "", "redis", WeightProjectTechnology},
		{"tag only", "", "caching", WeightProjectTag},
		{"name and category", "", "api", WeightProjectName + WeightProjectCategory},
		{"case and whitespace", "", "  WEATHER ", WeightProjectName},
		{"no match", "", "kotlin", 0},
		{"high impact bonus on match", dataset.ImpactHigh, "redis", WeightProjectTechnology + BonusHighImpact},
		{"no bonus without match", dataset.ImpactHigh, "kotlin", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			if tt.impact != "" {
				p.Impact = tt.impact
			}
			assert.Equal(t, tt.want, ScoreProject(&p, tt.query))
		})
	}
}

func TestScoreProjectAdditiveAcrossFields(t *testing.T) {
	p := dataset.Project{
		Name:         "Python Toolkit",
		Technologies: []string{"Python"},
		Impact:       dataset.ImpactLow,
	}
	assert.Equal(t, 90, ScoreProject(&p, "python"))
}

func TestScoreBlog(t *testing.T) {
	b := dataset.BlogPost{
		Title:       "Go Generics in Practice",
		URL:         "https://blog.test/generics",
		Description: "Type parameters explained",
	}

	assert.Equal(t, WeightBlogTitle+WeightBlogURL, ScoreBlog(&b, "generics"))
	assert.Equal(t, WeightBlogDescription, ScoreBlog(&b, "type parameters"))
	assert.Equal(t, WeightBlogURL, ScoreBlog(&b, "blog.test"))
	assert.Equal(t, 0, ScoreBlog(&b, "rust"))
}
