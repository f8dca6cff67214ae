package query

import (
	"github.com/khanglvm/portfolio-mcp/internal/dataset"
	"github.com/khanglvm/portfolio-mcp/internal/logging"
)

// staticSource serves fixed collections, or err when set.
type staticSource struct {
	projects *dataset.ProjectCollection
	blogs    *dataset.BlogCollection
	err      error
}

func (s *staticSource) Projects() (*dataset.ProjectCollection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.projects, nil
}

func (s *staticSource) Blogs() (*dataset.BlogCollection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.blogs, nil
}

func fixtureProjects() *dataset.ProjectCollection {
	return &dataset.ProjectCollection{
		Projects: []dataset.Project{
			{
				ID:           "alpha-api",
				Name:         "Alpha API",
				Description:  "Gateway service",
				Technologies: []string{"Go", "Redis"},
				Tags:         []string{"backend"},
				Category:     dataset.CategoryAPI,
				Status:       dataset.StatusProduction,
				Impact:       dataset.ImpactHigh,
				Created:      "2024-01-10",
			},
			{
				ID:           "py-tool",
				Name:         "Data Cruncher",
				Description:  "Batch jobs",
				Technologies: []string{"Python"},
				Tags:         []string{"etl"},
				Category:     dataset.CategoryUtility,
				Status:       dataset.StatusDevelopment,
				Impact:       dataset.ImpactMedium,
				Created:      "2023-06-01",
			},
			{
				ID:           "ml-model",
				Name:         "Forecast Model",
				Description:  "Python forecasting",
				Technologies: []string{"PyTorch"},
				Tags:         []string{"python", "ml"},
				Category:     dataset.CategoryML,
				Status:       dataset.StatusPrototype,
				Impact:       dataset.ImpactHigh,
				Created:      "not-a-date",
			},
			{
				ID:           "web-shop",
				Name:         "Web Shop",
				Description:  "Storefront",
				Technologies: []string{"TypeScript", "React"},
				Tags:         []string{"frontend"},
				Category:     dataset.CategoryWebApp,
				Status:       dataset.StatusArchived,
				Impact:       dataset.ImpactLow,
				Created:      "2025-02-01",
			},
		},
		Metadata: dataset.Metadata{
			StatusCounts: map[string]int{"production": 1, "development": 1, "prototype": 1, "archived": 1},
			LastUpdated:  "2025-02-02",
			Categories:   []string{"api", "web-app", "mobile-app", "ml", "utility"},
		},
	}
}

func fixtureBlogs() *dataset.BlogCollection {
	return &dataset.BlogCollection{
		Blogs: []dataset.BlogPost{
			{Title: "Go Concurrency Patterns", URL: "https://blog.test/go-concurrency", Description: "Channels and goroutines"},
			{Title: "Python Packaging", URL: "https://blog.test/python-packaging", Description: "Wheels and go-to tools"},
			{Title: "Rust for Gophers", URL: "https://blog.test/rust", Description: "A guide for Go developers"},
			{Title: "Kubernetes Operators", URL: "https://blog.test/k8s", Description: "Reconcile loops"},
		},
		Metadata: dataset.Metadata{
			LastUpdated: "2025-01-15",
			Topics:      []string{"go", "python", "rust", "kubernetes", "java"},
			Categories:  []string{"engineering"},
		},
	}
}

func newFixtureEngine() *Engine {
	return NewEngine(&staticSource{projects: fixtureProjects(), blogs: fixtureBlogs()}, logging.Discard())
}

func projectIDs(results []ScoredProject) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}

func blogTitles(results []ScoredBlog) []string {
	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Title)
	}
	return titles
}
