package query

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// Share of a unified search's limit given to each collection. The shares are
// applied independently (rounded up), not as a global top-N.
const (
	ProjectShare = 0.7
	BlogShare    = 0.3
)

// Hit types.
const (
	HitProject = "project"
	HitBlog    = "blog"
)

// SearchOptions configures SearchAll.
type SearchOptions struct {
	Limit int
}

// Breakdown holds per-collection match counts before truncation.
type Breakdown struct {
	Projects int `json:"projects"`
	Blogs    int `json:"blogs"`
}

// SearchHit is one unified search result: a project or a blog post, tagged
// with its type. Exactly one of Project and Blog is set.
type SearchHit struct {
	Type    string
	Project *ScoredProject
	Blog    *ScoredBlog
}

// Score returns the hit's relevance score (0 when unscored).
func (h SearchHit) Score() int {
	switch {
	case h.Project != nil:
		return h.Project.RelevanceScore
	case h.Blog != nil:
		return h.Blog.RelevanceScore
	}
	return 0
}

// MarshalJSON flattens the entity and adds a "type" field.
func (h SearchHit) MarshalJSON() ([]byte, error) {
	switch {
	case h.Project != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			ScoredProject
		}{h.Type, *h.Project})
	case h.Blog != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			ScoredBlog
		}{h.Type, *h.Blog})
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{h.Type})
}

// SearchResult is the outcome of SearchAll.
type SearchResult struct {
	Results   []SearchHit `json:"results"`
	Total     int         `json:"total"`
	Breakdown Breakdown   `json:"breakdown"`
	Query     string      `json:"query"`
}

// SplitLimit returns how many projects and blogs a unified search of limit
// requests from each collection.
func SplitLimit(limit int) (projects, blogs int) {
	projects = int(math.Ceil(float64(limit) * ProjectShare))
	blogs = int(math.Ceil(float64(limit) * BlogShare))
	return projects, blogs
}

// SearchAll queries both collections, tags and merges the hits, re-ranks
// them by score (unscored hits count as 0; ties keep projects before blogs
// and dataset order) and truncates to opts.Limit. Total is the sum of the
// pre-truncation per-collection totals.
func (e *Engine) SearchAll(query string, opts SearchOptions) (*SearchResult, error) {
	projectLimit, blogLimit := SplitLimit(opts.Limit)

	projects, err := e.QueryProjects(query, ProjectQueryOptions{Limit: projectLimit})
	if err != nil {
		return nil, err
	}
	blogs, err := e.QueryBlogs(query, BlogQueryOptions{Limit: blogLimit})
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(projects.Results)+len(blogs.Results))
	for i := range projects.Results {
		hits = append(hits, SearchHit{Type: HitProject, Project: &projects.Results[i]})
	}
	for i := range blogs.Results {
		hits = append(hits, SearchHit{Type: HitBlog, Blog: &blogs.Results[i]})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score() > hits[j].Score()
	})

	return &SearchResult{
		Results: truncate(hits, opts.Limit),
		Total:   projects.Total + blogs.Total,
		Breakdown: Breakdown{
			Projects: projects.Total,
			Blogs:    blogs.Total,
		},
		Query: query,
	}, nil
}

// Entity returns the underlying project or blog post for display.
func (h SearchHit) Entity() (project *dataset.Project, blog *dataset.BlogPost) {
	if h.Project != nil {
		return &h.Project.Project, nil
	}
	if h.Blog != nil {
		return nil, &h.Blog.BlogPost
	}
	return nil, nil
}
