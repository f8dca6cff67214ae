package query

import (
	"sort"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// BlogQueryOptions configures QueryBlogs. Limit behaves as in
// ProjectQueryOptions.
type BlogQueryOptions struct {
	Limit int
}

// ScoredBlog is a blog post annotated with its relevance score.
type ScoredBlog struct {
	dataset.BlogPost
	RelevanceScore int `json:"relevanceScore,omitempty"`
}

// BlogResult is the outcome of a blog query.
type BlogResult struct {
	Results []ScoredBlog `json:"results"`
	Total   int          `json:"total"`
	Query   string       `json:"query"`
}

// QueryBlogs scores and ranks blog posts. It has no structural filters;
// otherwise it behaves like QueryProjects.
func (e *Engine) QueryBlogs(query string, opts BlogQueryOptions) (*BlogResult, error) {
	col, err := e.source.Blogs()
	if err != nil {
		return nil, err
	}

	results := make([]ScoredBlog, 0, len(col.Blogs))

	q := normalize(query)
	if q == "" {
		for i := range col.Blogs {
			results = append(results, ScoredBlog{BlogPost: col.Blogs[i]})
		}
	} else {
		for i := range col.Blogs {
			if score := scoreBlog(&col.Blogs[i], q); score > 0 {
				results = append(results, ScoredBlog{BlogPost: col.Blogs[i], RelevanceScore: score})
			}
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}

	e.logger.Debug("Blog query", "query", query, "matched", len(results), "limit", opts.Limit)

	return &BlogResult{
		Results: truncate(results, opts.Limit),
		Total:   len(results),
		Query:   query,
	}, nil
}
