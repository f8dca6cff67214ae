package query

import (
	"sort"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// ProjectFilters narrows a project query before scoring. Empty values are
// ignored. Category, Status and Impact match exactly; a project passes the
// technology filter when any of its technologies contains any of
// Technologies (case-insensitive).
type ProjectFilters struct {
	Category     string   `json:"category,omitempty"`
	Status       string   `json:"status,omitempty"`
	Impact       string   `json:"impact,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ProjectQueryOptions configures QueryProjects.
// Limit caps the results; values <= 0 return no results (Total is still
// reported). Use DefaultLimit when the caller has no preference.
type ProjectQueryOptions struct {
	ProjectFilters
	Limit int
}

// ScoredProject is a project annotated with its relevance score.
// RelevanceScore is 0, and omitted from JSON, for unscored (empty query) results.
type ScoredProject struct {
	dataset.Project
	RelevanceScore int `json:"relevanceScore,omitempty"`
}

// ProjectResult is the outcome of a project query.
type ProjectResult struct {
	Results []ScoredProject `json:"results"`
	Total   int             `json:"total"`
	Query   string          `json:"query"`
	Filters ProjectFilters  `json:"filters"`
}

// QueryProjects filters, scores and ranks projects.
//
// With a non-blank query, projects scoring 0 are dropped and the rest are
// ordered by descending score; equal scores keep dataset order. With a blank
// query the filtered projects are returned unscored in dataset order.
func (e *Engine) QueryProjects(query string, opts ProjectQueryOptions) (*ProjectResult, error) {
	col, err := e.source.Projects()
	if err != nil {
		return nil, err
	}

	filtered := filterProjects(col.Projects, opts.ProjectFilters)
	results := make([]ScoredProject, 0, len(filtered))

	q := normalize(query)
	if q == "" {
		for i := range filtered {
			results = append(results, ScoredProject{Project: filtered[i]})
		}
	} else {
		for i := range filtered {
			if score := scoreProject(&filtered[i], q); score > 0 {
				results = append(results, ScoredProject{Project: filtered[i], RelevanceScore: score})
			}
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}

	e.logger.Debug("Project query",
		"query", query,
		"filters", opts.ProjectFilters,
		"matched", len(results),
		"limit", opts.Limit,
	)

	return &ProjectResult{
		Results: truncate(results, opts.Limit),
		Total:   len(results),
		Query:   query,
		Filters: opts.ProjectFilters,
	}, nil
}

// ProjectsByTechnology lists projects using technology, unscored.
func (e *Engine) ProjectsByTechnology(technology string, limit int) (*ProjectResult, error) {
	return e.QueryProjects("", ProjectQueryOptions{
		ProjectFilters: ProjectFilters{Technologies: []string{technology}},
		Limit:          limit,
	})
}

// ProjectsByCategory lists projects in category, unscored.
func (e *Engine) ProjectsByCategory(category string, limit int) (*ProjectResult, error) {
	return e.QueryProjects("", ProjectQueryOptions{
		ProjectFilters: ProjectFilters{Category: category},
		Limit:          limit,
	})
}

// ProjectsByStatus lists projects with status, unscored.
func (e *Engine) ProjectsByStatus(status string, limit int) (*ProjectResult, error) {
	return e.QueryProjects("", ProjectQueryOptions{
		ProjectFilters: ProjectFilters{Status: status},
		Limit:          limit,
	})
}

// filterProjects applies the filters in order and returns a new slice.
func filterProjects(projects []dataset.Project, f ProjectFilters) []dataset.Project {
	techs := make([]string, 0, len(f.Technologies))
	for _, t := range f.Technologies {
		if n := normalize(t); n != "" {
			techs = append(techs, n)
		}
	}

	out := make([]dataset.Project, 0, len(projects))
	for _, p := range projects {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Impact != "" && p.Impact != f.Impact {
			continue
		}
		if len(techs) > 0 && !usesAnyTechnology(p, techs) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func usesAnyTechnology(p dataset.Project, normalizedTechs []string) bool {
	for _, t := range normalizedTechs {
		if anyContains(p.Technologies, t) {
			return true
		}
	}
	return false
}
