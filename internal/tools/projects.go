package tools

import (
	"context"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
	"github.com/khanglvm/portfolio-mcp/internal/query"
	"github.com/khanglvm/portfolio-mcp/internal/search"
)

// Tool names.
const (
	ToolQueryProjects   = "query_projects"
	ToolGetProject      = "get_project"
	ToolListProjects    = "list_projects"
	ToolGetProjectStats = "get_project_stats"
	ToolQueryBlogs      = "query_blogs"
	ToolGetBlog         = "get_blog"
	ToolListBlogs       = "list_blogs"
	ToolGetBlogStats    = "get_blog_stats"
	ToolSearchAll       = "search_all"
)

// queryPayload is the payload of query_projects and query_blogs.
type queryPayload[T any] struct {
	Query   string `json:"query"`
	Found   int    `json:"found"`
	Results []T    `json:"results"`
}

type projectListPayload struct {
	TotalProjects int               `json:"totalProjects"`
	Projects      []dataset.Project `json:"projects"`
	Metadata      dataset.Metadata  `json:"metadata"`
}

func (r *Registry) registerProjectTools() {
	r.register(Definition{
		Name: ToolQueryProjects,
		Description: `Search portfolio projects by keyword with optional filters.

Matches the query against project name, description, technologies, tags and
category, and ranks results by relevance. An empty query lists the filtered
projects unranked.

Example: query="python", category="ml", limit=5`,
		InputSchema: objectSchema(map[string]interface{}{
			"query":    stringProp("Keywords to match; empty string matches every project"),
			"category": stringProp("Only projects in this category", dataset.Categories...),
			"status":   stringProp("Only projects with this status", dataset.Statuses...),
			"impact":   stringProp("Only projects with this impact", dataset.Impacts...),
			"technology": map[string]interface{}{
				"description": "Technology name or list of names; a project matches if it uses any of them",
				"oneOf": []interface{}{
					map[string]interface{}{"type": "string"},
					map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				},
			},
			"limit": limitProp(),
		}, "query"),
	}, r.queryProjects)

	r.register(Definition{
		Name:        ToolGetProject,
		Description: "Get the full details of one project by its id.",
		InputSchema: objectSchema(map[string]interface{}{
			"id": stringProp("Project id, e.g. \"weather-api\""),
		}, "id"),
	}, r.getProject)

	r.register(Definition{
		Name:        ToolListProjects,
		Description: "List every project, newest first unless another sort is requested.",
		InputSchema: objectSchema(map[string]interface{}{
			"sortBy": stringProp("Field to sort by (default created)", query.ProjectSortFields()...),
			"order":  orderProp(),
		}),
	}, r.listProjects)

	r.register(Definition{
		Name:        ToolGetProjectStats,
		Description: "Get project counts by status, technology, category and impact, plus the three most recent projects.",
		InputSchema: objectSchema(map[string]interface{}{}),
	}, r.projectStats)
}

func (r *Registry) queryProjects(_ context.Context, args Args) (interface{}, error) {
	q, err := args.Require(ToolQueryProjects, "query")
	if err != nil {
		return nil, err
	}

	res, err := r.engine.QueryProjects(q, query.ProjectQueryOptions{
		ProjectFilters: query.ProjectFilters{
			Category:     args.OptionalString("category"),
			Status:       args.OptionalString("status"),
			Impact:       args.OptionalString("impact"),
			Technologies: args.Strings("technology"),
		},
		Limit: args.Int("limit", query.DefaultLimit),
	})
	if err != nil {
		return nil, err
	}

	return queryPayload[query.ScoredProject]{Query: q, Found: res.Total, Results: res.Results}, nil
}

func (r *Registry) getProject(_ context.Context, args Args) (interface{}, error) {
	id, err := args.Require(ToolGetProject, "id")
	if err != nil {
		return nil, err
	}

	p, ok, err := r.engine.ProjectByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return r.notFoundPayload("Project not found", search.KindProject, id, ToolListProjects, "projects"), nil
	}
	return p, nil
}

func (r *Registry) listProjects(_ context.Context, args Args) (interface{}, error) {
	res, err := r.engine.AllProjects(query.SortOptions{
		By:    args.OptionalString("sortBy"),
		Order: args.OptionalString("order"),
	})
	if err != nil {
		return nil, err
	}

	return projectListPayload{
		TotalProjects: len(res.Projects),
		Projects:      res.Projects,
		Metadata:      res.Metadata,
	}, nil
}

func (r *Registry) projectStats(_ context.Context, _ Args) (interface{}, error) {
	return r.engine.ProjectStats()
}
