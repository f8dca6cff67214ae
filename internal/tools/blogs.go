package tools

import (
	"context"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
	"github.com/khanglvm/portfolio-mcp/internal/query"
	"github.com/khanglvm/portfolio-mcp/internal/search"
)

type blogListPayload struct {
	TotalBlogs int                `json:"totalBlogs"`
	Blogs      []dataset.BlogPost `json:"blogs"`
	Metadata   dataset.Metadata   `json:"metadata"`
}

func (r *Registry) registerBlogTools() {
	r.register(Definition{
		Name: ToolQueryBlogs,
		Description: `Search blog posts by keyword.

Matches the query against title, description and URL and ranks results by
relevance. An empty query lists posts in publication order.`,
		InputSchema: objectSchema(map[string]interface{}{
			"query": stringProp("Keywords to match; empty string matches every post"),
			"limit": limitProp(),
		}, "query"),
	}, r.queryBlogs)

	r.register(Definition{
		Name:        ToolGetBlog,
		Description: "Get one blog post by exact URL, or by title (case-insensitive, partial titles allowed). Provide title or url.",
		InputSchema: objectSchema(map[string]interface{}{
			"title": stringProp("Full or partial post title"),
			"url":   stringProp("Exact post URL; takes precedence over title"),
		}),
	}, r.getBlog)

	r.register(Definition{
		Name:        ToolListBlogs,
		Description: "List every blog post, optionally sorted.",
		InputSchema: objectSchema(map[string]interface{}{
			"sortBy": stringProp("Field to sort by (default: publication order)", query.BlogSortFields()...),
			"order":  orderProp(),
		}),
	}, r.listBlogs)

	r.register(Definition{
		Name:        ToolGetBlogStats,
		Description: "Get blog post counts per topic plus the three most recent posts.",
		InputSchema: objectSchema(map[string]interface{}{}),
	}, r.blogStats)
}

func (r *Registry) queryBlogs(_ context.Context, args Args) (interface{}, error) {
	q, err := args.Require(ToolQueryBlogs, "query")
	if err != nil {
		return nil, err
	}

	res, err := r.engine.QueryBlogs(q, query.BlogQueryOptions{
		Limit: args.Int("limit", query.DefaultLimit),
	})
	if err != nil {
		return nil, err
	}

	return queryPayload[query.ScoredBlog]{Query: q, Found: res.Total, Results: res.Results}, nil
}

// getBlog looks a post up by url when given, otherwise by title.
func (r *Registry) getBlog(_ context.Context, args Args) (interface{}, error) {
	url := args.OptionalString("url")
	title := args.OptionalString("title")

	var (
		post dataset.BlogPost
		ok   bool
		err  error
		key  string
	)
	switch {
	case url != "":
		key = url
		post, ok, err = r.engine.BlogByURL(url)
	case title != "":
		key = title
		post, ok, err = r.engine.BlogByTitle(title)
	default:
		return nil, &ValidationError{Tool: ToolGetBlog, Argument: "title", Message: "either title or url is required"}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return r.notFoundPayload("Blog not found", search.KindBlog, key, ToolListBlogs, "blog posts"), nil
	}
	return post, nil
}

func (r *Registry) listBlogs(_ context.Context, args Args) (interface{}, error) {
	res, err := r.engine.AllBlogs(query.SortOptions{
		By:    args.OptionalString("sortBy"),
		Order: args.OptionalString("order"),
	})
	if err != nil {
		return nil, err
	}

	return blogListPayload{
		TotalBlogs: len(res.Blogs),
		Blogs:      res.Blogs,
		Metadata:   res.Metadata,
	}, nil
}

func (r *Registry) blogStats(_ context.Context, _ Args) (interface{}, error) {
	return r.engine.BlogStats()
}
