package tools

import (
	"context"

	"github.com/khanglvm/portfolio-mcp/internal/query"
)

type searchAllPayload struct {
	Query      string            `json:"query"`
	TotalFound int               `json:"totalFound"`
	Breakdown  query.Breakdown   `json:"breakdown"`
	Results    []query.SearchHit `json:"results"`
}

func (r *Registry) registerSearchTools() {
	r.register(Definition{
		Name: ToolSearchAll,
		Description: `Search projects and blog posts together.

About 70% of the limit goes to projects and 30% to blog posts; the combined
hits are ranked by relevance and each is tagged with type "project" or "blog".`,
		InputSchema: objectSchema(map[string]interface{}{
			"query": stringProp("Keywords to match across both collections"),
			"limit": limitProp(),
		}, "query"),
	}, r.searchAll)
}

func (r *Registry) searchAll(_ context.Context, args Args) (interface{}, error) {
	q, err := args.Require(ToolSearchAll, "query")
	if err != nil {
		return nil, err
	}

	res, err := r.engine.SearchAll(q, query.SearchOptions{
		Limit: args.Int("limit", query.DefaultLimit),
	})
	if err != nil {
		return nil, err
	}

	return searchAllPayload{
		Query:      q,
		TotalFound: res.Total,
		Breakdown:  res.Breakdown,
		Results:    res.Results,
	}, nil
}
