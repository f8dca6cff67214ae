package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
	"github.com/khanglvm/portfolio-mcp/internal/logging"
	"github.com/khanglvm/portfolio-mcp/internal/query"
	"github.com/khanglvm/portfolio-mcp/internal/search"
	"github.com/khanglvm/portfolio-mcp/internal/storage"
)

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	store := dataset.NewStore(dataset.Source{}, logging.Discard())
	return NewRegistry(query.NewEngine(store, logging.Discard()), opts...)
}

// call runs a tool and decodes its payload into v.
func call(t *testing.T, r *Registry, name string, args map[string]interface{}, v interface{}) {
	t.Helper()
	res, err := r.Call(context.Background(), name, args)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	require.NoError(t, json.Unmarshal([]byte(res.Text()), v))
}

type projectHit struct {
	ID             string   `json:"id"`
	Technologies   []string `json:"technologies"`
	RelevanceScore int      `json:"relevanceScore"`
}

func TestDefinitions(t *testing.T) {
	r := newTestRegistry(t)

	defs := r.Definitions()
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		assert.Equal(t, "object", d.InputSchema["type"], d.Name)
	}
	assert.Equal(t, []string{
		"query_projects", "get_project", "list_projects", "get_project_stats",
		"query_blogs", "get_blog", "list_blogs", "get_blog_stats",
		"search_all",
	}, names)

	// schemas must encode
	_, err := json.Marshal(defs)
	require.NoError(t, err)

	assert.Equal(t, []string{"query"}, defs[0].InputSchema["required"])
	assert.Equal(t, []string{"id"}, defs[1].InputSchema["required"])
	assert.NotContains(t, defs[5].InputSchema, "required")
}

func TestUnknownTool(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Call(context.Background(), "bogus_tool", map[string]interface{}{})
	require.Error(t, err)
	assert.EqualError(t, err, "Unknown tool: bogus_tool")

	var unknown *UnknownToolError
	assert.True(t, errors.As(err, &unknown))
	assert.False(t, r.Has("bogus_tool"))
	assert.True(t, r.Has("search_all"))
}

func TestMissingRequiredArguments(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]interface{}
	}{
		{"query_projects", map[string]interface{}{}},
		{"query_projects", map[string]interface{}{"query": nil}},
		{"get_project", map[string]interface{}{}},
		{"query_blogs", nil},
		{"search_all", map[string]interface{}{"limit": 3}},
		{"get_blog", map[string]interface{}{}},
		{"get_blog", map[string]interface{}{"title": "  ", "url": ""}},
	}

	r := newTestRegistry(t)
	for _, tt := range tests {
		_, err := r.Call(context.Background(), tt.tool, tt.args)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "%s %v: %v", tt.tool, tt.args, err)
		assert.Equal(t, tt.tool, verr.Tool)
	}
}

func TestQueryProjectsPython(t *testing.T) {
	r := newTestRegistry(t)

	var payload struct {
		Query   string       `json:"query"`
		Found   int          `json:"found"`
		Results []projectHit `json:"results"`
	}
	call(t, r, "query_projects", map[string]interface{}{"query": "python", "limit": 5}, &payload)

	assert.Equal(t, "python", payload.Query)
	assert.Equal(t, 2, payload.Found)
	require.Len(t, payload.Results, 2)

	// churn-predictor gets the high impact bonus on top of its technology match
	assert.Equal(t, "churn-predictor", payload.Results[0].ID)
	assert.Equal(t, 45, payload.Results[0].RelevanceScore)
	assert.Equal(t, "image-tagger", payload.Results[1].ID)
	assert.Equal(t, 40, payload.Results[1].RelevanceScore)
}

func TestQueryProjectsEmptyQueryAndFilters(t *testing.T) {
	r := newTestRegistry(t)

	var payload struct {
		Found   int          `json:"found"`
		Results []projectHit `json:"results"`
	}
	call(t, r, "query_projects", map[string]interface{}{
		"query":      "",
		"technology": []interface{}{"go"},
		"impact":     "high",
	}, &payload)

	assert.Equal(t, 2, payload.Found)
	ids := []string{payload.Results[0].ID, payload.Results[1].ID}
	assert.Equal(t, []string{"weather-api", "status-board"}, ids)
	assert.Zero(t, payload.Results[0].RelevanceScore)
}

func TestQueryProjectsLimitForms(t *testing.T) {
	tests := []struct {
		limit interface{}
		want  int
	}{
		{2, 2},
		{2.9, 2},
		{"3", 3},
		{json.Number("1"), 1},
		{0, 0},
		{-4, 0},
		{"many", 8},
	}

	r := newTestRegistry(t)
	for _, tt := range tests {
		var payload struct {
			Found   int               `json:"found"`
			Results []json.RawMessage `json:"results"`
		}
		call(t, r, "query_projects", map[string]interface{}{"query": "", "limit": tt.limit}, &payload)
		assert.Len(t, payload.Results, tt.want, "limit %v", tt.limit)
		assert.Equal(t, 8, payload.Found, "limit %v", tt.limit)
	}
}

func TestGetProject(t *testing.T) {
	r := newTestRegistry(t)

	var p dataset.Project
	call(t, r, "get_project", map[string]interface{}{"id": "log-slicer"}, &p)
	assert.Equal(t, "Log Slicer", p.Name)
	assert.Equal(t, []string{"Rust"}, p.Technologies)
}

func TestGetProjectNotFound(t *testing.T) {
	r := newTestRegistry(t)

	var payload map[string]string
	call(t, r, "get_project", map[string]interface{}{"id": "nope"}, &payload)
	assert.Equal(t, "Project not found", payload["error"])
	assert.Equal(t, "Use list_projects to see all available projects", payload["suggestion"])
}

type fakeSuggester struct {
	kind, text string
	out        []search.Suggestion
	err        error
}

func (f *fakeSuggester) Suggest(kind, text string, limit int) ([]search.Suggestion, error) {
	f.kind, f.text = kind, text
	return f.out, f.err
}

func TestNotFoundSuggestions(t *testing.T) {
	s := &fakeSuggester{out: []search.Suggestion{{Kind: search.KindProject, Key: "weather-api", Label: "Weather Aggregation API"}}}
	r := newTestRegistry(t, WithSuggester(s))

	var payload map[string]string
	call(t, r, "get_project", map[string]interface{}{"id": "wether-api"}, &payload)

	assert.Equal(t, search.KindProject, s.kind)
	assert.Equal(t, "wether-api", s.text)
	assert.Equal(t, "Use list_projects to see all available projects. Did you mean: weather-api (Weather Aggregation API)?", payload["suggestion"])

	s.out = []search.Suggestion{{Kind: search.KindBlog, Label: "Building an MCP Server in Go"}}
	call(t, r, "get_blog", map[string]interface{}{"title": "mcp servers in rust"}, &payload)
	assert.Equal(t, "Blog not found", payload["error"])
	assert.Equal(t, `Use list_blogs to see all available blog posts. Did you mean: "Building an MCP Server in Go"?`, payload["suggestion"])

	s.err = errors.New("index down")
	call(t, r, "get_project", map[string]interface{}{"id": "x"}, &payload)
	assert.Equal(t, "Use list_projects to see all available projects", payload["suggestion"])
}

func TestGetBlog(t *testing.T) {
	r := newTestRegistry(t)

	var post dataset.BlogPost
	call(t, r, "get_blog", map[string]interface{}{"title": "rust"}, &post)
	assert.Equal(t, "https://blog.example.dev/log-tool-in-rust", post.URL)

	call(t, r, "get_blog", map[string]interface{}{"url": "https://blog.example.dev/offline-first-android"}, &post)
	assert.Equal(t, "Offline-First Android with Compose", post.Title)

	// url wins over title
	call(t, r, "get_blog", map[string]interface{}{
		"title": "rust",
		"url":   "https://blog.example.dev/shipping-a-churn-model",
	}, &post)
	assert.Equal(t, "Shipping a Churn Model to Production", post.Title)
}

func TestGetBlogNotFoundIsSoft(t *testing.T) {
	r := newTestRegistry(t)

	res, err := r.Call(context.Background(), "get_blog", map[string]interface{}{"url": "https://no-such.example/"})
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &payload))
	assert.Equal(t, "Blog not found", payload["error"])
	assert.NotEmpty(t, payload["suggestion"])
}

func TestListProjects(t *testing.T) {
	r := newTestRegistry(t)

	var payload struct {
		TotalProjects int               `json:"totalProjects"`
		Projects      []dataset.Project `json:"projects"`
		Metadata      dataset.Metadata  `json:"metadata"`
	}
	call(t, r, "list_projects", map[string]interface{}{}, &payload)

	assert.Equal(t, 8, payload.TotalProjects)
	assert.Equal(t, "log-slicer", payload.Projects[0].ID) // newest
	assert.Equal(t, "image-tagger", payload.Projects[7].ID)
	assert.Equal(t, "2025-04-10", payload.Metadata.LastUpdated)

	call(t, r, "list_projects", map[string]interface{}{"sortBy": "name", "order": "asc"}, &payload)
	assert.Equal(t, "churn-predictor", payload.Projects[0].ID) // Customer Churn Predictor
}

func TestGetProjectRoundTrip(t *testing.T) {
	r := newTestRegistry(t)

	var list struct {
		Projects []dataset.Project `json:"projects"`
	}
	call(t, r, "list_projects", nil, &list)

	for _, p := range list.Projects {
		var got dataset.Project
		call(t, r, "get_project", map[string]interface{}{"id": p.ID}, &got)
		assert.Equal(t, p, got)
	}
}

func TestListBlogs(t *testing.T) {
	r := newTestRegistry(t)

	var payload struct {
		TotalBlogs int                `json:"totalBlogs"`
		Blogs      []dataset.BlogPost `json:"blogs"`
	}
	call(t, r, "list_blogs", map[string]interface{}{}, &payload)
	assert.Equal(t, 6, payload.TotalBlogs)
	assert.Equal(t, "Building an MCP Server in Go", payload.Blogs[0].Title)

	call(t, r, "list_blogs", map[string]interface{}{"sortBy": "title", "order": "desc"}, &payload)
	assert.Equal(t, "Why I Rewrote My Log Tool in Rust", payload.Blogs[0].Title)
}

func TestStatsTools(t *testing.T) {
	r := newTestRegistry(t)

	var projects query.ProjectStats
	call(t, r, "get_project_stats", nil, &projects)
	assert.Equal(t, 8, projects.TotalProjects)
	assert.Equal(t, 3, projects.TechnologyDistribution["Go"])
	assert.Equal(t, 4, projects.StatusDistribution["production"])
	require.Len(t, projects.RecentProjects, 3)
	assert.Equal(t, "log-slicer", projects.RecentProjects[0].ID)

	var blogs query.BlogStats
	call(t, r, "get_blog_stats", nil, &blogs)
	assert.Equal(t, 6, blogs.TotalBlogs)
	assert.Equal(t, 1, blogs.TopicDistribution["rust"])
	assert.Equal(t, 1, blogs.TopicDistribution["python"])
	require.Len(t, blogs.RecentBlogs, 3)
}

func TestSearchAll(t *testing.T) {
	r := newTestRegistry(t)

	var payload struct {
		Query      string `json:"query"`
		TotalFound int    `json:"totalFound"`
		Breakdown  struct {
			Projects int `json:"projects"`
			Blogs    int `json:"blogs"`
		} `json:"breakdown"`
		Results []map[string]interface{} `json:"results"`
	}
	call(t, r, "search_all", map[string]interface{}{"query": "rust", "limit": "4"}, &payload)

	assert.Equal(t, "rust", payload.Query)
	assert.Equal(t, 1, payload.Breakdown.Projects)
	assert.Equal(t, 1, payload.Breakdown.Blogs)
	assert.Equal(t, 2, payload.TotalFound)
	require.Len(t, payload.Results, 2)

	// the blog matches title, description and url (100); the project only its technology (40)
	assert.Equal(t, "blog", payload.Results[0]["type"])
	assert.Equal(t, "project", payload.Results[1]["type"])
	assert.Equal(t, "log-slicer", payload.Results[1]["id"])
}

func TestCallIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	args := map[string]interface{}{"query": "go", "limit": 4}

	first, err := r.Call(context.Background(), "search_all", args)
	require.NoError(t, err)
	second, err := r.Call(context.Background(), "search_all", args)
	require.NoError(t, err)
	assert.Equal(t, first.Text(), second.Text())
}

func TestCallCancelledContext(t *testing.T) {
	r := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Call(ctx, "list_projects", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDataLoadErrorPropagates(t *testing.T) {
	store := dataset.NewStore(dataset.Source{ProjectsPath: filepath.Join(t.TempDir(), "missing.json")}, logging.Discard())
	r := NewRegistry(query.NewEngine(store, logging.Discard()))

	_, err := r.Call(context.Background(), "list_projects", nil)
	var loadErr *dataset.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// blogs still load from the embedded dataset
	_, err = r.Call(context.Background(), "list_blogs", nil)
	assert.NoError(t, err)
}

type memRecorder struct {
	mu      sync.Mutex
	records []storage.CallRecord
}

func (m *memRecorder) RecordCall(_ context.Context, rec storage.CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func TestCallRecording(t *testing.T) {
	rec := &memRecorder{}
	r := newTestRegistry(t, WithRecorder(rec))

	ctx := WithTransport(context.Background(), TransportHTTP)
	_, err := r.Call(ctx, "query_blogs", map[string]interface{}{"query": "go"})
	require.NoError(t, err)
	_, err = r.Call(context.Background(), "bogus_tool", nil)
	require.Error(t, err)

	require.Len(t, rec.records, 2)
	assert.Equal(t, "query_blogs", rec.records[0].Tool)
	assert.Equal(t, TransportHTTP, rec.records[0].Transport)
	assert.True(t, rec.records[0].OK)
	assert.Equal(t, storage.HashArgs(map[string]interface{}{"query": "go"}), rec.records[0].ArgsHash)

	assert.Equal(t, "bogus_tool", rec.records[1].Tool)
	assert.Equal(t, TransportDirect, rec.records[1].Transport)
	assert.False(t, rec.records[1].OK)
	assert.Equal(t, "Unknown tool: bogus_tool", rec.records[1].Error)
}

func TestCallLogging(t *testing.T) {
	logger, buf := logging.NewTestLogger()
	r := newTestRegistry(t, WithLogger(logger))

	_, _ = r.Call(context.Background(), "bogus_tool", nil)
	assert.Contains(t, buf.String(), "Tool call failed")
	assert.Contains(t, buf.String(), "bogus_tool")
}

func TestConcurrentCalls(t *testing.T) {
	r := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Call(context.Background(), "search_all", map[string]interface{}{"query": "go"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
