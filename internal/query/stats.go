package query

import (
	"strings"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// recentCount is how many entities the stats "recent" lists hold.
const recentCount = 3

// ProjectStats summarizes the project collection.
type ProjectStats struct {
	TotalProjects          int             `json:"totalProjects"`
	StatusDistribution     map[string]int  `json:"statusDistribution"`
	TechnologyDistribution map[string]int  `json:"technologyDistribution"`
	CategoryDistribution   map[string]int  `json:"categoryDistribution"`
	ImpactDistribution     map[string]int  `json:"impactDistribution"`
	RecentProjects         []RecentProject `json:"recentProjects"`
	LastUpdated            string          `json:"lastUpdated"`
	Categories             []string        `json:"categories,omitempty"`
}

// RecentProject is the short form of a project used in stats.
type RecentProject struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Created string `json:"created"`
}

// BlogStats summarizes the blog collection.
type BlogStats struct {
	TotalBlogs        int            `json:"totalBlogs"`
	TopicDistribution map[string]int `json:"topicDistribution"`
	RecentBlogs       []RecentBlog   `json:"recentBlogs"`
	LastUpdated       string         `json:"lastUpdated"`
	Categories        []string       `json:"categories,omitempty"`
}

// RecentBlog is the short form of a post used in stats.
type RecentBlog struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ProjectStats computes distributions over the project collection. The
// status distribution is the stored metadata, not a recount. Recent projects
// are the newest three by created date; unparseable dates rank last.
func (e *Engine) ProjectStats() (*ProjectStats, error) {
	col, err := e.source.Projects()
	if err != nil {
		return nil, err
	}

	stats := &ProjectStats{
		TotalProjects:          len(col.Projects),
		StatusDistribution:     col.Metadata.StatusCounts,
		TechnologyDistribution: make(map[string]int),
		CategoryDistribution:   make(map[string]int),
		ImpactDistribution:     make(map[string]int),
		LastUpdated:            col.Metadata.LastUpdated,
		Categories:             col.Metadata.Categories,
	}

	for _, p := range col.Projects {
		for _, tech := range p.Technologies {
			stats.TechnologyDistribution[tech]++
		}
		stats.CategoryDistribution[p.Category]++
		stats.ImpactDistribution[p.Impact]++
	}

	byDate := make([]dataset.Project, len(col.Projects))
	copy(byDate, col.Projects)
	sortBy(byDate, projectFields["created"], true)

	stats.RecentProjects = make([]RecentProject, 0, recentCount)
	for _, p := range truncate(byDate, recentCount) {
		stats.RecentProjects = append(stats.RecentProjects, RecentProject{ID: p.ID, Name: p.Name, Created: p.Created})
	}

	return stats, nil
}

// BlogStats computes the topic distribution over the blog collection.
// A post counts toward a topic when the topic appears in its title or
// description. Recent blogs are the first three in dataset order.
func (e *Engine) BlogStats() (*BlogStats, error) {
	col, err := e.source.Blogs()
	if err != nil {
		return nil, err
	}

	stats := &BlogStats{
		TotalBlogs:        len(col.Blogs),
		TopicDistribution: make(map[string]int),
		LastUpdated:       col.Metadata.LastUpdated,
		Categories:        col.Metadata.Categories,
	}

	for _, topic := range col.Metadata.Topics {
		t := normalize(topic)
		if t == "" {
			continue
		}
		count := 0
		for _, b := range col.Blogs {
			if strings.Contains(normalize(b.Title+" "+b.Description), t) {
				count++
			}
		}
		stats.TopicDistribution[topic] = count
	}

	stats.RecentBlogs = make([]RecentBlog, 0, recentCount)
	for _, b := range truncate(col.Blogs, recentCount) {
		stats.RecentBlogs = append(stats.RecentBlogs, RecentBlog{Title: b.Title, URL: b.URL})
	}

	return stats, nil
}
