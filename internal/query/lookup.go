package query

import (
	"strings"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// ProjectListing is a full, sorted copy of the project collection.
type ProjectListing struct {
	Projects []dataset.Project `json:"projects"`
	Metadata dataset.Metadata  `json:"metadata"`
}

// BlogListing is a full, sorted copy of the blog collection.
type BlogListing struct {
	Blogs    []dataset.BlogPost `json:"blogs"`
	Metadata dataset.Metadata   `json:"metadata"`
}

// ProjectByID returns the project with the exact id.
func (e *Engine) ProjectByID(id string) (dataset.Project, bool, error) {
	col, err := e.source.Projects()
	if err != nil {
		return dataset.Project{}, false, err
	}
	for _, p := range col.Projects {
		if p.ID == id {
			return p, true, nil
		}
	}
	return dataset.Project{}, false, nil
}

// BlogByTitle returns the first post, in dataset order, whose title equals
// or contains title (case-insensitive, trimmed). A blank title matches
// nothing.
func (e *Engine) BlogByTitle(title string) (dataset.BlogPost, bool, error) {
	col, err := e.source.Blogs()
	if err != nil {
		return dataset.BlogPost{}, false, err
	}
	q := normalize(title)
	if q == "" {
		return dataset.BlogPost{}, false, nil
	}
	for _, b := range col.Blogs {
		if t := normalize(b.Title); t == q || strings.Contains(t, q) {
			return b, true, nil
		}
	}
	return dataset.BlogPost{}, false, nil
}

// BlogByURL returns the post with the exact url.
func (e *Engine) BlogByURL(url string) (dataset.BlogPost, bool, error) {
	col, err := e.source.Blogs()
	if err != nil {
		return dataset.BlogPost{}, false, err
	}
	for _, b := range col.Blogs {
		if b.URL == url {
			return b, true, nil
		}
	}
	return dataset.BlogPost{}, false, nil
}

// AllProjects returns a sorted copy of every project. An empty By sorts by
// created date; an unknown By keeps dataset order.
func (e *Engine) AllProjects(opts SortOptions) (*ProjectListing, error) {
	col, err := e.source.Projects()
	if err != nil {
		return nil, err
	}

	by := opts.By
	if by == "" {
		by = DefaultProjectSortField
	}

	projects := make([]dataset.Project, len(col.Projects))
	copy(projects, col.Projects)

	if f, ok := projectFields[by]; ok {
		sortBy(projects, f, opts.descending())
	} else {
		e.logger.Debug("Unknown project sort field, keeping dataset order", "sortBy", by)
	}

	return &ProjectListing{Projects: projects, Metadata: col.Metadata}, nil
}

// AllBlogs returns a copy of every post. An empty or unknown By keeps
// dataset order; posts have no date to default to.
func (e *Engine) AllBlogs(opts SortOptions) (*BlogListing, error) {
	col, err := e.source.Blogs()
	if err != nil {
		return nil, err
	}

	blogs := make([]dataset.BlogPost, len(col.Blogs))
	copy(blogs, col.Blogs)

	if opts.By != "" {
		if f, ok := blogFields[opts.By]; ok {
			sortBy(blogs, f, opts.descending())
		} else {
			e.logger.Debug("Unknown blog sort field, keeping dataset order", "sortBy", opts.By)
		}
	}

	return &BlogListing{Blogs: blogs, Metadata: col.Metadata}, nil
}
