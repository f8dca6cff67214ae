package dataset

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed data/projects.json data/blogs.json
var embedded embed.FS

const (
	embeddedProjects = "data/projects.json"
	embeddedBlogs    = "data/blogs.json"
)

// Source names where each collection is read from. An empty path selects
// the dataset embedded in the binary.
type Source struct {
	ProjectsPath string
	BlogsPath    string
}

// Store owns both collections for its lifetime. Each collection is loaded on
// first access; concurrent first callers share a single load and observe
// either the complete collection or the same error.
type Store struct {
	source Source
	logger *log.Logger

	projectsOnce sync.Once
	projects     *ProjectCollection
	projectsErr  error

	blogsOnce sync.Once
	blogs     *BlogCollection
	blogsErr  error
}

// NewStore creates a Store. Nothing is read until the first access.
func NewStore(src Source, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Store{source: src, logger: logger}
}

// Source returns the configured sources.
func (s *Store) Source() Source {
	return s.source
}

// Projects returns the project collection, loading it on first call.
// The returned value is shared and must not be modified.
func (s *Store) Projects() (*ProjectCollection, error) {
	s.projectsOnce.Do(func() {
		start := time.Now()
		s.projects, s.projectsErr = loadProjects(s.source.ProjectsPath)
		if s.projectsErr != nil {
			s.logger.Error("Failed to load projects", "path", s.source.ProjectsPath, "error", s.projectsErr)
			return
		}
		s.logger.Debug("Projects loaded",
			"path", displayPath(s.source.ProjectsPath),
			"count", len(s.projects.Projects),
			"duration", time.Since(start),
		)
	})
	return s.projects, s.projectsErr
}

// Blogs returns the blog collection, loading it on first call.
// The returned value is shared and must not be modified.
func (s *Store) Blogs() (*BlogCollection, error) {
	s.blogsOnce.Do(func() {
		start := time.Now()
		s.blogs, s.blogsErr = loadBlogs(s.source.BlogsPath)
		if s.blogsErr != nil {
			s.logger.Error("Failed to load blogs", "path", s.source.BlogsPath, "error", s.blogsErr)
			return
		}
		s.logger.Debug("Blogs loaded",
			"path", displayPath(s.source.BlogsPath),
			"count", len(s.blogs.Blogs),
			"duration", time.Since(start),
		)
	})
	return s.blogs, s.blogsErr
}

func loadProjects(path string) (*ProjectCollection, error) {
	var col ProjectCollection

	if path == "" {
		data, err := embedded.ReadFile(embeddedProjects)
		if err != nil {
			return nil, &DataLoadError{Collection: "projects", Err: err}
		}
		if err := decodeDocument(embeddedProjects, data, &col); err != nil {
			return nil, &DataLoadError{Collection: "projects", Err: err}
		}
	} else {
		data, err := readSource("projects", path)
		if err != nil {
			return nil, err
		}
		if err := decodeDocument(path, data, &col); err != nil {
			return nil, &DataLoadError{
				Collection: "projects",
				Path:       path,
				Err:        err,
				Hint:       `The file must contain a top-level "projects" list and an optional "metadata" object`,
			}
		}
	}

	if err := validateProjects(col.Projects); err != nil {
		return nil, &DataLoadError{Collection: "projects", Path: path, Err: err}
	}
	normalizeProjects(col.Projects)
	return &col, nil
}

func loadBlogs(path string) (*BlogCollection, error) {
	var col BlogCollection

	if path == "" {
		data, err := embedded.ReadFile(embeddedBlogs)
		if err != nil {
			return nil, &DataLoadError{Collection: "blogs", Err: err}
		}
		if err := decodeDocument(embeddedBlogs, data, &col); err != nil {
			return nil, &DataLoadError{Collection: "blogs", Err: err}
		}
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, sourceError("blogs", path, err)
		}
		if info.IsDir() {
			dirCol, err := loadBlogDir(path)
			if err != nil {
				return nil, &DataLoadError{
					Collection: "blogs",
					Path:       path,
					Err:        err,
					Hint:       "Each post needs YAML frontmatter with title, url and description",
				}
			}
			col = *dirCol
		} else {
			data, err := readSource("blogs", path)
			if err != nil {
				return nil, err
			}
			if err := decodeDocument(path, data, &col); err != nil {
				return nil, &DataLoadError{
					Collection: "blogs",
					Path:       path,
					Err:        err,
					Hint:       `The file must contain a top-level "blogs" list and an optional "metadata" object`,
				}
			}
		}
	}

	if err := validateBlogs(col.Blogs); err != nil {
		return nil, &DataLoadError{Collection: "blogs", Path: path, Err: err}
	}
	return &col, nil
}

func readSource(collection, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, sourceError(collection, path, err)
	}
	if info.IsDir() {
		return nil, &DataLoadError{
			Collection: collection,
			Path:       path,
			Err:        errors.New("path is a directory"),
			Hint:       "Point the source at a .json or .yaml file",
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sourceError(collection, path, err)
	}
	return data, nil
}

func sourceError(collection, path string, err error) error {
	hint := ""
	switch {
	case os.IsNotExist(err):
		hint = fmt.Sprintf("Check data.%s in portfolio-mcp.yaml or the --%s flag", collection, collection)
	case os.IsPermission(err):
		hint = fmt.Sprintf("Run: chmod 644 %s", path)
	}
	return &DataLoadError{Collection: collection, Path: path, Err: err, Hint: hint}
}

func displayPath(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
