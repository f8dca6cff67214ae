package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// metadataFiles are looked up, in order, inside a blog post directory.
var metadataFiles = []string{"metadata.yaml", "metadata.yml", "metadata.json"}

// decodeDocument decodes data as YAML or JSON depending on the file extension.
// Anything that is not .yaml/.yml is treated as JSON.
func decodeDocument(name string, data []byte, v interface{}) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("JSON parse error: %w", err)
		}
	}
	return nil
}

// loadBlogDir reads one post per Markdown file. Load order is the file name
// order returned by os.ReadDir (sorted).
func loadBlogDir(dir string) (*BlogCollection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	col := &BlogCollection{Blogs: []BlogPost{}}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".md" && ext != ".markdown" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		var post BlogPost
		if _, err := frontmatter.Parse(bytes.NewReader(data), &post); err != nil {
			return nil, fmt.Errorf("%s: invalid frontmatter: %w", entry.Name(), err)
		}
		if post.Title == "" || post.URL == "" {
			return nil, fmt.Errorf("%s: frontmatter must set title and url", entry.Name())
		}
		col.Blogs = append(col.Blogs, post)
	}

	for _, name := range metadataFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := decodeDocument(name, data, &col.Metadata); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		break
	}

	return col, nil
}

// validateProjects enforces the collection invariants: unique non-empty ids
// and enum fields restricted to their declared values.
func validateProjects(projects []Project) error {
	seen := make(map[string]bool, len(projects))
	for i, p := range projects {
		if p.ID == "" {
			return fmt.Errorf("project #%d: missing id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("project %q: duplicate id", p.ID)
		}
		seen[p.ID] = true

		if !IsValidEnum(p.Category, Categories) {
			return fmt.Errorf("project %q: invalid category %q (want one of %s)", p.ID, p.Category, strings.Join(Categories, ", "))
		}
		if !IsValidEnum(p.Status, Statuses) {
			return fmt.Errorf("project %q: invalid status %q (want one of %s)", p.ID, p.Status, strings.Join(Statuses, ", "))
		}
		if !IsValidEnum(p.Impact, Impacts) {
			return fmt.Errorf("project %q: invalid impact %q (want one of %s)", p.ID, p.Impact, strings.Join(Impacts, ", "))
		}
	}
	return nil
}

func validateBlogs(blogs []BlogPost) error {
	seen := make(map[string]bool, len(blogs))
	for i, b := range blogs {
		if b.URL == "" {
			return fmt.Errorf("blog #%d (%q): missing url", i, b.Title)
		}
		if seen[b.URL] {
			return fmt.Errorf("blog %q: duplicate url", b.URL)
		}
		seen[b.URL] = true
	}
	return nil
}

// normalizeProjects replaces nil lists so they serialize as [] rather than null.
func normalizeProjects(projects []Project) {
	for i := range projects {
		if projects[i].Technologies == nil {
			projects[i].Technologies = []string{}
		}
		if projects[i].Tags == nil {
			projects[i].Tags = []string{}
		}
	}
}
