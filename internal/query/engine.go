/*
Package query implements keyword search, filtering, sorting, statistics and
lookups over the portfolio collections.

Ranking is deliberately simple: a query matches a field when the lower-cased,
trimmed field contains the lower-cased, trimmed query, and every matching
field adds a fixed weight to the entity's relevance score. Results are
deterministic for a given dataset; ties keep dataset order.
*/
package query

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// DefaultLimit is the result cap used when a caller does not provide one.
const DefaultLimit = 10

// Source provides read-only access to the collections.
// *dataset.Store satisfies it.
type Source interface {
	Projects() (*dataset.ProjectCollection, error)
	Blogs() (*dataset.BlogCollection, error)
}

// Engine answers queries against a Source. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	source Source
	logger *log.Logger
}

// NewEngine creates an Engine over source.
func NewEngine(source Source, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Engine{source: source, logger: logger}
}

// truncate caps items at limit. A limit <= 0 yields an empty, non-nil slice.
func truncate[T any](items []T, limit int) []T {
	if limit <= 0 {
		return []T{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
