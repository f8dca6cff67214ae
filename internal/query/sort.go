package query

import (
	"cmp"
	"sort"
	"time"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Default sort for AllProjects.
const (
	DefaultProjectSortField = "created"
	DefaultSortOrder        = OrderDesc
)

// SortOptions selects a listing order. By names a field; Order is "asc" for
// ascending and anything else for descending (default "desc").
type SortOptions struct {
	By    string
	Order string
}

func (o SortOptions) descending() bool {
	return o.Order != OrderAsc
}

// dateLayouts are tried in order when parsing a created date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// field is a typed comparator for one sortable attribute of T.
// Values for which valid reports false sort after all valid values in both
// orders.
type field[T any] struct {
	compare func(a, b *T) int
	valid   func(v *T) bool
}

func stringField[T any](get func(*T) string) field[T] {
	return field[T]{
		compare: func(a, b *T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// enumField orders by position in declared; values outside it rank first.
func enumField[T any](get func(*T) string, declared []string) field[T] {
	rank := make(map[string]int, len(declared))
	for i, v := range declared {
		rank[v] = i
	}
	rankOf := func(v string) int {
		if r, ok := rank[v]; ok {
			return r
		}
		return -1
	}
	return field[T]{
		compare: func(a, b *T) int { return cmp.Compare(rankOf(get(a)), rankOf(get(b))) },
	}
}

func dateField[T any](get func(*T) string) field[T] {
	return field[T]{
		compare: func(a, b *T) int {
			ta, _ := parseDate(get(a))
			tb, _ := parseDate(get(b))
			return ta.Compare(tb)
		},
		valid: func(v *T) bool {
			_, ok := parseDate(get(v))
			return ok
		},
	}
}

func countField[T any](get func(*T) int) field[T] {
	return field[T]{
		compare: func(a, b *T) int { return cmp.Compare(get(a), get(b)) },
	}
}

var projectFields = map[string]field[dataset.Project]{
	"id":           stringField(func(p *dataset.Project) string { return p.ID }),
	"name":         stringField(func(p *dataset.Project) string { return p.Name }),
	"description":  stringField(func(p *dataset.Project) string { return p.Description }),
	"category":     enumField(func(p *dataset.Project) string { return p.Category }, dataset.Categories),
	"status":       enumField(func(p *dataset.Project) string { return p.Status }, dataset.Statuses),
	"impact":       enumField(func(p *dataset.Project) string { return p.Impact }, dataset.Impacts),
	"created":      dateField(func(p *dataset.Project) string { return p.Created }),
	"technologies": countField(func(p *dataset.Project) int { return len(p.Technologies) }),
	"tags":         countField(func(p *dataset.Project) int { return len(p.Tags) }),
	"highlights":   countField(func(p *dataset.Project) int { return len(p.Highlights) }),
}

var blogFields = map[string]field[dataset.BlogPost]{
	"title":       stringField(func(b *dataset.BlogPost) string { return b.Title }),
	"url":         stringField(func(b *dataset.BlogPost) string { return b.URL }),
	"description": stringField(func(b *dataset.BlogPost) string { return b.Description }),
}

// ProjectSortFields returns the field names accepted by AllProjects.
func ProjectSortFields() []string {
	return sortedKeys(projectFields)
}

// BlogSortFields returns the field names accepted by AllBlogs.
func BlogSortFields() []string {
	return sortedKeys(blogFields)
}

func sortedKeys[T any](m map[string]field[T]) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortBy stable-sorts items in place.
func sortBy[T any](items []T, f field[T], desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if f.valid != nil {
			va, vb := f.valid(a), f.valid(b)
			if va != vb {
				return va
			}
			if !va {
				return false
			}
		}
		c := f.compare(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}
