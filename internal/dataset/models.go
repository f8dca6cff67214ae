/*
Package dataset loads the two immutable portfolio collections: projects and
blog posts.

Each collection is read once per Store, on first access, and never mutated
afterwards. Callers receive shared read-only values; anything that reorders a
collection must copy it first.
*/
package dataset

// Project categories.
const (
	CategoryAPI       = "api"
	CategoryWebApp    = "web-app"
	CategoryMobileApp = "mobile-app"
	CategoryML        = "ml"
	CategoryUtility   = "utility"
)

// Project statuses.
const (
	StatusProduction  = "production"
	StatusDevelopment = "development"
	StatusPrototype   = "prototype"
	StatusArchived    = "archived"
)

// Project impact levels.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Categories lists the valid project categories in declared order.
var Categories = []string{CategoryAPI, CategoryWebApp, CategoryMobileApp, CategoryML, CategoryUtility}

// Statuses lists the valid statuses from least to most mature.
var Statuses = []string{StatusArchived, StatusPrototype, StatusDevelopment, StatusProduction}

// Impacts lists the valid impact levels from lowest to highest.
var Impacts = []string{ImpactLow, ImpactMedium, ImpactHigh}

// Project is a single portfolio project.
type Project struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description" yaml:"description"`
	Technologies []string          `json:"technologies" yaml:"technologies"`
	Tags         []string          `json:"tags" yaml:"tags"`
	Category     string            `json:"category" yaml:"category"`
	Status       string            `json:"status" yaml:"status"`
	Impact       string            `json:"impact" yaml:"impact"`
	Created      string            `json:"created" yaml:"created"`
	Links        map[string]string `json:"links,omitempty" yaml:"links,omitempty"`
	Highlights   []string          `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// BlogPost is a single published article.
type BlogPost struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

// Metadata is the per-collection summary stored alongside the entities.
// It is passed through to stats and list responses unchanged.
type Metadata struct {
	StatusCounts map[string]int `json:"status_counts,omitempty" yaml:"status_counts,omitempty"`
	LastUpdated  string         `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Topics       []string       `json:"topics,omitempty" yaml:"topics,omitempty"`
	Categories   []string       `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// ProjectCollection is the document shape of a projects source.
type ProjectCollection struct {
	Projects []Project `json:"projects" yaml:"projects"`
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
}

// BlogCollection is the document shape of a blogs source.
type BlogCollection struct {
	Blogs    []BlogPost `json:"blogs" yaml:"blogs"`
	Metadata Metadata   `json:"metadata" yaml:"metadata"`
}

// IsValidEnum reports whether value is one of allowed.
func IsValidEnum(value string, allowed []string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}
