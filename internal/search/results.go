/*
Package search suggests close entries when a project or blog lookup misses.

Project ids, names and descriptions and blog titles, URLs and descriptions
are indexed in an in-memory Bleve index with fuzzy matching, so a typo such
as "wether-api" still points the caller at "weather-api". The index only
feeds not-found suggestions; it never ranks query results.
*/
package search

// Document kinds.
const (
	KindProject = "project"
	KindBlog    = "blog"
)

// Suggestion is a close match for a missed lookup.
type Suggestion struct {
	Kind  string  `json:"kind"`
	Key   string  `json:"key"`   // project id or blog URL
	Label string  `json:"label"` // project name or blog title
	Score float64 `json:"score"`
}
