package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultSuggestions is the suggestion cap used when limit <= 0.
const DefaultSuggestions = 3

// Suggest returns up to limit entries of kind close to text, best first.
// Blank text yields no suggestions.
func (i *Indexer) Suggest(kind, text string, limit int) ([]Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}

	if err := i.ensureBuilt(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	kindQuery := bleve.NewTermQuery(kind)
	kindQuery.SetField("kind")

	searchQuery := bleve.NewConjunctionQuery(kindQuery, buildFuzzyQuery(text))

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	searchRequest.Fields = []string{"key", "label"}

	results, err := i.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(kind, results), nil
}

// buildFuzzyQuery matches text against labels and bodies with one edit of
// tolerance per term, and against keys with up to two.
func buildFuzzyQuery(text string) query.Query {
	labelQuery := bleve.NewMatchQuery(text)
	labelQuery.SetField("label")
	labelQuery.SetFuzziness(1)
	labelQuery.SetBoost(2)

	bodyQuery := bleve.NewMatchQuery(text)
	bodyQuery.SetField("body")
	bodyQuery.SetFuzziness(1)

	keyQuery := bleve.NewFuzzyQuery(strings.ToLower(text))
	keyQuery.SetField("key")
	keyQuery.SetFuzziness(2)
	keyQuery.SetBoost(3)

	return bleve.NewDisjunctionQuery(labelQuery, bodyQuery, keyQuery)
}

// convertBleveResults converts Bleve search results to suggestions.
func convertBleveResults(kind string, results *bleve.SearchResult) []Suggestion {
	suggestions := make([]Suggestion, 0, len(results.Hits))

	for _, hit := range results.Hits {
		key, _ := hit.Fields["key"].(string)
		label, _ := hit.Fields["label"].(string)

		suggestions = append(suggestions, Suggestion{
			Kind:  kind,
			Key:   key,
			Label: label,
			Score: hit.Score,
		})
	}

	return suggestions
}
