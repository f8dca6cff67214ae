package tools

import (
	"fmt"
	"strings"

	"github.com/khanglvm/portfolio-mcp/internal/search"
)

const maxSuggestions = 3

// notFound is the soft-failure payload of a lookup miss.
type notFound struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}

// notFoundPayload builds the miss payload. The suggestion always names
// listTool and, when the suggester finds close entries, lists them.
func (r *Registry) notFoundPayload(message, kind, text, listTool, noun string) notFound {
	suggestion := fmt.Sprintf("Use %s to see all available %s", listTool, noun)
	if names := r.suggest(kind, text); len(names) > 0 {
		suggestion += fmt.Sprintf(". Did you mean: %s?", strings.Join(names, ", "))
	}
	return notFound{Error: message, Suggestion: suggestion}
}

func (r *Registry) suggest(kind, text string) []string {
	if r.suggester == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	suggestions, err := r.suggester.Suggest(kind, text, maxSuggestions)
	if err != nil {
		r.logger.Debug("Suggestions unavailable", "kind", kind, "err", err)
		return nil
	}

	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		switch kind {
		case search.KindProject:
			names = append(names, fmt.Sprintf("%s (%s)", s.Key, s.Label))
		default:
			names = append(names, fmt.Sprintf("%q", s.Label))
		}
	}
	return names
}
