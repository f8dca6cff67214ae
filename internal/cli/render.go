package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/khanglvm/portfolio-mcp/internal/dataset"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	indent      = lipgloss.NewStyle().PaddingLeft(4)
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w)
}

func renderProject(w io.Writer, p *dataset.Project, score int) {
	line := nameStyle.Render(p.Name) + " " + dimStyle.Render("("+p.ID+")")
	if score > 0 {
		line += " " + scoreStyle.Render(fmt.Sprintf("score %d", score))
	}
	fmt.Fprintln(w, "  "+line)

	meta := fmt.Sprintf("%s · %s · %s impact", p.Category, p.Status, p.Impact)
	if p.Created != "" {
		meta += " · " + p.Created
	}
	fmt.Fprintln(w, indent.Render(dimStyle.Render(meta)))
	if p.Description != "" {
		fmt.Fprintln(w, indent.Render(p.Description))
	}
	if len(p.Technologies) > 0 {
		fmt.Fprintln(w, indent.Render(tagStyle.Render(strings.Join(p.Technologies, ", "))))
	}
	fmt.Fprintln(w)
}

func renderBlog(w io.Writer, b *dataset.BlogPost, score int) {
	line := nameStyle.Render(b.Title)
	if score > 0 {
		line += " " + scoreStyle.Render(fmt.Sprintf("score %d", score))
	}
	fmt.Fprintln(w, "  "+line)
	fmt.Fprintln(w, indent.Render(dimStyle.Render(b.URL)))
	if b.Description != "" {
		fmt.Fprintln(w, indent.Render(b.Description))
	}
	fmt.Fprintln(w)
}

// renderDistribution prints counts in descending order, ties by key.
func renderDistribution(w io.Writer, label string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if dist[keys[i]] != dist[keys[j]] {
			return dist[keys[i]] > dist[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintln(w, headerStyle.Render(label))
	for _, k := range keys {
		fmt.Fprintf(w, "  %-24s %d\n", k, dist[k])
	}
	fmt.Fprintln(w)
}
