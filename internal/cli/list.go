package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/query"
)

// NewListCmd creates the 'list' command for listing a collection.
func NewListCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		sortBy     string
		order      string
	)

	cmd := &cobra.Command{
		Use:       "list <projects|blogs>",
		Aliases:   []string{"ls"},
		Short:     "List all projects or blog posts",
		Long:      `Display every project or blog post, optionally sorted by a field.`,
		ValidArgs: []string{"projects", "blogs"},
		Example: `  portfolio-mcp list projects
  portfolio-mcp ls projects --sort name --order asc
  portfolio-mcp list blogs --json`,
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args[0], query.SortOptions{By: sortBy, Order: order}, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "Sort field (projects: "+strings.Join(query.ProjectSortFields(), ", ")+"; blogs: "+strings.Join(query.BlogSortFields(), ", ")+")")
	cmd.Flags().StringVarP(&order, "order", "o", "", "Sort order: asc or desc (default desc)")

	return cmd
}

// runList displays one collection.
func runList(cmd *cobra.Command, opts *rootOptions, collection string, sortOpts query.SortOptions, jsonOutput bool) error {
	a, err := opts.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	switch collection {
	case "projects":
		listing, err := a.engine.AllProjects(sortOpts)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, listing)
		}
		if len(listing.Projects) == 0 {
			fmt.Fprintln(out, "No projects.")
			return nil
		}
		renderTitle(out, fmt.Sprintf("Projects (%d)", len(listing.Projects)))
		for i := range listing.Projects {
			renderProject(out, &listing.Projects[i], 0)
		}

	case "blogs":
		listing, err := a.engine.AllBlogs(sortOpts)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, listing)
		}
		if len(listing.Blogs) == 0 {
			fmt.Fprintln(out, "No blog posts.")
			return nil
		}
		renderTitle(out, fmt.Sprintf("Blog posts (%d)", len(listing.Blogs)))
		for i := range listing.Blogs {
			renderBlog(out, &listing.Blogs[i], 0)
		}
	}

	return nil
}
