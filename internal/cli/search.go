package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/query"
)

// NewSearchCmd creates the 'search' command for unified search.
func NewSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search projects and blog posts together",
		Long: `Rank projects and blog posts against a keyword query.

About 70% of the limit goes to projects and 30% to blog posts.`,
		Example: `  portfolio-mcp search python
  portfolio-mcp search "rest api" --limit 5 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, strings.Join(args, " "), limit, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", query.DefaultLimit, "Maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *rootOptions, q string, limit int, jsonOutput bool) error {
	a, err := opts.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.engine.SearchAll(q, query.SearchOptions{Limit: limit})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, res)
	}

	if len(res.Results) == 0 {
		fmt.Fprintf(out, "No matches for %q.\n", q)
		return nil
	}

	renderTitle(out, fmt.Sprintf("%d matches for %q (%d projects, %d blog posts)",
		res.Total, q, res.Breakdown.Projects, res.Breakdown.Blogs))
	for _, hit := range res.Results {
		project, blog := hit.Entity()
		switch {
		case project != nil:
			renderProject(out, project, hit.Score())
		case blog != nil:
			renderBlog(out, blog, hit.Score())
		}
	}

	return nil
}
