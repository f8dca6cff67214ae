package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/query"
)

type statsOutput struct {
	Projects *query.ProjectStats `json:"projects"`
	Blogs    *query.BlogStats    `json:"blogs"`
}

// NewStatsCmd creates the 'stats' command.
func NewStatsCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize projects and blog posts",
		Long:  `Show totals, distributions and the most recent entries of both collections.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runStats(cmd *cobra.Command, opts *rootOptions, jsonOutput bool) error {
	a, err := opts.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	projects, err := a.engine.ProjectStats()
	if err != nil {
		return err
	}
	blogs, err := a.engine.BlogStats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, statsOutput{Projects: projects, Blogs: blogs})
	}

	renderTitle(out, fmt.Sprintf("Projects (%d)", projects.TotalProjects))
	renderDistribution(out, "Status", projects.StatusDistribution)
	renderDistribution(out, "Category", projects.CategoryDistribution)
	renderDistribution(out, "Impact", projects.ImpactDistribution)
	renderDistribution(out, "Technologies", projects.TechnologyDistribution)
	if len(projects.RecentProjects) > 0 {
		fmt.Fprintln(out, headerStyle.Render("Recent"))
		for _, p := range projects.RecentProjects {
			fmt.Fprintf(out, "  %s %s\n", nameStyle.Render(p.Name), dimStyle.Render(p.Created))
		}
		fmt.Fprintln(out)
	}
	if projects.LastUpdated != "" {
		fmt.Fprintln(out, dimStyle.Render("Last updated "+projects.LastUpdated))
		fmt.Fprintln(out)
	}

	renderTitle(out, fmt.Sprintf("Blog posts (%d)", blogs.TotalBlogs))
	renderDistribution(out, "Topics", blogs.TopicDistribution)
	if len(blogs.RecentBlogs) > 0 {
		fmt.Fprintln(out, headerStyle.Render("Recent"))
		for _, b := range blogs.RecentBlogs {
			fmt.Fprintf(out, "  %s\n", nameStyle.Render(b.Title))
		}
		fmt.Fprintln(out)
	}
	if blogs.LastUpdated != "" {
		fmt.Fprintln(out, dimStyle.Render("Last updated "+blogs.LastUpdated))
	}

	return nil
}
