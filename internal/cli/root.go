/*
Package cli implements the portfolio-mcp command line.

Commands:
  - serve    run the MCP server on stdio
  - http     run the HTTP boundary
  - call     invoke one tool and print its payload
  - list     list projects or blog posts
  - stats    summarize both collections
  - search   search projects and blog posts together
  - history  inspect or prune the call history
  - version  print build information

Every command resolves its configuration through viper: defaults, the
config file, PORTFOLIO_MCP_* variables, then the global flags.
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khanglvm/portfolio-mcp/internal/config"
	"github.com/khanglvm/portfolio-mcp/internal/version"
)

// rootOptions carries the global flags and the viper instance shared by
// every subcommand.
type rootOptions struct {
	v          *viper.Viper
	configFile string
}

// NewRootCmd creates the portfolio-mcp command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "portfolio-mcp",
		Short: "Portfolio tool server - query projects and blog posts over MCP or HTTP",
		Long: `portfolio-mcp answers questions about a developer portfolio: a collection
of projects and a collection of blog posts.

It exposes nine tools through the MCP stdio protocol (serve), a JSON HTTP
API (http) and the command line (call, list, stats, search):
  • query_projects, get_project, list_projects, get_project_stats
  • query_blogs, get_blog, list_blogs, get_blog_stats
  • search_all

Data comes from the embedded dataset unless --projects or --blogs point at
JSON or YAML files (blog posts may also be a directory of Markdown files).`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Init(opts.v, opts.configFile); err != nil {
				return err
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./portfolio-mcp.yaml or "+config.ConfigDir()+"/portfolio-mcp.yaml)")
	flags.String("projects", "", "projects file, JSON or YAML (default: embedded dataset)")
	flags.String("blogs", "", "blog posts file or Markdown directory (default: embedded dataset)")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	for key, name := range map[string]string{
		config.KeyProjects: "projects",
		config.KeyBlogs:    "blogs",
		config.KeyLogLevel: "log-level",
	} {
		if err := opts.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind --%s: %v", name, err))
		}
	}

	cmd.AddCommand(
		NewServeCmd(opts),
		NewHTTPCmd(opts),
		NewCallCmd(opts),
		NewListCmd(opts),
		NewStatsCmd(opts),
		NewSearchCmd(opts),
		NewHistoryCmd(opts),
		NewVersionCmd(),
	)

	return cmd
}
