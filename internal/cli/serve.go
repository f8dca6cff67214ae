package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/mcp"
	"github.com/khanglvm/portfolio-mcp/internal/version"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the portfolio MCP server using stdio transport.

JSON-RPC messages are read from stdin and answered on stdout; logs go to
stderr. The server exposes the nine portfolio tools:
  • query_projects, get_project, list_projects, get_project_stats
  • query_blogs, get_blog, list_blogs, get_blog_stats
  • search_all`,
		Example: `  # Run directly
  portfolio-mcp serve

  # Add to Claude Code
  claude mcp add portfolio -- portfolio-mcp serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	return cmd
}

// runServe starts the MCP server with stdio transport and signal handling.
// Implements graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
func runServe(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}

	a, err := opts.newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	server, err := mcp.NewServer(a.registry, version.Version, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		a.logger.Info("Received signal, shutting down", "signal", sig)
		cancel()
		<-errChan
		a.logger.Info("Shutdown complete")
		return nil

	case err := <-errChan:
		// stdin closed or transport error
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
