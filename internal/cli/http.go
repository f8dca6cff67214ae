package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/config"
	"github.com/khanglvm/portfolio-mcp/internal/httpapi"
	"github.com/khanglvm/portfolio-mcp/internal/version"
)

// NewHTTPCmd creates the 'http' command for running the HTTP API.
func NewHTTPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the HTTP API",
		Long: `Serve the portfolio tools over HTTP.

Routes:
  POST /api/call    {"name": "<tool>", "arguments": {...}}
  GET  /api/health  liveness report
  GET  /api/tools   tool catalog`,
		Example: `  portfolio-mcp http --addr :9000
  curl -s localhost:9000/api/call -d '{"name":"search_all","arguments":{"query":"go"}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTTP(cmd.Context(), opts)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default "+config.DefaultHTTPAddr+")")
	if err := opts.v.BindPFlag(config.KeyHTTPAddr, cmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}

	return cmd
}

// runHTTP serves until SIGINT/SIGTERM, then drains in-flight requests.
func runHTTP(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}

	a, err := opts.newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(a.registry, version.Version, a.logger)
	return server.ListenAndServe(ctx, a.cfg.HTTP.Addr)
}
