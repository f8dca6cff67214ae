/*
Package main is the entry point for portfolio-mcp CLI.

portfolio-mcp serves a developer portfolio (projects and blog posts) to AI
clients over the MCP stdio protocol and to web clients over HTTP.

Usage:
  portfolio-mcp [command]

Available Commands:
  serve       Run the MCP server (stdio transport)
  http        Run the HTTP API
  call        Invoke a tool and print its payload
  list        List all projects or blog posts
  stats       Summarize projects and blog posts
  search      Search projects and blog posts together
  history     Show or prune the tool call history
  version     Show version information

Examples:
  # Run as MCP server
  portfolio-mcp serve

  # Serve HTTP on :9000 with a custom dataset
  portfolio-mcp http --addr :9000 --projects ./projects.yaml

  # Query from the shell
  portfolio-mcp call query_projects '{"query":"python"}'
*/
package main

import (
	"fmt"
	"os"

	"github.com/khanglvm/portfolio-mcp/internal/cli"
	"github.com/khanglvm/portfolio-mcp/internal/version"
)

// Version information (set via ldflags during build)
var (
	buildVersion = "dev"
	commit       = "none"
	date         = "unknown"
)

func main() {
	version.Set(buildVersion, commit, date)

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
