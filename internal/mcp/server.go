/*
Package mcp implements the MCP server that exposes the portfolio tools.

The server uses stdio transport: JSON-RPC 2.0 messages on stdin, responses
on stdout, logs on stderr. It exposes the nine portfolio tools:
  - query_projects, get_project, list_projects, get_project_stats
  - query_blogs, get_blog, list_blogs, get_blog_stats
  - search_all

Protocol handling (initialize, tools/list, tools/call) is delegated to
mcp-go; every tool call is forwarded to the shared tools.Registry.
*/
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/khanglvm/portfolio-mcp/internal/logging"
	"github.com/khanglvm/portfolio-mcp/internal/tools"
)

// ServerName is reported in the initialize handshake.
const ServerName = "portfolio-mcp"

const instructions = `Portfolio tools: search and browse projects and blog posts.

Start with search_all for open questions, query_projects or query_blogs for a
single collection, and get_project or get_blog for details. list_* and
*_stats tools summarize whole collections.`

// Server represents the portfolio MCP server.
type Server struct {
	registry  *tools.Registry
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// NewServer creates an MCP server exposing every tool of registry.
func NewServer(registry *tools.Registry, version string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		registry: registry,
		logger:   logger,
		mcpServer: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(false),
			server.WithInstructions(instructions),
			server.WithRecovery(),
		),
	}

	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerTools registers each registry definition with its raw JSON schema.
func (s *Server) registerTools() error {
	for _, def := range s.registry.Definitions() {
		schema, err := json.Marshal(def.InputSchema)
		if err != nil {
			return fmt.Errorf("failed to encode schema for %s: %w", def.Name, err)
		}
		tool := mcp.NewToolWithRawSchema(def.Name, def.Description, schema)
		s.mcpServer.AddTool(tool, s.handler(def.Name))
	}
	return nil
}

// handler forwards a tools/call to the registry. Registry errors become
// JSON-RPC errors; not-found lookups are ordinary text results.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := s.registry.Call(tools.WithTransport(ctx, tools.TransportStdio), name, req.GetArguments())
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(res.Text()), nil
	}
}

// Run starts the MCP server on stdin/stdout.
// This blocks until stdin is closed or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve runs the stdio transport over in and out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))

	s.logger.Info("MCP server listening on stdio", "tools", len(s.registry.Definitions()))

	err := stdio.Listen(ctx, in, out)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// HandleMessage processes a single JSON-RPC message without a transport.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}
