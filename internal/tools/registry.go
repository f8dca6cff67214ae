/*
Package tools implements the portfolio tool contract shared by every
transport.

A call is a tool name plus a map of JSON arguments. A successful call
returns an envelope holding a single text item whose text is the
JSON-encoded payload:

	{"content": [{"type": "text", "text": "{...}"}]}

Unknown tools and missing required arguments are errors. A lookup that
finds nothing is not: it returns a payload of the form
{"error": "Project not found", "suggestion": "..."}.

Tools:
  - query_projects, get_project, list_projects, get_project_stats
  - query_blogs, get_blog, list_blogs, get_blog_stats
  - search_all
*/
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/logging"
	"github.com/khanglvm/portfolio-mcp/internal/query"
	"github.com/khanglvm/portfolio-mcp/internal/search"
	"github.com/khanglvm/portfolio-mcp/internal/storage"
)

// Content is one item of a result envelope.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the success envelope of a tool call.
type Result struct {
	Content []Content `json:"content"`
}

// Text returns the payload text of the envelope.
func (r *Result) Text() string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

// Definition describes a tool for tools/list style catalogs.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Handler computes a tool payload.
type Handler func(ctx context.Context, args Args) (interface{}, error)

// Suggester proposes close entries for a missed lookup.
// *search.Indexer satisfies it.
type Suggester interface {
	Suggest(kind, text string, limit int) ([]search.Suggestion, error)
}

// Recorder stores call history. *storage.SQLiteStorage satisfies it.
type Recorder interface {
	RecordCall(ctx context.Context, rec storage.CallRecord) error
}

type tool struct {
	def     Definition
	handler Handler
}

// Registry holds the tool catalog and dispatches calls.
// It is safe for concurrent use once constructed.
type Registry struct {
	engine    *query.Engine
	suggester Suggester
	recorder  Recorder
	logger    *log.Logger

	tools map[string]tool
	order []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithSuggester enables not-found suggestions.
func WithSuggester(s Suggester) Option {
	return func(r *Registry) { r.suggester = s }
}

// WithRecorder enables call history.
func WithRecorder(rec Recorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates a Registry with the nine portfolio tools.
func NewRegistry(engine *query.Engine, opts ...Option) *Registry {
	r := &Registry{
		engine: engine,
		logger: logging.Discard(),
		tools:  make(map[string]tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerProjectTools()
	r.registerBlogTools()
	r.registerSearchTools()
	return r
}

func (r *Registry) register(def Definition, h Handler) {
	if _, dup := r.tools[def.Name]; !dup {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = tool{def: def, handler: h}
}

// Definitions returns every tool definition in catalog order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Has reports whether name is a registered tool.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Call runs the named tool. Errors are *UnknownToolError, *ValidationError
// or a data load error from the engine.
func (r *Registry) Call(ctx context.Context, name string, args map[string]interface{}) (*Result, error) {
	start := time.Now()

	res, err := r.call(ctx, name, args)

	elapsed := time.Since(start)
	transport := TransportFrom(ctx)
	if err != nil {
		r.logger.Warn("Tool call failed", "tool", name, "transport", transport, "err", err)
	} else {
		r.logger.Debug("Tool call", "tool", name, "transport", transport, "duration", elapsed)
	}
	r.record(ctx, name, args, transport, elapsed, err)

	return res, err
}

func (r *Registry) call(ctx context.Context, name string, args map[string]interface{}) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, ok := r.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	payload, err := t.handler(ctx, Args(args))
	if err != nil {
		return nil, err
	}

	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", name, err)
	}

	return &Result{Content: []Content{{Type: "text", Text: string(text)}}}, nil
}

func (r *Registry) record(ctx context.Context, name string, args map[string]interface{}, transport string, elapsed time.Duration, callErr error) {
	if r.recorder == nil {
		return
	}
	rec := storage.CallRecord{
		Tool:      name,
		ArgsHash:  storage.HashArgs(args),
		Transport: transport,
		Duration:  elapsed,
		OK:        callErr == nil,
		Timestamp: time.Now(),
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}
	// Recording must outlive a cancelled request.
	if err := r.recorder.RecordCall(context.WithoutCancel(ctx), rec); err != nil {
		r.logger.Warn("Failed to record tool call", "tool", name, "err", err)
	}
}

// Transports.
const (
	TransportStdio  = "stdio"
	TransportHTTP   = "http"
	TransportCLI    = "cli"
	TransportDirect = "direct"
)

type transportKey struct{}

// WithTransport tags ctx with the transport a call arrived through.
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey{}, transport)
}

// TransportFrom returns the transport tag of ctx, or TransportDirect.
func TransportFrom(ctx context.Context) string {
	if t, ok := ctx.Value(transportKey{}).(string); ok && t != "" {
		return t
	}
	return TransportDirect
}
