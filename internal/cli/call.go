package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/tools"
)

// NewCallCmd creates the 'call' command for invoking a single tool.
func NewCallCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Invoke a tool and print its payload",
		Long: `Invoke one portfolio tool and print the JSON payload it returns.

Arguments are a JSON object; omit them for tools without required
arguments. Not-found lookups print an {"error", "suggestion"} payload and
exit successfully; unknown tools and missing arguments fail.`,
		Example: `  portfolio-mcp call get_project_stats
  portfolio-mcp call query_projects '{"query":"python","limit":3}'
  portfolio-mcp call get_blog '{"title":"mcp server"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 2 {
				raw = args[1]
			}
			return runCall(cmd, opts, args[0], raw)
		},
	}

	return cmd
}

func runCall(cmd *cobra.Command, opts *rootOptions, name, rawArgs string) error {
	args, err := parseArgs(rawArgs)
	if err != nil {
		return err
	}

	a, err := opts.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.registry.Call(tools.WithTransport(commandContext(cmd), tools.TransportCLI), name, args)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Text())
	return nil
}

// parseArgs decodes a JSON object. Blank input is an empty object.
func parseArgs(raw string) (map[string]interface{}, error) {
	args := map[string]interface{}{}
	if len(bytes.TrimSpace([]byte(raw))) == 0 {
		return args, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("invalid tool arguments (want a JSON object): %w", err)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}
