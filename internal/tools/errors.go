package tools

import "fmt"

// UnknownToolError is returned by Call for a name that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// ValidationError reports a missing required argument.
type ValidationError struct {
	Tool     string
	Argument string
	Message  string // overrides the default message when set
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Tool, e.Message)
	}
	return fmt.Sprintf("%s: missing required argument: %s", e.Tool, e.Argument)
}
