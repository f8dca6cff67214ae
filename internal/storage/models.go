package storage

import "time"

// CallRecord is a single tool invocation.
type CallRecord struct {
	// ID is a unique identifier for the call (UUID).
	ID string `json:"id"`

	// Tool is the invoked tool name.
	Tool string `json:"tool"`

	// ArgsHash is the SHA256 hash of the call arguments.
	ArgsHash string `json:"args_hash"`

	// Transport is the boundary the call arrived through: stdio, http or cli.
	Transport string `json:"transport"`

	Duration time.Duration `json:"duration"`

	// OK is false when the call returned an error. Not-found lookups are OK.
	OK bool `json:"ok"`

	// Error holds the error message of a failed call.
	Error string `json:"error,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// ToolCount aggregates the calls of one tool.
type ToolCount struct {
	Tool        string        `json:"tool"`
	Calls       int           `json:"calls"`
	Failures    int           `json:"failures"`
	AvgDuration time.Duration `json:"avg_duration"`
}
