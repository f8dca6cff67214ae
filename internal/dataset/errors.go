package dataset

import "fmt"

// DataLoadError reports a missing or malformed collection source.
// Loads are never retried; the same error is returned to every caller of
// the failed collection for the life of the Store.
type DataLoadError struct {
	Collection string // "projects" or "blogs"
	Path       string // empty for the embedded dataset
	Err        error
	Hint       string
}

func (e *DataLoadError) Error() string {
	source := e.Path
	if source == "" {
		source = "embedded dataset"
	}
	msg := fmt.Sprintf("failed to load %s from %s: %v", e.Collection, source, e.Err)
	if e.Hint != "" {
		msg += "\n💡 " + e.Hint
	}
	return msg
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
