package eval

import (
	"fmt"
	"strings"
)

// ConflictError reports a constructor directive co-occurring with keys it
// may not share a node with. No factory is called for a conflicting node.
type ConflictError struct {
	Path string
	Keys []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("node %s: constructor directive conflicts with keys: %s",
		displayPath(e.Path), strings.Join(e.Keys, ", "))
}

// EvaluationError reports a failure from the execution namespace or a
// factory while processing the entry at Path. It aborts the whole traversal:
// a partially filled state vector would be silently wrong.
type EvaluationError struct {
	Path string
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed at %s: %v", displayPath(e.Path), e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// displayPath keeps diagnostics readable for the root node, whose dotted
// path is empty.
func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
