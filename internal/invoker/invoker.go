// Package invoker defines the call boundary between the terminal front-end
// and the feature tool backend. The UI depends only on this contract; how the
// backend is reached (subprocess, socket, in-process fake) is up to the
// implementation.
package invoker

import (
	"context"
	"fmt"
)

// Tool names the front-end depends on. Each is idempotent from the UI's
// perspective: retrying a failed call is safe, though never automatic.
const (
	ToolListFeatures   = "list_features"
	ToolFeatureDetails = "get_feature_details"
	ToolUpdateTask     = "update_task"
	ToolGetDocument    = "get_document"
	ToolUpdateDocument = "update_document"
)

// Args is the key/value argument bag passed to a tool.
type Args map[string]any

// Content is the structured payload returned by a successful invocation.
type Content struct {
	// Body holds the raw response document (YAML on the reference backend).
	Body []byte
}

// Invoker executes a named tool with an argument bag.
type Invoker interface {
	Invoke(ctx context.Context, tool string, args Args) (Content, error)
}

// Func adapts a plain function to the Invoker interface.
type Func func(ctx context.Context, tool string, args Args) (Content, error)

func (f Func) Invoke(ctx context.Context, tool string, args Args) (Content, error) {
	return f(ctx, tool, args)
}

// ValidationError reports a locally rejected request. No external call has
// been made when one of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CallError wraps a failed or malformed external invocation.
type CallError struct {
	Tool string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// NotFoundError reports an absent record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
