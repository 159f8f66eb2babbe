package feature

import (
	"context"
	"fmt"

	"featboard/internal/invoker"
	"gopkg.in/yaml.v3"
)

// Client wraps the tool invoker with typed feature/task operations. All
// responses are YAML documents, decoded here so the UI never sees raw bytes.
type Client struct {
	inv invoker.Invoker
}

// NewClient builds a client over the given invoker.
func NewClient(inv invoker.Invoker) *Client {
	return &Client{inv: inv}
}

type listEnvelope struct {
	Features []Summary `yaml:"features"`
}

type detailEnvelope struct {
	Feature *Detail `yaml:"feature"`
}

type documentEnvelope struct {
	Document *Document `yaml:"document"`
}

// List fetches feature summaries in the store's declared order.
func (c *Client) List(ctx context.Context) ([]Summary, error) {
	content, err := c.inv.Invoke(ctx, invoker.ToolListFeatures, nil)
	if err != nil {
		return nil, wrapCall(invoker.ToolListFeatures, err)
	}
	var env listEnvelope
	if err := yaml.Unmarshal(content.Body, &env); err != nil {
		return nil, malformed(invoker.ToolListFeatures, err)
	}
	return env.Features, nil
}

// Detail fetches a full feature record, tasks included.
func (c *Client) Detail(ctx context.Context, id string) (Detail, error) {
	content, err := c.inv.Invoke(ctx, invoker.ToolFeatureDetails, invoker.Args{"feature": id})
	if err != nil {
		return Detail{}, wrapCall(invoker.ToolFeatureDetails, err)
	}
	var env detailEnvelope
	if err := yaml.Unmarshal(content.Body, &env); err != nil {
		return Detail{}, malformed(invoker.ToolFeatureDetails, err)
	}
	if env.Feature == nil {
		return Detail{}, &invoker.NotFoundError{Kind: "feature", ID: id}
	}
	return *env.Feature, nil
}

// UpdateTask sends only the changed fields of a task to the store.
func (c *Client) UpdateTask(ctx context.Context, featureID, taskID string, fields map[string]any) error {
	args := invoker.Args{"feature": featureID, "task": taskID}
	for k, v := range fields {
		args[k] = v
	}
	if _, err := c.inv.Invoke(ctx, invoker.ToolUpdateTask, args); err != nil {
		return wrapCall(invoker.ToolUpdateTask, err)
	}
	return nil
}

// Document fetches the free-form document body for a feature.
func (c *Client) Document(ctx context.Context, featureID string) (Document, error) {
	content, err := c.inv.Invoke(ctx, invoker.ToolGetDocument, invoker.Args{"feature": featureID})
	if err != nil {
		return Document{}, wrapCall(invoker.ToolGetDocument, err)
	}
	var env documentEnvelope
	if err := yaml.Unmarshal(content.Body, &env); err != nil {
		return Document{}, malformed(invoker.ToolGetDocument, err)
	}
	if env.Document == nil {
		return Document{}, &invoker.NotFoundError{Kind: "document", ID: featureID}
	}
	return *env.Document, nil
}

// UpdateDocument replaces the document body for a feature.
func (c *Client) UpdateDocument(ctx context.Context, featureID, body string) error {
	args := invoker.Args{"feature": featureID, "body": body}
	if _, err := c.inv.Invoke(ctx, invoker.ToolUpdateDocument, args); err != nil {
		return wrapCall(invoker.ToolUpdateDocument, err)
	}
	return nil
}

func wrapCall(tool string, err error) error {
	switch err.(type) {
	case *invoker.CallError, *invoker.NotFoundError, *invoker.ValidationError:
		return err
	}
	return &invoker.CallError{Tool: tool, Err: err}
}

func malformed(tool string, err error) error {
	return &invoker.CallError{Tool: tool, Err: fmt.Errorf("malformed response: %w", err)}
}
