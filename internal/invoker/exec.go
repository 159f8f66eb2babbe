package invoker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"
)

// Exec invokes tools by running the tracker binary once per call: the tool
// name is the single argument, the argument bag goes to stdin as YAML, the
// response document comes back on stdout.
type Exec struct {
	Program string
}

// NewExec wraps the resolved tracker binary.
func NewExec(program string) *Exec {
	return &Exec{Program: program}
}

func (e *Exec) Invoke(ctx context.Context, tool string, args Args) (Content, error) {
	encoded, err := yaml.Marshal(args)
	if err != nil {
		return Content{}, &CallError{Tool: tool, Err: fmt.Errorf("encode args: %w", err)}
	}

	cmd := exec.CommandContext(ctx, e.Program, tool)
	cmd.Stdin = bytes.NewReader(encoded)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return Content{}, &CallError{Tool: tool, Err: fmt.Errorf("%s: %w", detail, err)}
		}
		return Content{}, &CallError{Tool: tool, Err: err}
	}
	return Content{Body: stdout.Bytes()}, nil
}
