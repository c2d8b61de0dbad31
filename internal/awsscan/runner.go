package awsscan

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes aws CLI commands and returns stdout.
type Runner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// ExecRunner shells out to the aws binary. Timeouts are applied by the
// caller through the context.
type ExecRunner struct {
	// Binary overrides the executable name, for tests. Defaults to "aws".
	Binary string
}

func (r *ExecRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "aws"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("aws %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("aws %s: %w", strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}
