package harness

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/artpar/quill/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes the root command with the harness config and the given
// arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	return r.run("", args...)
}

// Script runs keys (in <Esc>/<CR> notation, read from stdin) against file.
// An empty file starts an unnamed buffer.
func (r *CLIRunner) Script(keys, file string, extra ...string) (*CLIResult, error) {
	args := append([]string{"--script", "-"}, extra...)
	if file != "" {
		args = append(args, file)
	}
	return r.run(keys, args...)
}

func (r *CLIRunner) run(stdin string, args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", r.harness.configPath}, args...))

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}
