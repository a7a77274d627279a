// Package invoke runs the external binaries the orchestrators depend on.
//
// Every provisioning and cluster operation shells out to an external command
// (hypershift, oc, git). Runner is the seam: production code uses ExecRunner,
// tests inject a recording fake so orchestration logic runs without spawning
// any process.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Spec describes a single external command invocation.
type Spec struct {
	Path  string // executable path, or a bare name resolved via PATH
	Args  []string
	Env   []string // appended to the current process environment
	Dir   string
	Stdin string
}

// Result carries the captured outcome of a finished command. It is owned by
// the invocation that produced it and never cached.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. Implementations block until the command
// finishes; no timeout is imposed beyond what ctx carries.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner returns the default Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command synchronously, capturing stdout and stderr
// separately. A non-zero exit yields a *CommandError carrying the captured
// stderr verbatim.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	// Inherit the full environment so PATH overrides in tests reach the child.
	cmd.Env = append(os.Environ(), spec.Env...)
	if spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(spec.Stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &CommandError{
				Command:  CommandLine(spec),
				ExitCode: res.ExitCode,
				Stderr:   strings.TrimSpace(res.Stderr),
			}
		}
		// The process never started (binary missing, permission denied, ...).
		res.ExitCode = -1
		return res, &CommandError{Command: CommandLine(spec), ExitCode: -1, Stderr: err.Error()}
	}
	return res, nil
}

// CommandLine renders the spec as a single printable command line.
func CommandLine(spec Spec) string {
	return strings.Join(append([]string{spec.Path}, spec.Args...), " ")
}
