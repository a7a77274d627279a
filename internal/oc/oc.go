// Package oc wraps the oc binary for HostedCluster operations against the
// management cluster.
package oc

import (
	"context"
	"strings"

	"github.com/csrwng/infra/internal/invoke"
)

// HostedClusters live in a fixed namespace on the management cluster.
const namespace = "clusters"

// CLI shells out to the oc binary.
type CLI struct {
	path   string
	runner invoke.Runner
}

// NewCLI returns a CLI invoking the binary at path through runner.
func NewCLI(path string, runner invoke.Runner) *CLI {
	return &CLI{path: path, runner: runner}
}

// Apply applies a manifest file and returns whatever oc printed, one line
// per object created or configured.
func (c *CLI) Apply(ctx context.Context, manifestPath string) (string, error) {
	res, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: []string{
		"apply", "-f", manifestPath,
	}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// DeleteHostedCluster starts deletion of a HostedCluster without waiting
// for teardown to finish.
func (c *CLI) DeleteHostedCluster(ctx context.Context, name string) error {
	_, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: []string{
		"delete", "hc", "-n", namespace, name, "--wait=false",
	}})
	return err
}

// ListHostedClusters returns the names of the HostedClusters on the
// management cluster.
func (c *CLI) ListHostedClusters(ctx context.Context) ([]string, error) {
	res, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: []string{
		"get", "hc", "-n", namespace, "--no-headers",
	}})
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names, nil
}
