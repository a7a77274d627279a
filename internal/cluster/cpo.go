package cluster

import (
	"context"
	"errors"
	"strings"

	"github.com/csrwng/infra/internal/invoke"
)

// localCPOImage derives the image reference for a locally built control
// plane operator: the configured prefix tagged with the short hash of the
// repo's HEAD, matching what the local build push tags.
func localCPOImage(ctx context.Context, runner invoke.Runner, repoDir, imagePrefix string) (string, error) {
	spec := invoke.Spec{Path: "git", Args: []string{"-C", repoDir, "rev-parse", "--short=9", "HEAD"}}
	res, err := runner.Run(ctx, spec)
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(res.Stdout)
	if hash == "" {
		return "", &invoke.ParseError{Source: invoke.CommandLine(spec) + " output", Err: errors.New("empty commit hash")}
	}
	return imagePrefix + ":" + hash, nil
}
