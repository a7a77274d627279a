// Package releases resolves OpenShift release image pullspecs from the
// public release controller.
package releases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/csrwng/infra/internal/invoke"
)

// DefaultBaseURL is the amd64 OCP release controller.
const DefaultBaseURL = "https://amd64.ocp.releases.ci.openshift.org"

// Versions lists the minor versions offered for resolution, newest first.
var Versions = []string{"4.20", "4.19", "4.18", "4.17", "4.16", "4.15", "4.14"}

// Channel selects which release stream a version is resolved against.
type Channel string

const (
	ChannelCI      Channel = "ci"
	ChannelNightly Channel = "nightly"
	ChannelStable  Channel = "stable"
)

// Channels lists the accepted channels in presentation order.
var Channels = []Channel{ChannelCI, ChannelNightly, ChannelStable}

// ParseChannel maps a user-supplied value to a channel.
func ParseChannel(s string) (Channel, error) {
	for _, c := range Channels {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown channel %q (valid: ci, nightly, stable)", s)
}

// ValidateVersion checks that the minor version is one the resolver knows.
func ValidateVersion(version string) error {
	for _, v := range Versions {
		if version == v {
			return nil
		}
	}
	return fmt.Errorf("unsupported version %q (valid: %s)", version, strings.Join(Versions, ", "))
}

// Resolver turns a minor version and channel into a release image pullspec.
type Resolver interface {
	Resolve(ctx context.Context, version string, channel Channel) (string, error)
}

// HTTPResolver queries the release controller, retrying transient failures
// with backoff.
type HTTPResolver struct {
	base   string
	client *retryablehttp.Client
}

// NewHTTPResolver returns a resolver against the given controller base URL,
// usually DefaultBaseURL.
func NewHTTPResolver(baseURL string) *HTTPResolver {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &HTTPResolver{base: strings.TrimSuffix(baseURL, "/"), client: client}
}

var errNoPullSpec = errors.New("response carries no pullSpec")

// Resolve fetches the pullspec for the version on the channel. CI and
// nightly use the per-stream latest endpoint; stable scans the 4-stable tag
// list for the first tag matching the version.
func (r *HTTPResolver) Resolve(ctx context.Context, version string, channel Channel) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}
	switch channel {
	case ChannelCI, ChannelNightly:
		return r.latest(ctx, version, channel)
	case ChannelStable:
		return r.stableTag(ctx, version)
	}
	return "", fmt.Errorf("unknown channel %q (valid: ci, nightly, stable)", channel)
}

func (r *HTTPResolver) latest(ctx context.Context, version string, channel Channel) (string, error) {
	url := fmt.Sprintf("%s/api/v1/releasestream/%s.0-0.%s/latest", r.base, version, channel)
	body, err := r.get(ctx, url)
	if err != nil {
		return "", err
	}
	var payload struct {
		Name     string `json:"name"`
		PullSpec string `json:"pullSpec"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &invoke.ParseError{Source: url, Err: err}
	}
	if payload.PullSpec == "" {
		return "", &invoke.ParseError{Source: url, Err: errNoPullSpec}
	}
	return payload.PullSpec, nil
}

func (r *HTTPResolver) stableTag(ctx context.Context, version string) (string, error) {
	url := r.base + "/api/v1/releasestream/4-stable/tags"
	body, err := r.get(ctx, url)
	if err != nil {
		return "", err
	}
	var payload struct {
		Tags []struct {
			Name     string `json:"name"`
			PullSpec string `json:"pullSpec"`
		} `json:"tags"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &invoke.ParseError{Source: url, Err: err}
	}
	// Tags arrive newest first; the first match is the latest stable.
	for _, tag := range payload.Tags {
		if strings.HasPrefix(tag.Name, version) {
			return tag.PullSpec, nil
		}
	}
	return "", fmt.Errorf("no stable release found for %s", version)
}

func (r *HTTPResolver) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query release controller: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read release controller response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release controller returned %s for %s", resp.Status, url)
	}
	return body, nil
}
